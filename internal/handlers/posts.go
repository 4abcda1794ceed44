package handlers

import (
	"errors"
	"net/http"

	"feedify/internal/middleware"
	"feedify/internal/services"
	"feedify/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct {
	db          *gorm.DB
	postService services.PostService
	invalidator TimelineInvalidator
	jobs        *worker.JobQueue
}

func NewPostHandler(db *gorm.DB, postService services.PostService, invalidator TimelineInvalidator, jobs *worker.JobQueue) *PostHandler {
	return &PostHandler{
		db:          db,
		postService: postService,
		invalidator: invalidator,
		jobs:        jobs,
	}
}

type createPostInput struct {
	Title    string  `json:"title" binding:"required"`
	Content  *string `json:"content"`
	Comments []struct {
		Text string `json:"text" binding:"required"`
	} `json:"comments"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x-user-id header is required"})
		return
	}

	var input createPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comments := make([]string, 0, len(input.Comments))
	for _, comment := range input.Comments {
		comments = append(comments, comment.Text)
	}

	post, err := h.postService.CreatePost(h.db, authorID, input.Title, input.Content, comments)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	if h.invalidator != nil {
		h.invalidator.InvalidateTimelines()
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.postService.GetPosts(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.GetPostByID(h.db, id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

type addCommentInput struct {
	Text string `json:"text" binding:"required"`
}

func (h *PostHandler) AddComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var input addCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.postService.AddComment(h.db, postID, input.Text)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// LikePost bumps the like counter. The increment happens in the store, so
// concurrent likes all land.
func (h *PostHandler) LikePost(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.postService.LikePost(h.db, id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to like post"})
		return
	}

	if h.jobs != nil {
		h.jobs.Enqueue(worker.QueueNotifications, worker.JobTypeLikeNotification, map[string]interface{}{
			"post_id":   post.ID,
			"author_id": post.AuthorID,
			"likes":     post.Likes,
		})
	}

	c.JSON(http.StatusOK, post)
}
