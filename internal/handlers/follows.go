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

type FollowHandler struct {
	db            *gorm.DB
	followService services.FollowService
	invalidator   TimelineInvalidator
	jobs          *worker.JobQueue
}

func NewFollowHandler(db *gorm.DB, followService services.FollowService, invalidator TimelineInvalidator, jobs *worker.JobQueue) *FollowHandler {
	return &FollowHandler{
		db:            db,
		followService: followService,
		invalidator:   invalidator,
		jobs:          jobs,
	}
}

// Follow creates a directed edge from the requester to the user in the
// path. Following yourself is a business rule violation, not a schema one,
// so it is rejected here.
func (h *FollowHandler) Follow(c *gin.Context) {
	followerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x-user-id header is required"})
		return
	}

	followingID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if followerID == followingID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return
	}

	follow, err := h.followService.CreateFollow(h.db, followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateFollow):
			c.JSON(http.StatusConflict, gin.H{"error": "already following this user"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow user"})
		}
		return
	}

	if h.invalidator != nil {
		h.invalidator.InvalidateTimelines()
	}
	if h.jobs != nil {
		h.jobs.Enqueue(worker.QueueNotifications, worker.JobTypeFollowNotification, map[string]interface{}{
			"follower_id":  followerID,
			"following_id": followingID,
		})
	}

	c.JSON(http.StatusCreated, follow)
}
