package services

import (
	"feedify/internal/models"

	"gorm.io/gorm"
)

type PostService interface {
	CreatePost(db *gorm.DB, authorID uint, title string, content *string, comments []string) (models.Post, error)
	GetPosts(db *gorm.DB) ([]models.Post, error)
	GetPostByID(db *gorm.DB, id uint) (models.Post, error)
	AddComment(db *gorm.DB, postID uint, text string) (models.Comment, error)
	LikePost(db *gorm.DB, id uint) (models.Post, error)
}

type PostServiceImpl struct{}

func NewPostService() *PostServiceImpl {
	return &PostServiceImpl{}
}

// CreatePost inserts the post and any initial comments in one create; gorm
// persists the association rows alongside the post.
func (s *PostServiceImpl) CreatePost(db *gorm.DB, authorID uint, title string, content *string, comments []string) (models.Post, error) {
	post := models.Post{
		Title:    title,
		Content:  content,
		AuthorID: authorID,
	}
	for _, text := range comments {
		post.Comments = append(post.Comments, models.Comment{Text: text})
	}
	if err := db.Create(&post).Error; err != nil {
		return models.Post{}, translate(err, nil, ErrUserNotFound, nil)
	}
	return post, nil
}

// GetPosts returns every post with its author and comments attached.
func (s *PostServiceImpl) GetPosts(db *gorm.DB) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	err := db.Preload("Author").Preload("Comments").Order("id").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostServiceImpl) GetPostByID(db *gorm.DB, id uint) (models.Post, error) {
	var post models.Post
	err := db.Preload("Author").Preload("Comments").First(&post, id).Error
	if err != nil {
		return models.Post{}, translate(err, nil, nil, ErrPostNotFound)
	}
	return post, nil
}

func (s *PostServiceImpl) AddComment(db *gorm.DB, postID uint, text string) (models.Comment, error) {
	comment := models.Comment{PostID: postID, Text: text}
	if err := db.Create(&comment).Error; err != nil {
		return models.Comment{}, translate(err, nil, ErrPostNotFound, nil)
	}
	return comment, nil
}

// LikePost bumps the counter with a single column expression so concurrent
// likes never lose updates.
func (s *PostServiceImpl) LikePost(db *gorm.DB, id uint) (models.Post, error) {
	res := db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return models.Post{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Post{}, ErrPostNotFound
	}

	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		return models.Post{}, translate(err, nil, nil, ErrPostNotFound)
	}
	return post, nil
}
