package services

import (
	"time"

	"feedify/internal/models"

	"gorm.io/gorm"
)

// TimelineAuthor carries just the display name, matching what the feed
// renders next to each post.
type TimelineAuthor struct {
	Name *string `json:"name"`
}

type TimelineEntry struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Content   *string        `json:"content"`
	Likes     int            `json:"likes"`
	AuthorID  uint           `json:"author_id"`
	CreatedAt time.Time      `json:"created_at"`
	Author    TimelineAuthor `json:"author"`
}

type TimelineService interface {
	GetTimeline(db *gorm.DB, userID uint) ([]TimelineEntry, error)
}

type TimelineServiceImpl struct{}

func NewTimelineService() *TimelineServiceImpl {
	return &TimelineServiceImpl{}
}

// GetTimeline returns the posts authored by anyone userID follows, newest
// first. The follow pair is unique, so the join yields each post at most
// once. A user who follows nobody gets an empty timeline, not an error.
func (s *TimelineServiceImpl) GetTimeline(db *gorm.DB, userID uint) ([]TimelineEntry, error) {
	var posts []models.Post
	err := db.
		Joins("JOIN follows ON follows.following_id = posts.author_id").
		Where("follows.follower_id = ?", userID).
		Order("posts.created_at DESC").
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(posts))
	for _, post := range posts {
		entry := TimelineEntry{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			Likes:     post.Likes,
			AuthorID:  post.AuthorID,
			CreatedAt: post.CreatedAt,
		}
		if post.Author != nil {
			entry.Author.Name = post.Author.Name
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
