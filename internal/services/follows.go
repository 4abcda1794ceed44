package services

import (
	"feedify/internal/models"

	"gorm.io/gorm"
)

type FollowService interface {
	CreateFollow(db *gorm.DB, followerID, followingID uint) (models.Follow, error)
}

type FollowServiceImpl struct{}

func NewFollowService() *FollowServiceImpl {
	return &FollowServiceImpl{}
}

// CreateFollow persists one directed edge. The composite primary key turns a
// repeated follow into ErrDuplicateFollow, and the foreign keys turn an
// unknown user on either end into ErrUserNotFound. Existing edges are never
// touched.
func (s *FollowServiceImpl) CreateFollow(db *gorm.DB, followerID, followingID uint) (models.Follow, error) {
	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := db.Create(&follow).Error; err != nil {
		return models.Follow{}, translate(err, ErrDuplicateFollow, ErrUserNotFound, nil)
	}
	return follow, nil
}
