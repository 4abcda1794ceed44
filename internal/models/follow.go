package models

import (
	"time"
)

// Follow is a directed edge in the social graph: the follower's timeline
// includes the following user's posts. The pair is the primary key, so a
// second identical follow is a uniqueness violation, never a second edge.
// Self-follows are rejected at the handler, not here.
type Follow struct {
	FollowerID  uint `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint `json:"following_id" gorm:"primaryKey;autoIncrement:false"`

	CreatedAt time.Time `json:"created_at"`

	Follower  *User `json:"-" gorm:"foreignKey:FollowerID"`
	Following *User `json:"-" gorm:"foreignKey:FollowingID"`
}
