package models

import (
	"time"
)

type User struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Email string  `json:"email" gorm:"unique;not null"`
	Name  *string `json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:AuthorID"`

	// Followers are the edges pointing at this user; Following are the
	// edges this user created.
	Followers []Follow `json:"-" gorm:"foreignKey:FollowingID"`
	Following []Follow `json:"-" gorm:"foreignKey:FollowerID"`
}

func (u *User) DisplayName() string {
	if u.Name != nil {
		return *u.Name
	}
	return ""
}
