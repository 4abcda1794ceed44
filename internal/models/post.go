package models

import (
	"time"
)

type Post struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Title    string  `json:"title" gorm:"not null"`
	Content  *string `json:"content"`
	Likes    int     `json:"likes" gorm:"not null;default:0"`
	AuthorID uint    `json:"author_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

type Comment struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Text   string `json:"text" gorm:"not null"`
	PostID uint   `json:"post_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
}
