package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

// IsValid reports whether s is one of the defined statuses. Callers ignore
// invalid values instead of rejecting the request.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Title    string     `json:"title" gorm:"not null"`
	Status   TaskStatus `json:"status" gorm:"not null;default:'PENDING'"`
	AuthorID uint       `json:"author_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
