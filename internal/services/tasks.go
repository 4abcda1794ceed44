package services

import (
	"feedify/internal/models"

	"gorm.io/gorm"
)

type TaskService interface {
	CreateTask(db *gorm.DB, authorID uint, title string) (models.Task, error)
	GetTasks(db *gorm.DB, authorID uint, status models.TaskStatus) ([]models.Task, error)
	UpdateTask(db *gorm.DB, id, authorID uint, title string, status models.TaskStatus) (models.Task, error)
	DeleteTask(db *gorm.DB, id, authorID uint) error
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, authorID uint, title string) (models.Task, error) {
	task := models.Task{
		Title:    title,
		Status:   models.TaskStatusPending,
		AuthorID: authorID,
	}
	if err := db.Create(&task).Error; err != nil {
		return models.Task{}, translate(err, nil, ErrUserNotFound, nil)
	}
	return task, nil
}

// GetTasks lists the author's tasks, newest first. An unknown status is
// ignored and the list comes back unfiltered.
func (s *TaskServiceImpl) GetTasks(db *gorm.DB, authorID uint, status models.TaskStatus) ([]models.Task, error) {
	query := db.Where("author_id = ?", authorID)
	if status.IsValid() {
		query = query.Where("status = ?", status)
	}

	tasks := make([]models.Task, 0)
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask patches title and/or status, but only on the requester's own
// task. An empty title and an unknown status are both ignored rather than
// rejected. A task that is missing or owned by someone else yields the same
// ErrTaskNotFound either way.
func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, id, authorID uint, title string, status models.TaskStatus) (models.Task, error) {
	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
	}
	if status.IsValid() {
		updates["status"] = status
	}

	if len(updates) > 0 {
		res := db.Model(&models.Task{}).
			Where("id = ? AND author_id = ?", id, authorID).
			Updates(updates)
		if res.Error != nil {
			return models.Task{}, res.Error
		}
		if res.RowsAffected == 0 {
			return models.Task{}, ErrTaskNotFound
		}
	}

	var task models.Task
	err := db.Where("id = ? AND author_id = ?", id, authorID).First(&task).Error
	if err != nil {
		return models.Task{}, translate(err, nil, nil, ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, id, authorID uint) error {
	res := db.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
