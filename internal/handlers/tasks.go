package handlers

import (
	"errors"
	"net/http"

	"feedify/internal/middleware"
	"feedify/internal/models"
	"feedify/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

type createTaskInput struct {
	Title string `json:"title"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var input createTaskInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	task, err := h.taskService.CreateTask(h.db, authorID, input.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks lists the requester's tasks, optionally filtered by ?status. An
// unknown status value is ignored, not rejected.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	status := models.TaskStatus(c.Query("status"))

	tasks, err := h.taskService.GetTasks(h.db, authorID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

type updateTaskInput struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var input updateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, id, authorID, input.Title, models.TaskStatus(input.Status))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			// Missing and not-yours answer the same way on purpose.
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found or not yours"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	authorID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.taskService.DeleteTask(h.db, id, authorID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found or not yours"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
