package handlers

import (
	"net/http"

	"feedify/internal/middleware"
	"feedify/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TimelineHandler struct {
	db              *gorm.DB
	timelineService services.TimelineService
}

func NewTimelineHandler(db *gorm.DB, timelineService services.TimelineService) *TimelineHandler {
	return &TimelineHandler{db: db, timelineService: timelineService}
}

// GetTimeline returns the requester's feed, newest first. A requester who
// follows nobody gets an empty list.
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "x-user-id header is required"})
		return
	}

	entries, err := h.timelineService.GetTimeline(h.db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load timeline"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
