package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// TimelineInvalidator is notified whenever a write may change someone's
// feed. The cached timeline service implements it; a nil invalidator means
// no cache is in play.
type TimelineInvalidator interface {
	InvalidateTimelines()
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
