package services

import (
	"fmt"
	"time"

	"feedify/internal/cache"

	"gorm.io/gorm"
)

const timelineTTL = 30 * time.Second

// CachedTimelineService puts a short-lived redis cache in front of the
// timeline query. New posts and new follow edges invalidate every cached
// timeline, so the freshness window only covers reads that nothing changed
// in between. With the cache down the query just runs against the store.
type CachedTimelineService struct {
	timelineService TimelineService
	cache           *cache.Client
}

func NewCachedTimelineService(timelineService TimelineService, cacheClient *cache.Client) *CachedTimelineService {
	return &CachedTimelineService{
		timelineService: timelineService,
		cache:           cacheClient,
	}
}

func (s *CachedTimelineService) GetTimeline(db *gorm.DB, userID uint) ([]TimelineEntry, error) {
	cacheKey := fmt.Sprintf("timeline:%d", userID)

	var cached []TimelineEntry
	if err := s.cache.Get(cacheKey, &cached); err == nil {
		return cached, nil
	}

	entries, err := s.timelineService.GetTimeline(db, userID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, entries, timelineTTL)

	return entries, nil
}

// InvalidateTimelines drops every cached feed. Called after a post is
// created or a follow edge changes, since either can alter any follower's
// timeline.
func (s *CachedTimelineService) InvalidateTimelines() {
	s.cache.DeletePattern("timeline:*")
}
