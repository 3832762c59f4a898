package service

import (
	"context"
	"log/slog"
	"time"

	"resumin/internal/analytics"
	"resumin/internal/cache"
	"resumin/internal/middleware"
	"resumin/internal/models"
	"resumin/internal/repository"
)

// AnalyticsService computes dashboard summaries from raw events.
type AnalyticsService struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
	nowFn       func() time.Time
}

// NewAnalyticsService returns a new AnalyticsService.
func NewAnalyticsService(eventRepo repository.EventRepository, profileRepo repository.ProfileRepository) *AnalyticsService {
	return &AnalyticsService{
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		nowFn:       time.Now,
	}
}

// GetSummary aggregates the full event history of the user's profile. A
// failed event read degrades to an empty summary rather than an error: the
// dashboard always renders.
func (s *AnalyticsService) GetSummary(ctx context.Context, userID uint) (models.AnalyticsSummary, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return analytics.EmptySummary(), err
	}

	// The summary is cached briefly; recent views may lag by up to the TTL.
	var summary models.AnalyticsSummary
	cacheErr := cache.Aside(ctx, cache.AnalyticsSummaryKey(profile.ID), &summary, cache.AnalyticsSummaryTTL, func() error {
		events, err := s.eventRepo.ListByProfile(ctx, profile.ID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "analytics read failed, serving empty summary",
				slog.Any("profile_id", profile.ID),
				slog.String("error", err.Error()),
			)
			summary = analytics.EmptySummary()
			return nil
		}
		summary = analytics.Summarize(events, s.nowFn())
		return nil
	})
	if cacheErr != nil {
		return analytics.EmptySummary(), cacheErr
	}
	return summary, nil
}

// ResetAnalytics deletes all recorded events for the user's profile.
func (s *AnalyticsService) ResetAnalytics(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.DeleteByProfile(ctx, profile.ID); err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.AnalyticsSummaryKey(profile.ID))
	return nil
}
