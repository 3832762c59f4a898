package repository

import (
	"context"

	"resumin/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for analytics events.
type EventRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) error
	// ListByProfile returns every event recorded for a profile. The summary
	// is computed over the full history, so no pagination here.
	ListByProfile(ctx context.Context, profileID uint) ([]models.AnalyticsEvent, error)
	DeleteByProfile(ctx context.Context, profileID uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.AnalyticsEvent, error) {
	var events []models.AnalyticsEvent
	if err := readDB(r.db).WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("timestamp DESC").
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) DeleteByProfile(ctx context.Context, profileID uint) error {
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&models.AnalyticsEvent{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
