package service

import (
	"context"
	"log/slog"
	"time"

	"resumin/internal/analytics"
	"resumin/internal/geoip"
	"resumin/internal/middleware"
	"resumin/internal/models"
	"resumin/internal/observability"
	"resumin/internal/repository"
	"resumin/internal/validation"
)

// GeoResolver resolves an IP to a location, or nil when unknown.
type GeoResolver interface {
	Lookup(ctx context.Context, ip string) *geoip.Location
}

// TrackingService records visitor events against published profiles.
type TrackingService struct {
	eventRepo   repository.EventRepository
	profileRepo repository.ProfileRepository
	guard       *analytics.ViewGuard
	geo         GeoResolver
	nowFn       func() time.Time
}

// TrackEventInput is the public event-ingestion payload plus request-derived
// fields the handler fills in.
type TrackEventInput struct {
	EventType   models.EventType   `json:"eventType"`
	SessionID   string             `json:"sessionId"`
	Referrer    string             `json:"referrer"`
	LinkURL     string             `json:"linkUrl"`
	ContactType models.ContactType `json:"contactType"`
	UserAgent   string             `json:"-"`
	IP          string             `json:"-"`
}

// NewTrackingService returns a new TrackingService. geo may be nil.
func NewTrackingService(eventRepo repository.EventRepository, profileRepo repository.ProfileRepository, guard *analytics.ViewGuard, geo GeoResolver) *TrackingService {
	return &TrackingService{
		eventRepo:   eventRepo,
		profileRepo: profileRepo,
		guard:       guard,
		geo:         geo,
		nowFn:       time.Now,
	}
}

// Track validates and stores one event. Page views pass through the dedup
// guard: repeat views of the same profile within the guard window from the
// same session are dropped silently. Returns whether the event was recorded.
func (s *TrackingService) Track(ctx context.Context, username string, in TrackEventInput) (bool, error) {
	if !models.KnownEventType(in.EventType) {
		return false, models.NewValidationError("Unknown event type")
	}

	normalized := validation.NormalizeUsername(username)
	profile, err := s.profileRepo.GetPublicByUsername(ctx, normalized)
	if err != nil {
		return false, err
	}

	if in.EventType == models.EventPageView && s.guard != nil {
		if !s.guard.Allow(ctx, normalized, in.SessionID) {
			observability.PageViewsDeduplicated.Inc()
			return false, nil
		}
		tracked := false
		defer func() { s.guard.Done(ctx, normalized, in.SessionID, tracked) }()

		if err := s.store(ctx, profile, normalized, in); err != nil {
			return false, err
		}
		tracked = true
		return true, nil
	}

	if err := s.store(ctx, profile, normalized, in); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TrackingService) store(ctx context.Context, profile *models.Profile, username string, in TrackEventInput) error {
	metadata := models.EventMetadata{
		UserAgent:   in.UserAgent,
		Referrer:    in.Referrer,
		Device:      analytics.DetectDevice(in.UserAgent),
		Browser:     analytics.DetectBrowser(in.UserAgent),
		OS:          analytics.DetectOS(in.UserAgent),
		IP:          in.IP,
		LinkURL:     in.LinkURL,
		ContactType: in.ContactType,
	}

	// Location enrichment is best effort; a slow or failed lookup must not
	// lose the event.
	if s.geo != nil && in.IP != "" {
		if loc := s.geo.Lookup(ctx, in.IP); loc != nil {
			metadata.Country = loc.Country
			metadata.City = loc.City
			metadata.Timezone = loc.Timezone
		}
	}

	event := &models.AnalyticsEvent{
		ProfileID: profile.ID,
		Username:  username,
		EventType: in.EventType,
		SessionID: in.SessionID,
		Metadata:  metadata,
		Timestamp: s.nowFn().UTC(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to record analytics event",
			slog.String("event_type", string(in.EventType)),
			slog.String("error", err.Error()),
		)
		return err
	}

	observability.PageViewsTracked.WithLabelValues(string(in.EventType)).Inc()
	return nil
}
