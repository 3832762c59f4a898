package service

import (
	"context"
	"testing"
	"time"

	"resumin/internal/analytics"
	"resumin/internal/geoip"
	"resumin/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geoStub struct {
	loc *geoip.Location
}

func (g *geoStub) Lookup(_ context.Context, _ string) *geoip.Location {
	return g.loc
}

func trackedEventsRepo(store *[]models.AnalyticsEvent) *eventRepoStub {
	return &eventRepoStub{
		createFn: func(_ context.Context, event *models.AnalyticsEvent) error {
			*store = append(*store, *event)
			return nil
		},
	}
}

func publicTrackingProfile() *profileRepoStub {
	profile := &models.Profile{Username: "jane", IsPublic: true}
	profile.ID = 3
	return &profileRepoStub{
		getPublicByUsernameFn: func(_ context.Context, _ string) (*models.Profile, error) {
			return profile, nil
		},
	}
}

func TestTrackingService_Track(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown event type", func(t *testing.T) {
		t.Parallel()

		svc := NewTrackingService(&eventRepoStub{}, &profileRepoStub{}, nil, nil)
		_, err := svc.Track(context.Background(), "jane", TrackEventInput{EventType: "scroll"})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("unpublished profile is not trackable", func(t *testing.T) {
		t.Parallel()

		profiles := &profileRepoStub{
			getPublicByUsernameFn: func(_ context.Context, _ string) (*models.Profile, error) {
				return nil, models.NewNotFoundError("Profile", "jane")
			},
		}
		svc := NewTrackingService(&eventRepoStub{}, profiles, nil, nil)
		_, err := svc.Track(context.Background(), "jane", TrackEventInput{EventType: models.EventPageView})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("records page view with device metadata", func(t *testing.T) {
		t.Parallel()

		var stored []models.AnalyticsEvent
		svc := NewTrackingService(trackedEventsRepo(&stored), publicTrackingProfile(), analytics.NewViewGuard(nil), nil)

		recorded, err := svc.Track(context.Background(), "Jane", TrackEventInput{
			EventType: models.EventPageView,
			SessionID: "s1",
			UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 Version/17.0 Mobile/15E148 Safari/604.1",
		})
		require.NoError(t, err)
		assert.True(t, recorded)
		require.Len(t, stored, 1)

		event := stored[0]
		assert.Equal(t, uint(3), event.ProfileID)
		assert.Equal(t, "jane", event.Username)
		assert.Equal(t, models.DeviceMobile, event.Metadata.Device)
		assert.Equal(t, "Safari", event.Metadata.Browser)
	})

	t.Run("repeat view within window is suppressed", func(t *testing.T) {
		t.Parallel()

		var stored []models.AnalyticsEvent
		guard := analytics.NewViewGuard(nil)
		svc := NewTrackingService(trackedEventsRepo(&stored), publicTrackingProfile(), guard, nil)

		in := TrackEventInput{EventType: models.EventPageView, SessionID: "s1"}

		recorded, err := svc.Track(context.Background(), "jane", in)
		require.NoError(t, err)
		assert.True(t, recorded)

		recorded, err = svc.Track(context.Background(), "jane", in)
		require.NoError(t, err)
		assert.False(t, recorded, "second view inside the window must be dropped")
		assert.Len(t, stored, 1)
	})

	t.Run("session window survives via redis", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })

		var stored []models.AnalyticsEvent
		events := trackedEventsRepo(&stored)
		in := TrackEventInput{EventType: models.EventPageView, SessionID: "s1"}

		first := NewTrackingService(events, publicTrackingProfile(), analytics.NewViewGuard(rdb), nil)
		recorded, err := first.Track(context.Background(), "jane", in)
		require.NoError(t, err)
		assert.True(t, recorded)

		// A fresh guard has no in-memory state; only the redis session key
		// keeps the reload suppressed.
		second := NewTrackingService(events, publicTrackingProfile(), analytics.NewViewGuard(rdb), nil)
		recorded, err = second.Track(context.Background(), "jane", in)
		require.NoError(t, err)
		assert.False(t, recorded)
		assert.Len(t, stored, 1)
	})

	t.Run("failed write does not start a suppression window", func(t *testing.T) {
		t.Parallel()

		calls := 0
		events := &eventRepoStub{
			createFn: func(_ context.Context, _ *models.AnalyticsEvent) error {
				calls++
				if calls == 1 {
					return assert.AnError
				}
				return nil
			},
		}
		svc := NewTrackingService(events, publicTrackingProfile(), analytics.NewViewGuard(nil), nil)
		in := TrackEventInput{EventType: models.EventPageView, SessionID: "s1"}

		_, err := svc.Track(context.Background(), "jane", in)
		require.Error(t, err)

		recorded, err := svc.Track(context.Background(), "jane", in)
		require.NoError(t, err)
		assert.True(t, recorded, "retry after a failed write must go through")
	})

	t.Run("link clicks bypass the guard", func(t *testing.T) {
		t.Parallel()

		var stored []models.AnalyticsEvent
		svc := NewTrackingService(trackedEventsRepo(&stored), publicTrackingProfile(), analytics.NewViewGuard(nil), nil)

		for i := 0; i < 3; i++ {
			recorded, err := svc.Track(context.Background(), "jane", TrackEventInput{
				EventType: models.EventLinkClick,
				SessionID: "s1",
				LinkURL:   "https://github.com/jane",
			})
			require.NoError(t, err)
			assert.True(t, recorded)
		}
		assert.Len(t, stored, 3)
	})

	t.Run("geo enrichment is applied when available", func(t *testing.T) {
		t.Parallel()

		var stored []models.AnalyticsEvent
		geo := &geoStub{loc: &geoip.Location{Country: "Germany", City: "Berlin", Timezone: "Europe/Berlin"}}
		svc := NewTrackingService(trackedEventsRepo(&stored), publicTrackingProfile(), nil, geo)

		recorded, err := svc.Track(context.Background(), "jane", TrackEventInput{
			EventType: models.EventPageView,
			SessionID: "s1",
			IP:        "203.0.113.9",
		})
		require.NoError(t, err)
		assert.True(t, recorded)
		require.Len(t, stored, 1)
		assert.Equal(t, "Germany", stored[0].Metadata.Country)
		assert.Equal(t, "Berlin", stored[0].Metadata.City)
	})

	t.Run("timestamps are stored in UTC", func(t *testing.T) {
		t.Parallel()

		var stored []models.AnalyticsEvent
		svc := NewTrackingService(trackedEventsRepo(&stored), publicTrackingProfile(), nil, nil)
		svc.nowFn = func() time.Time {
			return time.Date(2025, 6, 15, 14, 30, 0, 0, time.FixedZone("CEST", 2*3600))
		}

		_, err := svc.Track(context.Background(), "jane", TrackEventInput{EventType: models.EventPageView})
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, time.UTC, stored[0].Timestamp.Location())
		assert.Equal(t, 12, stored[0].Timestamp.Hour())
	})
}
