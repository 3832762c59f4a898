package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix          = "user:%d"
	ProfileKeyPrefix       = "profile:%d"
	PublicProfilePrefix    = "public-profile:%s"
	RenderedResumePrefix   = "rendered-resume:%s"
	TestimonialsKeyPrefix  = "testimonials:%d"
	AnalyticsSummaryPrefix = "analytics:%d"
)

const (
	UserTTL             = 5 * time.Minute
	ProfileTTL          = 5 * time.Minute
	PublicProfileTTL    = 2 * time.Minute
	TestimonialsTTL     = 5 * time.Minute
	AnalyticsSummaryTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ProfileKey(profileID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, profileID)
}

func PublicProfileKey(username string) string {
	return fmt.Sprintf(PublicProfilePrefix, username)
}

func RenderedResumeKey(username string) string {
	return fmt.Sprintf(RenderedResumePrefix, username)
}

func TestimonialsKey(profileID uint) string {
	return fmt.Sprintf(TestimonialsKeyPrefix, profileID)
}

func AnalyticsSummaryKey(profileID uint) string {
	return fmt.Sprintf(AnalyticsSummaryPrefix, profileID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops every cached view derived from a profile. Called
// after any profile mutation so the public page never serves stale data
// longer than one request.
func InvalidateProfile(ctx context.Context, profileID uint, username string) {
	Invalidate(ctx, ProfileKey(profileID))
	if username != "" {
		Invalidate(ctx, PublicProfileKey(username))
		Invalidate(ctx, RenderedResumeKey(username))
	}
}

func InvalidateTestimonials(ctx context.Context, profileID uint) {
	Invalidate(ctx, TestimonialsKey(profileID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
