package models

import (
	"time"
)

// EventType tags one recorded visitor interaction.
type EventType string

const (
	EventPageView        EventType = "page_view"
	EventLinkClick       EventType = "link_click"
	EventContactClick    EventType = "contact_click"
	EventDownloadClick   EventType = "download_click"
	EventShareClick      EventType = "share_click"
	EventTestimonialView EventType = "testimonial_view"
)

// KnownEventType reports whether t is one of the recognized event tags.
func KnownEventType(t EventType) bool {
	switch t {
	case EventPageView, EventLinkClick, EventContactClick,
		EventDownloadClick, EventShareClick, EventTestimonialView:
		return true
	}
	return false
}

// DeviceClass partitions page views by form factor.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
)

// ContactType buckets contact_click events.
type ContactType string

const (
	ContactEmail  ContactType = "email"
	ContactPhone  ContactType = "phone"
	ContactSocial ContactType = "social"
	ContactLinks  ContactType = "links"
)

// EventMetadata is the per-event metadata bag. All fields are best-effort.
type EventMetadata struct {
	UserAgent   string      `json:"userAgent,omitempty"`
	Referrer    string      `json:"referrer,omitempty"`
	Device      DeviceClass `json:"device,omitempty"`
	Browser     string      `json:"browser,omitempty"`
	OS          string      `json:"os,omitempty"`
	IP          string      `json:"ip,omitempty"`
	Country     string      `json:"country,omitempty"`
	City        string      `json:"city,omitempty"`
	Timezone    string      `json:"timezone,omitempty"`
	LinkURL     string      `json:"linkUrl,omitempty"`
	ContactType ContactType `json:"contactType,omitempty"`
}

// AnalyticsEvent is one immutable record per visitor interaction. Events are
// never updated or deleted by normal flow.
type AnalyticsEvent struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ProfileID uint          `gorm:"index;not null" json:"profile_id"`
	Username  string        `json:"username"`
	EventType EventType     `gorm:"not null" json:"eventType"`
	SessionID string        `gorm:"index" json:"sessionId"`
	Metadata  EventMetadata `gorm:"serializer:json" json:"metadata"`
	Timestamp time.Time     `gorm:"index" json:"timestamp"`
	CreatedAt time.Time     `json:"-"`
}

// CountryCount is one entry of the top-countries breakdown.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// ReferrerCount is one entry of the top-referrers breakdown.
type ReferrerCount struct {
	Referrer string `json:"referrer"`
	Count    int    `json:"count"`
}

// DeviceBreakdown partitions page views into the three device classes.
type DeviceBreakdown struct {
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
	Desktop int `json:"desktop"`
}

// RecentView summarizes one of the most recent page views.
type RecentView struct {
	Timestamp time.Time   `json:"timestamp"`
	Country   string      `json:"country,omitempty"`
	Device    DeviceClass `json:"device"`
	Referrer  string      `json:"referrer"`
}

// ClickThroughs counts click events by contact category.
type ClickThroughs struct {
	Email  int `json:"email"`
	Phone  int `json:"phone"`
	Social int `json:"social"`
	Links  int `json:"links"`
}

// HourCount is one bucket of the 24-hour histogram.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TrendPoint is one day of the weekly trend, keyed by ISO date.
type TrendPoint struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// AnalyticsSummary is the derived aggregate for one profile. It is computed
// on demand from the full event list and never persisted.
type AnalyticsSummary struct {
	TotalViews      int             `json:"totalViews"`
	UniqueVisitors  int             `json:"uniqueVisitors"`
	ViewsThisWeek   int             `json:"viewsThisWeek"`
	ViewsThisMonth  int             `json:"viewsThisMonth"`
	TopCountries    []CountryCount  `json:"topCountries"`
	TopReferrers    []ReferrerCount `json:"topReferrers"`
	DeviceBreakdown DeviceBreakdown `json:"deviceBreakdown"`
	RecentViews     []RecentView    `json:"recentViews"`
	ClickThroughs   ClickThroughs   `json:"clickThroughs"`
	PeakHours       []HourCount     `json:"peakHours"`
	WeeklyTrend     []TrendPoint    `json:"weeklyTrend"`
}
