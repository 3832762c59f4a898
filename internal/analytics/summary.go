// Package analytics reduces a profile's raw visit-event log into the summary
// shape shown on the owner dashboard, and guards page-view tracking against
// rapid duplicate writes.
//
// Aggregation is a full rescan of the event list on every call. That is
// deliberate and acceptable only because personal resume pages see small
// event volumes; at real traffic volumes this would need pre-aggregated
// rollups instead.
package analytics

import (
	"net/url"
	"sort"
	"time"

	"resumin/internal/models"
)

const (
	topListSize     = 5
	recentViewsSize = 10
)

// EmptySummary returns the all-zero summary shape. It is what callers see
// both when a profile has no events yet and when aggregation failed; the two
// cases are intentionally indistinguishable.
func EmptySummary() models.AnalyticsSummary {
	return models.AnalyticsSummary{
		TopCountries: []models.CountryCount{},
		TopReferrers: []models.ReferrerCount{},
		RecentViews:  []models.RecentView{},
		PeakHours:    []models.HourCount{},
		WeeklyTrend:  []models.TrendPoint{},
	}
}

// Summarize reduces an unordered event list into the dashboard summary.
// Time windows are rolling (now-7d, now-30d), not calendar-aligned. The
// input slice is not mutated.
func Summarize(events []models.AnalyticsEvent, now time.Time) models.AnalyticsSummary {
	pageViews := make([]models.AnalyticsEvent, 0, len(events))
	for _, e := range events {
		if e.EventType == models.EventPageView {
			pageViews = append(pageViews, e)
		}
	}
	// Newest first, for the recent-views list.
	sort.SliceStable(pageViews, func(i, j int) bool {
		return pageViews[i].Timestamp.After(pageViews[j].Timestamp)
	})

	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	summary := EmptySummary()
	summary.TotalViews = len(pageViews)

	sessions := make(map[string]struct{})
	countryCounts := newCounter()
	referrerCounts := newCounter()
	var hourBuckets [24]int

	for _, e := range pageViews {
		sessions[e.SessionID] = struct{}{}

		if !e.Timestamp.Before(weekAgo) {
			summary.ViewsThisWeek++
		}
		if !e.Timestamp.Before(monthAgo) {
			summary.ViewsThisMonth++
		}

		country := e.Metadata.Country
		if country == "" {
			country = "Unknown"
		}
		countryCounts.add(country)
		referrerCounts.add(referrerKey(e.Metadata.Referrer))

		device := e.Metadata.Device
		if device == "" {
			device = DetectDevice(e.Metadata.UserAgent)
		}
		switch device {
		case models.DeviceMobile:
			summary.DeviceBreakdown.Mobile++
		case models.DeviceTablet:
			summary.DeviceBreakdown.Tablet++
		default:
			summary.DeviceBreakdown.Desktop++
		}

		// Events are stored in UTC, so peak hours bucket by UTC hour-of-day;
		// the dashboard shifts them to the viewer's zone.
		hourBuckets[e.Timestamp.Hour()]++
	}
	summary.UniqueVisitors = len(sessions)

	for _, kc := range countryCounts.top(topListSize) {
		summary.TopCountries = append(summary.TopCountries, models.CountryCount{Country: kc.key, Count: kc.count})
	}
	for _, kc := range referrerCounts.top(topListSize) {
		summary.TopReferrers = append(summary.TopReferrers, models.ReferrerCount{Referrer: kc.key, Count: kc.count})
	}

	for i, e := range pageViews {
		if i == recentViewsSize {
			break
		}
		referrer := e.Metadata.Referrer
		if referrer == "" || referrer == "direct" {
			referrer = "Direct"
		}
		device := e.Metadata.Device
		if device == "" {
			device = DetectDevice(e.Metadata.UserAgent)
		}
		summary.RecentViews = append(summary.RecentViews, models.RecentView{
			Timestamp: e.Timestamp,
			Country:   e.Metadata.Country,
			Device:    device,
			Referrer:  referrer,
		})
	}

	for _, e := range events {
		switch e.EventType {
		case models.EventContactClick:
			switch e.Metadata.ContactType {
			case models.ContactEmail:
				summary.ClickThroughs.Email++
			case models.ContactPhone:
				summary.ClickThroughs.Phone++
			case models.ContactSocial:
				summary.ClickThroughs.Social++
			default:
				summary.ClickThroughs.Links++
			}
		case models.EventLinkClick:
			summary.ClickThroughs.Links++
		}
	}

	for hour, count := range hourBuckets {
		summary.PeakHours = append(summary.PeakHours, models.HourCount{Hour: hour, Count: count})
	}

	summary.WeeklyTrend = weeklyTrend(pageViews, now)

	return summary
}

// weeklyTrend always yields exactly 7 points, oldest to newest, one per
// calendar day keyed by ISO date, zero-filled for days without views.
func weeklyTrend(pageViews []models.AnalyticsEvent, now time.Time) []models.TrendPoint {
	counts := make(map[string]int, len(pageViews))
	for _, e := range pageViews {
		counts[e.Timestamp.UTC().Format("2006-01-02")]++
	}

	trend := make([]models.TrendPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")
		trend = append(trend, models.TrendPoint{Date: date, Views: counts[date]})
	}
	return trend
}

// referrerKey reduces a raw referrer to its grouping key: "Direct" for
// missing/direct referrers, the hostname for parseable URLs, "Unknown"
// otherwise.
func referrerKey(referrer string) string {
	if referrer == "" || referrer == "direct" {
		return "Direct"
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return "Unknown"
	}
	return u.Hostname()
}

// counter counts keys while remembering first-seen order, which serves as
// the stable tie-break for equal counts in top-N lists.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

type keyCount struct {
	key   string
	count int
}

func (c *counter) top(n int) []keyCount {
	out := make([]keyCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, keyCount{key: key, count: c.counts[key]})
	}
	// Stable sort keeps first-seen order for equal counts.
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
