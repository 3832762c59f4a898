// Package geoip resolves visitor IP addresses to coarse location data for
// analytics enrichment. Lookups are best effort: failures never block event
// tracking.
package geoip

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"resumin/internal/middleware"
	"resumin/internal/observability"

	"github.com/go-resty/resty/v2"
)

// Location is the subset of geolocation fields attached to analytics events.
type Location struct {
	Country  string `json:"country_name"`
	City     string `json:"city"`
	Timezone string `json:"timezone"`
}

// Client queries the ipapi.co JSON endpoint.
type Client struct {
	http    *resty.Client
	enabled bool
}

// New returns a geoip client against the given base URL (e.g. https://ipapi.co).
func New(baseURL string, enabled bool) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(3 * time.Second).
			SetHeader("User-Agent", "resumin-api"),
		enabled: enabled,
	}
}

// Lookup resolves an IP to a location. Returns nil for private, malformed,
// or unresolvable addresses. Never returns an error to the caller; failures
// are logged and counted.
func (c *Client) Lookup(ctx context.Context, ip string) *Location {
	if c == nil || !c.enabled {
		return nil
	}
	if !isPublicIP(ip) {
		observability.GeoIPLookups.WithLabelValues("skipped").Inc()
		return nil
	}

	var loc Location
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&loc).
		Get(fmt.Sprintf("/%s/json/", ip))
	if err != nil {
		observability.GeoIPLookups.WithLabelValues("error").Inc()
		middleware.Logger.WarnContext(ctx, "geoip lookup failed", slog.String("error", err.Error()))
		return nil
	}
	if resp.IsError() {
		observability.GeoIPLookups.WithLabelValues("error").Inc()
		return nil
	}

	observability.GeoIPLookups.WithLabelValues("ok").Inc()
	if loc.Country == "" && loc.City == "" {
		return nil
	}
	return &loc
}

// isPublicIP rejects loopback, private, and malformed addresses so we never
// waste a lookup on them.
func isPublicIP(raw string) bool {
	raw = strings.TrimSpace(raw)
	ip := net.ParseIP(raw)
	if ip == nil {
		return false
	}
	return !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() && !ip.IsLinkLocalUnicast()
}
