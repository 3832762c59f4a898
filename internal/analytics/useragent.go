package analytics

import (
	"regexp"
	"strings"

	"resumin/internal/models"
)

// Tablet tokens are checked before the generic mobile pattern because most
// tablet user agents also match mobile-ish tokens.
var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`(?i)mobile|iphone|ipod|android|blackberry|opera|mini|windows\sce|palm|smartphone|iemobile`)
)

// DetectDevice classifies a user-agent string into a device class,
// defaulting to desktop when nothing matches.
func DetectDevice(userAgent string) models.DeviceClass {
	if tabletPattern.MatchString(userAgent) {
		return models.DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return models.DeviceMobile
	}
	return models.DeviceDesktop
}

// DetectBrowser extracts a coarse browser name from a user-agent string.
func DetectBrowser(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	case strings.Contains(userAgent, "OPR"), strings.Contains(userAgent, "Opera"):
		return "Opera"
	case strings.Contains(userAgent, "Chrome"):
		return "Chrome"
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Safari"):
		return "Safari"
	}
	return "Unknown"
}

// DetectOS extracts a coarse operating-system name from a user-agent string.
func DetectOS(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Windows"):
		return "Windows"
	case strings.Contains(userAgent, "Android"):
		return "Android"
	case strings.Contains(userAgent, "iPhone"), strings.Contains(userAgent, "iPad"), strings.Contains(userAgent, "iOS"):
		return "iOS"
	case strings.Contains(userAgent, "Mac"):
		return "macOS"
	case strings.Contains(userAgent, "Linux"):
		return "Linux"
	}
	return "Unknown"
}
