// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// usernameRegex enforces the profile-URL charset: alphanumeric with interior
// hyphens, never leading or trailing.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)

// reservedUsernames are route words that would collide with application
// pages if used as a public profile slug.
var reservedUsernames = map[string]struct{}{
	"login":          {},
	"signup":         {},
	"dashboard":      {},
	"create-profile": {},
	"api":            {},
	"admin":          {},
	"settings":       {},
	"about":          {},
	"pricing":        {},
	"features":       {},
	"privacy":        {},
	"terms":          {},
	"donate":         {},
	"metrics":        {},
	"health":         {},
}

// ValidateUsername checks the profile-URL username rules: 3-30 characters,
// alphanumeric and hyphens only, no leading/trailing hyphen, no consecutive
// hyphens, and not a reserved route word.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, and hyphens, and cannot start or end with a hyphen")
	}

	if strings.Contains(username, "--") {
		return fmt.Errorf("username cannot contain consecutive hyphens")
	}

	if _, exists := reservedUsernames[strings.ToLower(username)]; exists {
		return fmt.Errorf("username is reserved")
	}

	return nil
}

// NormalizeUsername lowercases a username for storage and lookup; profile
// URLs are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
