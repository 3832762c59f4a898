package validation

import (
	"fmt"
	"regexp"
)

// githubLoginRegex enforces GitHub's account-name charset: alphanumeric with
// single interior hyphens, never leading or trailing.
var githubLoginRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:-?[a-zA-Z0-9])*$`)

// ValidateGithubLogin checks that a login is a well-formed GitHub account
// name: 1-39 characters, alphanumeric and hyphens, no leading, trailing, or
// consecutive hyphens.
func ValidateGithubLogin(login string) error {
	if login == "" {
		return fmt.Errorf("github login is required")
	}

	if len(login) > 39 {
		return fmt.Errorf("github login must not exceed 39 characters")
	}

	if !githubLoginRegex.MatchString(login) {
		return fmt.Errorf("github login can only contain letters, numbers, and single hyphens, and cannot start or end with a hyphen")
	}

	return nil
}
