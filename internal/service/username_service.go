package service

import (
	"context"
	"log/slog"

	"resumin/internal/middleware"
	"resumin/internal/repository"
	"resumin/internal/validation"
)

// UsernameStatus is the availability verdict for a candidate username.
type UsernameStatus string

const (
	// UsernameIdle means no verdict could be produced (lookup failure). The
	// client treats it as "try again", never as taken.
	UsernameIdle      UsernameStatus = "idle"
	UsernameAvailable UsernameStatus = "available"
	UsernameTaken     UsernameStatus = "taken"
	UsernameInvalid   UsernameStatus = "invalid"
)

// UsernameCheck is the response of an availability check.
type UsernameCheck struct {
	Username string         `json:"username"`
	Status   UsernameStatus `json:"status"`
	Reason   string         `json:"reason,omitempty"`
}

// UsernameService answers availability checks during profile editing.
type UsernameService struct {
	profileRepo repository.ProfileRepository
}

// NewUsernameService returns a new UsernameService.
func NewUsernameService(profileRepo repository.ProfileRepository) *UsernameService {
	return &UsernameService{profileRepo: profileRepo}
}

// Check reports whether username is available to the given user. A username
// already owned by that user reports available, so keeping your current
// username never blocks a save.
func (s *UsernameService) Check(ctx context.Context, username string, userID uint) UsernameCheck {
	normalized := validation.NormalizeUsername(username)

	if err := validation.ValidateUsername(normalized); err != nil {
		return UsernameCheck{Username: normalized, Status: UsernameInvalid, Reason: err.Error()}
	}

	existing, err := s.profileRepo.FindByUsername(ctx, normalized)
	if err != nil {
		// Lookup failures must not masquerade as a verdict.
		middleware.Logger.WarnContext(ctx, "username availability lookup failed",
			slog.String("username", normalized),
			slog.String("error", err.Error()),
		)
		return UsernameCheck{Username: normalized, Status: UsernameIdle}
	}

	if existing == nil || existing.UserID == userID {
		return UsernameCheck{Username: normalized, Status: UsernameAvailable}
	}
	return UsernameCheck{Username: normalized, Status: UsernameTaken}
}
