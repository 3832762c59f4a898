// Package service implements the application's business logic.
package service

import (
	"context"

	"resumin/internal/cache"
	"resumin/internal/layout"
	"resumin/internal/models"
	"resumin/internal/repository"
	"resumin/internal/validation"
)

// ProfileService manages resume profiles and their layouts.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// ProfileInput is the whole-document payload for create and update. The
// stored profile is replaced by what is submitted; collections are not merged.
type ProfileInput struct {
	Username          string                      `json:"username"`
	Name              string                      `json:"name"`
	Title             string                      `json:"title"`
	Bio               string                      `json:"bio"`
	Email             string                      `json:"email"`
	ShowEmail         bool                        `json:"showEmail"`
	Phone             string                      `json:"phone"`
	Location          string                      `json:"location"`
	Availability      models.Availability         `json:"availability"`
	PreferredLocation string                      `json:"preferredLocation"`
	IsPublic          *bool                       `json:"isPublic"`
	Theme             models.Theme                `json:"theme"`
	Skills            []models.Skill              `json:"skills"`
	Socials           map[string]string           `json:"socials"`
	Education         []models.EducationEntry     `json:"education"`
	Experience        []models.ExperienceEntry    `json:"experience"`
	Projects          []models.ProjectEntry       `json:"projects"`
	Certifications    []models.CertificationEntry `json:"certifications"`
	Achievements      []models.AchievementEntry   `json:"achievements"`
	Languages         []models.LanguageEntry      `json:"languages"`
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetMyProfile returns the calling user's profile.
func (s *ProfileService) GetMyProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// CreateProfile creates the user's profile. Each user owns exactly one.
func (s *ProfileService) CreateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if userID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	username := validation.NormalizeUsername(in.Username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := s.ensureUsernameFree(ctx, username, userID); err != nil {
		return nil, err
	}

	profile := &models.Profile{
		UserID:   userID,
		Username: username,
		IsPublic: true,
		Layout:   models.DefaultLayout(),
		Theme:    models.ThemeOrange,
	}
	applyInput(profile, in)

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile replaces the user's profile content with the submitted
// document. The layout is left untouched; use UpdateLayout for that.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}

	previous := profile.Username
	username := validation.NormalizeUsername(in.Username)
	if username != previous {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if err := s.ensureUsernameFree(ctx, username, userID); err != nil {
			return nil, err
		}
		// The old public URL is gone the moment this commits.
		profile.Username = username
	}

	applyInput(profile, in)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if username != previous {
		// Update only invalidates the new name's keys; drop the old name's
		// cached pages so the abandoned URL stops resolving immediately.
		cache.InvalidateProfile(ctx, profile.ID, previous)
	}
	return profile, nil
}

// UpdateLayout validates and stores a new layout configuration.
func (s *ProfileService) UpdateLayout(ctx context.Context, userID uint, l models.Layout) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	profile.Layout = l
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SetVisibility publishes or unpublishes the profile.
func (s *ProfileService) SetVisibility(ctx context.Context, userID uint, public bool) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.IsPublic = public
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteProfile removes the user's profile.
func (s *ProfileService) DeleteProfile(ctx context.Context, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.profileRepo.Delete(ctx, profile.ID)
}

// GetPublicProfile returns the published profile for a username.
func (s *ProfileService) GetPublicProfile(ctx context.Context, username string) (*models.Profile, error) {
	return s.profileRepo.GetPublicByUsername(ctx, validation.NormalizeUsername(username))
}

// RenderPublicResume builds the render tree for a published profile. The
// result is cached; any profile mutation invalidates it.
func (s *ProfileService) RenderPublicResume(ctx context.Context, username string) (*layout.Resume, error) {
	normalized := validation.NormalizeUsername(username)

	var resume layout.Resume
	err := cache.Aside(ctx, cache.RenderedResumeKey(normalized), &resume, cache.PublicProfileTTL, func() error {
		profile, err := s.profileRepo.GetPublicByUsername(ctx, normalized)
		if err != nil {
			return err
		}
		resume = layout.Render(profile, profile.Layout)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

// ensureUsernameFree fails when the username belongs to a different user.
// A user keeping their own username is never a conflict.
func (s *ProfileService) ensureUsernameFree(ctx context.Context, username string, userID uint) error {
	existing, err := s.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.UserID != userID {
		return models.NewValidationError("Username is already taken")
	}
	return nil
}

func applyInput(profile *models.Profile, in ProfileInput) {
	profile.Name = in.Name
	profile.Title = in.Title
	profile.Bio = in.Bio
	profile.Email = in.Email
	profile.ShowEmail = in.ShowEmail
	profile.Phone = in.Phone
	profile.Location = in.Location
	profile.Availability = in.Availability
	profile.PreferredLocation = in.PreferredLocation
	if in.IsPublic != nil {
		profile.IsPublic = *in.IsPublic
	}
	if in.Theme != "" {
		profile.Theme = in.Theme
	}
	profile.Skills = in.Skills
	profile.Socials = in.Socials
	profile.Education = in.Education
	profile.Experience = in.Experience
	profile.Projects = in.Projects
	profile.Certifications = in.Certifications
	profile.Achievements = in.Achievements
	profile.Languages = in.Languages
}
