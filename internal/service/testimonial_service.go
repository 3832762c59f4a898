package service

import (
	"context"
	"strings"

	"resumin/internal/models"
	"resumin/internal/repository"
	"resumin/internal/validation"
)

const maxTestimonialContentLen = 1000

// TestimonialService handles submission and moderation of testimonials.
type TestimonialService struct {
	testimonialRepo repository.TestimonialRepository
	profileRepo     repository.ProfileRepository
}

// SubmitTestimonialInput is the public submission payload.
type SubmitTestimonialInput struct {
	AuthorName  string `json:"authorName"`
	AuthorTitle string `json:"authorTitle"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
	Rating      int    `json:"rating"`
}

// NewTestimonialService returns a new TestimonialService.
func NewTestimonialService(testimonialRepo repository.TestimonialRepository, profileRepo repository.ProfileRepository) *TestimonialService {
	return &TestimonialService{testimonialRepo: testimonialRepo, profileRepo: profileRepo}
}

// Submit records a visitor testimonial against a published profile. It is
// held for moderation and not visible until the owner approves it.
func (s *TestimonialService) Submit(ctx context.Context, username string, in SubmitTestimonialInput) (*models.Testimonial, error) {
	profile, err := s.profileRepo.GetPublicByUsername(ctx, validation.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}

	in.AuthorName = strings.TrimSpace(in.AuthorName)
	in.Content = strings.TrimSpace(in.Content)

	if in.AuthorName == "" {
		return nil, models.NewValidationError("Author name is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxTestimonialContentLen {
		return nil, models.NewValidationError("Content too long (max 1000 characters)")
	}
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.AuthorEmail != "" {
		if err := validation.ValidateEmail(in.AuthorEmail); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	testimonial := &models.Testimonial{
		ProfileID:   profile.ID,
		AuthorName:  in.AuthorName,
		AuthorTitle: strings.TrimSpace(in.AuthorTitle),
		AuthorEmail: strings.TrimSpace(in.AuthorEmail),
		Content:     in.Content,
		Rating:      in.Rating,
		Approved:    false,
	}
	if err := s.testimonialRepo.Create(ctx, testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// ListPublic returns the approved testimonials for a published profile.
func (s *TestimonialService) ListPublic(ctx context.Context, username string) ([]models.Testimonial, error) {
	profile, err := s.profileRepo.GetPublicByUsername(ctx, validation.NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	return s.testimonialRepo.ListApproved(ctx, profile.ID)
}

// ListForOwner returns every testimonial on the user's profile, pending ones
// included.
func (s *TestimonialService) ListForOwner(ctx context.Context, userID uint) ([]models.Testimonial, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.testimonialRepo.ListByProfile(ctx, profile.ID)
}

// Approve marks a testimonial as publicly visible. Only the profile owner
// may approve.
func (s *TestimonialService) Approve(ctx context.Context, userID, testimonialID uint) (*models.Testimonial, error) {
	testimonial, err := s.authorize(ctx, userID, testimonialID)
	if err != nil {
		return nil, err
	}
	testimonial.Approved = true
	if err := s.testimonialRepo.Update(ctx, testimonial); err != nil {
		return nil, err
	}
	return testimonial, nil
}

// Reject deletes a testimonial. Used both to reject pending submissions and
// to retract previously approved ones.
func (s *TestimonialService) Reject(ctx context.Context, userID, testimonialID uint) error {
	testimonial, err := s.authorize(ctx, userID, testimonialID)
	if err != nil {
		return err
	}
	return s.testimonialRepo.Delete(ctx, testimonial.ID)
}

func (s *TestimonialService) authorize(ctx context.Context, userID, testimonialID uint) (*models.Testimonial, error) {
	testimonial, err := s.testimonialRepo.GetByID(ctx, testimonialID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if testimonial.ProfileID != profile.ID {
		return nil, models.NewForbiddenError("Testimonial belongs to another profile")
	}
	return testimonial, nil
}
