package repository

import (
	"context"
	"errors"

	"resumin/internal/cache"
	"resumin/internal/models"

	"gorm.io/gorm"
)

// TestimonialRepository defines persistence operations for testimonials.
type TestimonialRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Testimonial, error)
	// ListByProfile returns all testimonials for a profile, pending included,
	// newest first. Used by the owner's moderation view.
	ListByProfile(ctx context.Context, profileID uint) ([]models.Testimonial, error)
	// ListApproved returns only approved testimonials, newest first. Used by
	// the public resume page.
	ListApproved(ctx context.Context, profileID uint) ([]models.Testimonial, error)
	Create(ctx context.Context, testimonial *models.Testimonial) error
	Update(ctx context.Context, testimonial *models.Testimonial) error
	Delete(ctx context.Context, id uint) error
}

type testimonialRepository struct {
	db *gorm.DB
}

// NewTestimonialRepository returns a new TestimonialRepository implementation.
func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func (r *testimonialRepository) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	if err := readDB(r.db).WithContext(ctx).First(&testimonial, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Testimonial", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &testimonial, nil
}

func (r *testimonialRepository) ListByProfile(ctx context.Context, profileID uint) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	if err := readDB(r.db).WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&testimonials).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) ListApproved(ctx context.Context, profileID uint) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	key := cache.TestimonialsKey(profileID)

	err := cache.Aside(ctx, key, &testimonials, cache.TestimonialsTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).
			Where("profile_id = ? AND approved = ?", profileID, true).
			Order("created_at DESC").
			Find(&testimonials).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *testimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	if err := r.db.WithContext(ctx).Create(testimonial).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTestimonials(ctx, testimonial.ProfileID)
	return nil
}

func (r *testimonialRepository) Update(ctx context.Context, testimonial *models.Testimonial) error {
	if err := r.db.WithContext(ctx).Save(testimonial).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTestimonials(ctx, testimonial.ProfileID)
	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uint) error {
	testimonial, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Testimonial{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTestimonials(ctx, testimonial.ProfileID)
	return nil
}
