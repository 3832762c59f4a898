package service

import (
	"context"
	"testing"

	"resumin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Function-field stubs so each test wires only the calls it cares about.
// Unset fields panic, which surfaces unexpected repository traffic.

type profileRepoStub struct {
	getByIDFn             func(ctx context.Context, id uint) (*models.Profile, error)
	getByUserIDFn         func(ctx context.Context, userID uint) (*models.Profile, error)
	findByUsernameFn      func(ctx context.Context, username string) (*models.Profile, error)
	getPublicByUsernameFn func(ctx context.Context, username string) (*models.Profile, error)
	createFn              func(ctx context.Context, profile *models.Profile) error
	updateFn              func(ctx context.Context, profile *models.Profile) error
	deleteFn              func(ctx context.Context, id uint) error
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}

func (s *profileRepoStub) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.findByUsernameFn(ctx, username)
}

func (s *profileRepoStub) GetPublicByUsername(ctx context.Context, username string) (*models.Profile, error) {
	return s.getPublicByUsernameFn(ctx, username)
}

func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}

func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}

func (s *profileRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type userRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	createFn        func(ctx context.Context, user *models.User) error
	updateFn        func(ctx context.Context, user *models.User) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type testimonialRepoStub struct {
	getByIDFn       func(ctx context.Context, id uint) (*models.Testimonial, error)
	listByProfileFn func(ctx context.Context, profileID uint) ([]models.Testimonial, error)
	listApprovedFn  func(ctx context.Context, profileID uint) ([]models.Testimonial, error)
	createFn        func(ctx context.Context, testimonial *models.Testimonial) error
	updateFn        func(ctx context.Context, testimonial *models.Testimonial) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (s *testimonialRepoStub) GetByID(ctx context.Context, id uint) (*models.Testimonial, error) {
	return s.getByIDFn(ctx, id)
}

func (s *testimonialRepoStub) ListByProfile(ctx context.Context, profileID uint) ([]models.Testimonial, error) {
	return s.listByProfileFn(ctx, profileID)
}

func (s *testimonialRepoStub) ListApproved(ctx context.Context, profileID uint) ([]models.Testimonial, error) {
	return s.listApprovedFn(ctx, profileID)
}

func (s *testimonialRepoStub) Create(ctx context.Context, testimonial *models.Testimonial) error {
	return s.createFn(ctx, testimonial)
}

func (s *testimonialRepoStub) Update(ctx context.Context, testimonial *models.Testimonial) error {
	return s.updateFn(ctx, testimonial)
}

func (s *testimonialRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type eventRepoStub struct {
	createFn          func(ctx context.Context, event *models.AnalyticsEvent) error
	listByProfileFn   func(ctx context.Context, profileID uint) ([]models.AnalyticsEvent, error)
	deleteByProfileFn func(ctx context.Context, profileID uint) error
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.AnalyticsEvent) error {
	return s.createFn(ctx, event)
}

func (s *eventRepoStub) ListByProfile(ctx context.Context, profileID uint) ([]models.AnalyticsEvent, error) {
	return s.listByProfileFn(ctx, profileID)
}

func (s *eventRepoStub) DeleteByProfile(ctx context.Context, profileID uint) error {
	return s.deleteByProfileFn(ctx, profileID)
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
