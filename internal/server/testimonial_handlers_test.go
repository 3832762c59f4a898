package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"resumin/internal/config"
	"resumin/internal/models"
	"resumin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestimonialServer(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) *Server {
	s := &Server{config: &config.Config{}}
	s.testimonialService = service.NewTestimonialService(testimonials, profiles)
	return s
}

func TestSubmitTestimonial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"authorName": "John Smith",
				"content":    "Great engineer to work with.",
				"rating":     5,
			},
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
				testimonials.On("Create", mock.Anything, mock.MatchedBy(func(tm *models.Testimonial) bool {
					return tm.ProfileID == 7 && !tm.Approved
				})).Return(nil)
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "Missing author name",
			body: map[string]any{"content": "Nice.", "rating": 4},
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "Rating out of range",
			body: map[string]any{"authorName": "John", "content": "Nice.", "rating": 6},
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
			},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "Unpublished profile",
			body: map[string]any{"authorName": "John", "content": "Nice.", "rating": 4},
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").
					Return(nil, models.NewNotFoundError("Profile", "jane"))
			},
			expectedStatus: fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockProfiles := new(MockProfileRepository)
			mockTestimonials := new(MockTestimonialRepository)
			tt.mockSetup(mockProfiles, mockTestimonials)

			s := newTestimonialServer(mockProfiles, mockTestimonials)
			app := fiber.New()
			app.Post("/p/:username/testimonials", s.SubmitTestimonial)

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/p/jane/testimonials", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockProfiles.AssertExpectations(t)
			mockTestimonials.AssertExpectations(t)
		})
	}
}

func TestGetPublicTestimonials(t *testing.T) {
	t.Parallel()

	mockProfiles := new(MockProfileRepository)
	mockTestimonials := new(MockTestimonialRepository)
	mockProfiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
	mockTestimonials.On("ListApproved", mock.Anything, uint(7)).Return([]models.Testimonial{
		{ID: 1, ProfileID: 7, AuthorName: "John", Content: "Great.", Rating: 5, Approved: true},
	}, nil)

	s := newTestimonialServer(mockProfiles, mockTestimonials)
	app := fiber.New()
	app.Get("/p/:username/testimonials", s.GetPublicTestimonials)

	resp, err := app.Test(httptest.NewRequest("GET", "/p/jane/testimonials", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Testimonials []models.Testimonial `json:"testimonials"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Testimonials, 1)
	assert.Equal(t, "John", body.Testimonials[0].AuthorName)
}

func TestApproveTestimonial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		mockSetup      func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "/profiles/me/testimonials/3/approve",
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				testimonials.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Testimonial{ID: 3, ProfileID: 7}, nil)
				profiles.On("GetByUserID", mock.Anything, uint(1)).Return(publicProfile(), nil)
				testimonials.On("Update", mock.Anything, mock.MatchedBy(func(tm *models.Testimonial) bool {
					return tm.Approved
				})).Return(nil)
			},
			expectedStatus: fiber.StatusOK,
		},
		{
			name:   "Another owner's testimonial",
			target: "/profiles/me/testimonials/3/approve",
			mockSetup: func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {
				testimonials.On("GetByID", mock.Anything, uint(3)).
					Return(&models.Testimonial{ID: 3, ProfileID: 99}, nil)
				profiles.On("GetByUserID", mock.Anything, uint(1)).Return(publicProfile(), nil)
			},
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:           "Invalid ID",
			target:         "/profiles/me/testimonials/abc/approve",
			mockSetup:      func(profiles *MockProfileRepository, testimonials *MockTestimonialRepository) {},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockProfiles := new(MockProfileRepository)
			mockTestimonials := new(MockTestimonialRepository)
			tt.mockSetup(mockProfiles, mockTestimonials)

			s := newTestimonialServer(mockProfiles, mockTestimonials)
			app := fiber.New()
			app.Post("/profiles/me/testimonials/:id/approve", authAs(1), s.ApproveTestimonial)

			resp, err := app.Test(httptest.NewRequest("POST", tt.target, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockProfiles.AssertExpectations(t)
			mockTestimonials.AssertExpectations(t)
		})
	}
}

func TestRejectTestimonial(t *testing.T) {
	t.Parallel()

	mockProfiles := new(MockProfileRepository)
	mockTestimonials := new(MockTestimonialRepository)
	mockTestimonials.On("GetByID", mock.Anything, uint(3)).
		Return(&models.Testimonial{ID: 3, ProfileID: 7}, nil)
	mockProfiles.On("GetByUserID", mock.Anything, uint(1)).Return(publicProfile(), nil)
	mockTestimonials.On("Delete", mock.Anything, uint(3)).Return(nil)

	s := newTestimonialServer(mockProfiles, mockTestimonials)
	app := fiber.New()
	app.Delete("/profiles/me/testimonials/:id", authAs(1), s.RejectTestimonial)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/profiles/me/testimonials/3", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	mockTestimonials.AssertExpectations(t)
}
