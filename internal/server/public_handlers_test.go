package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"resumin/internal/analytics"
	"resumin/internal/config"
	"resumin/internal/models"
	"resumin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func publicProfile() *models.Profile {
	return &models.Profile{
		ID:       7,
		UserID:   1,
		Username: "jane",
		Name:     "Jane Doe",
		Title:    "Engineer",
		IsPublic: true,
		Layout:   models.DefaultLayout(),
	}
}

func TestGetPublicProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		username       string
		mockSetup      func(mockRepo *MockProfileRepository)
		expectedStatus int
		wantSoftState  string
	}{
		{
			name:     "Published profile",
			username: "jane",
			mockSetup: func(mockRepo *MockProfileRepository) {
				mockRepo.On("FindByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
			},
			expectedStatus: fiber.StatusOK,
			wantSoftState:  "ok",
		},
		{
			name:     "Unclaimed username",
			username: "ghost",
			mockSetup: func(mockRepo *MockProfileRepository) {
				mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)
			},
			expectedStatus: fiber.StatusNotFound,
			wantSoftState:  "not_found",
		},
		{
			name:     "Private profile",
			username: "jane",
			mockSetup: func(mockRepo *MockProfileRepository) {
				private := publicProfile()
				private.IsPublic = false
				mockRepo.On("FindByUsername", mock.Anything, "jane").Return(private, nil)
			},
			expectedStatus: fiber.StatusNotFound,
			wantSoftState:  "private",
		},
		{
			name:     "Mixed-case lookup is normalized",
			username: "Jane",
			mockSetup: func(mockRepo *MockProfileRepository) {
				mockRepo.On("FindByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
			},
			expectedStatus: fiber.StatusOK,
			wantSoftState:  "ok",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockProfileRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: &config.Config{}, profileRepo: mockRepo}
			app := fiber.New()
			app.Get("/p/:username", s.GetPublicProfile)

			resp, err := app.Test(httptest.NewRequest("GET", "/p/"+tt.username, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body struct {
				Status string `json:"status"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantSoftState, body.Status)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetPublicProfileIncludesRenderedResume(t *testing.T) {
	t.Parallel()

	mockRepo := new(MockProfileRepository)
	mockRepo.On("FindByUsername", mock.Anything, "jane").Return(publicProfile(), nil)

	s := &Server{config: &config.Config{}, profileRepo: mockRepo}
	app := fiber.New()
	app.Get("/p/:username", s.GetPublicProfile)

	resp, err := app.Test(httptest.NewRequest("GET", "/p/jane", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Resume struct {
			Header struct {
				Name string `json:"name"`
			} `json:"header"`
		} `json:"resume"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Jane Doe", body.Resume.Header.Name)
}

func TestRenderPublicResume(t *testing.T) {
	t.Parallel()

	mockRepo := new(MockProfileRepository)
	mockRepo.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)

	s := &Server{config: &config.Config{}}
	s.profileService = service.NewProfileService(mockRepo)

	app := fiber.New()
	app.Get("/p/:username/render", s.RenderPublicResume)

	resp, err := app.Test(httptest.NewRequest("GET", "/p/jane/render", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resume struct {
		Header struct {
			Name string `json:"name"`
		} `json:"header"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resume))
	assert.Equal(t, "Jane Doe", resume.Header.Name)
}

func TestTrackEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(profiles *MockProfileRepository, events *MockEventRepository)
		expectedStatus int
		wantRecorded   bool
	}{
		{
			name: "Page view recorded",
			body: map[string]string{"eventType": "page_view", "sessionId": "abc"},
			mockSetup: func(profiles *MockProfileRepository, events *MockEventRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
				events.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: fiber.StatusAccepted,
			wantRecorded:   true,
		},
		{
			name: "Link click recorded",
			body: map[string]string{"eventType": "link_click", "linkUrl": "https://github.com/jane"},
			mockSetup: func(profiles *MockProfileRepository, events *MockEventRepository) {
				profiles.On("GetPublicByUsername", mock.Anything, "jane").Return(publicProfile(), nil)
				events.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: fiber.StatusAccepted,
			wantRecorded:   true,
		},
		{
			name:           "Unknown event type",
			body:           map[string]string{"eventType": "scroll"},
			mockSetup:      func(profiles *MockProfileRepository, events *MockEventRepository) {},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "Private profile",
			body: map[string]string{"eventType": "page_view"},
			mockSetup: func(profiles *MockProfileRepository, events *MockEventRepository) {
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
			mockEvents := new(MockEventRepository)
			tt.mockSetup(mockProfiles, mockEvents)

			s := &Server{config: &config.Config{}}
			s.trackingService = service.NewTrackingService(
				mockEvents, mockProfiles, analytics.NewViewGuard(nil), nil)

			app := fiber.New()
			app.Post("/p/:username/events", s.TrackEvent)

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/p/jane/events", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == fiber.StatusAccepted {
				var body struct {
					Recorded bool `json:"recorded"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantRecorded, body.Recorded)
			}
			mockProfiles.AssertExpectations(t)
			mockEvents.AssertExpectations(t)
		})
	}
}
