package server

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"resumin/internal/config"
	"resumin/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test_secret"}
}

func TestSignup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(mockRepo *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "Jane-Doe",
				"email":    "jane@example.com",
				"password": "Str0ng!passw0rd",
			},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name: "Duplicate email",
			body: map[string]string{
				"username": "jane",
				"email":    "exists@example.com",
				"password": "Str0ng!passw0rd",
			},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").
					Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: fiber.StatusConflict,
		},
		{
			name: "Weak password",
			body: map[string]string{
				"username": "jane",
				"email":    "jane@example.com",
				"password": "short",
			},
			mockSetup:      func(mockRepo *MockUserRepository) {},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name: "Reserved username",
			body: map[string]string{
				"username": "dashboard",
				"email":    "jane@example.com",
				"password": "Str0ng!passw0rd",
			},
			mockSetup:      func(mockRepo *MockUserRepository) {},
			expectedStatus: fiber.StatusBadRequest,
		},
		{
			name:           "Missing fields",
			body:           map[string]string{"email": "jane@example.com"},
			mockSetup:      func(mockRepo *MockUserRepository) {},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), userRepo: mockRepo}
			app := fiber.New()
			app.Post("/signup", s.Signup)

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/signup", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSignupNormalizesUsername(t *testing.T) {
	t.Parallel()

	mockRepo := new(MockUserRepository)
	mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "jane-doe"
	})).Return(nil)

	s := &Server{config: testConfig(), userRepo: mockRepo}
	app := fiber.New()
	app.Post("/signup", s.Signup)

	payload, _ := json.Marshal(map[string]string{
		"username": "  Jane-Doe ",
		"email":    "jane@example.com",
		"password": "Str0ng!passw0rd",
	})
	req := httptest.NewRequest("POST", "/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mockRepo.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Str0ng!passw0rd"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(mockRepo *MockUserRepository)
		expectedStatus int
		wantToken      bool
	}{
		{
			name: "Success",
			body: map[string]string{"email": "jane@example.com", "password": "Str0ng!passw0rd"},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{ID: 1, Username: "jane", Password: string(hashed)}, nil)
			},
			expectedStatus: fiber.StatusOK,
			wantToken:      true,
		},
		{
			name: "Wrong password",
			body: map[string]string{"email": "jane@example.com", "password": "wrong"},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("GetByEmail", mock.Anything, "jane@example.com").
					Return(&models.User{ID: 1, Username: "jane", Password: string(hashed)}, nil)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Unknown email",
			body: map[string]string{"email": "ghost@example.com", "password": "Str0ng!passw0rd"},
			mockSetup: func(mockRepo *MockUserRepository) {
				mockRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), userRepo: mockRepo}
			app := fiber.New()
			app.Post("/login", s.Login)

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/login", bytes.NewReader(payload))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.wantToken {
				var body struct {
					Token string `json:"token"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.Token)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLogoutRequiresBearerHeader(t *testing.T) {
	t.Parallel()

	s := &Server{config: testConfig()}
	app := fiber.New()
	app.Post("/logout", s.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogoutAcceptsValidToken(t *testing.T) {
	t.Parallel()

	s := &Server{config: testConfig()}
	token, err := s.generateToken(1, "jane")
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/logout", s.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
