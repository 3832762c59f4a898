package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"resumin/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// signToken builds an HS256 token with the given claims for middleware tests.
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func baseClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": "42",
		"iss": "resumin-api",
		"aud": "resumin-client",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": "test-jti",
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	const secret = "test_secret"

	tests := []struct {
		name           string
		authHeader     func(t *testing.T) string
		expectedStatus int
	}{
		{
			name:           "Missing header",
			authHeader:     func(t *testing.T) string { return "" },
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Malformed header",
			authHeader:     func(t *testing.T) string { return "Token abc" },
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Valid token",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, secret, baseClaims())
			},
			expectedStatus: fiber.StatusOK,
		},
		{
			name: "Wrong issuer",
			authHeader: func(t *testing.T) string {
				claims := baseClaims()
				claims["iss"] = "someone-else"
				return "Bearer " + signToken(t, secret, claims)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Wrong audience",
			authHeader: func(t *testing.T) string {
				claims := baseClaims()
				claims["aud"] = "other-client"
				return "Bearer " + signToken(t, secret, claims)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Expired token",
			authHeader: func(t *testing.T) string {
				claims := baseClaims()
				claims["exp"] = time.Now().Add(-time.Hour).Unix()
				return "Bearer " + signToken(t, secret, claims)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Wrong secret",
			authHeader: func(t *testing.T) string {
				return "Bearer " + signToken(t, "other_secret", baseClaims())
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name: "Non-numeric subject",
			authHeader: func(t *testing.T) string {
				claims := baseClaims()
				claims["sub"] = "jane"
				return "Bearer " + signToken(t, secret, claims)
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &Server{config: &config.Config{JWTSecret: secret}}
			app := fiber.New()
			app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
				return c.JSON(fiber.Map{"userID": currentUserID(c)})
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if header := tt.authHeader(t); header != "" {
				req.Header.Set("Authorization", header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequiredStoresUserID(t *testing.T) {
	t.Parallel()

	s := &Server{config: &config.Config{JWTSecret: "test_secret"}}

	var gotUserID uint
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		gotUserID = currentUserID(c)
		return c.SendStatus(fiber.StatusOK)
	})

	token, err := s.generateToken(42, "jane")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, uint(42), gotUserID)
}

func TestLivenessCheck(t *testing.T) {
	t.Parallel()

	s := &Server{config: &config.Config{}}
	app := fiber.New()
	app.Get("/health/live", s.LivenessCheck)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/live", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
