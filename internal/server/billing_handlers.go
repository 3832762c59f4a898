package server

import (
	"resumin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetBillingStatus handles GET /api/billing/status
func (s *Server) GetBillingStatus(c *fiber.Ctx) error {
	status, err := s.billingService.Status(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}

// LinkBillingAccount handles POST /api/billing/link
// The caller names the GitHub account their marketplace purchase lives on;
// the response carries the plan resolved for that account.
func (s *Server) LinkBillingAccount(c *fiber.Ctx) error {
	var req struct {
		GithubLogin string `json:"githubLogin"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	status, err := s.billingService.LinkAccount(c.Context(), currentUserID(c), req.GithubLogin)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(status)
}
