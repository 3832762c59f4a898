package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetMyAnalytics handles GET /api/profiles/me/analytics
func (s *Server) GetMyAnalytics(c *fiber.Ctx) error {
	summary, err := s.analyticsService.GetSummary(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}

// ResetMyAnalytics handles DELETE /api/profiles/me/analytics
func (s *Server) ResetMyAnalytics(c *fiber.Ctx) error {
	if err := s.analyticsService.ResetAnalytics(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Analytics reset"})
}
