package server

import (
	"resumin/internal/layout"
	"resumin/internal/models"
	"resumin/internal/observability"
	"resumin/internal/service"
	"resumin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPublicProfile handles GET /api/p/:username. Unclaimed usernames and
// private profiles are distinct soft states rather than bare errors, so the
// client can render the right page for each.
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	username := validation.NormalizeUsername(c.Params("username"))

	profile, err := s.profileRepo.FindByUsername(c.Context(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":   "not_found",
			"username": username,
		})
	}
	if !profile.IsPublic {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":   "private",
			"username": username,
		})
	}

	resume := layout.Render(profile, profile.Layout)
	observability.ResumeRenders.WithLabelValues(string(profile.Layout.Structure)).Inc()

	return c.JSON(fiber.Map{
		"status":  "ok",
		"profile": profile,
		"resume":  resume,
	})
}

// RenderPublicResume handles GET /api/p/:username/render
func (s *Server) RenderPublicResume(c *fiber.Ctx) error {
	resume, err := s.profileService.RenderPublicResume(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}

	observability.ResumeRenders.WithLabelValues(string(resume.Structure)).Inc()
	return c.JSON(resume)
}

// TrackEvent handles POST /api/p/:username/events. The response only says
// whether the event was recorded; suppressed duplicates are not errors.
func (s *Server) TrackEvent(c *fiber.Ctx) error {
	var req service.TrackEventInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req.UserAgent = c.Get(fiber.HeaderUserAgent)
	req.IP = c.IP()

	recorded, err := s.trackingService.Track(c.Context(), c.Params("username"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"recorded": recorded})
}
