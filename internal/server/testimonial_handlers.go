package server

import (
	"resumin/internal/models"
	"resumin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitTestimonial handles POST /api/p/:username/testimonials
func (s *Server) SubmitTestimonial(c *fiber.Ctx) error {
	var req service.SubmitTestimonialInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	testimonial, err := s.testimonialService.Submit(c.Context(), c.Params("username"), req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Testimonial submitted for review",
		"testimonial": testimonial,
	})
}

// GetPublicTestimonials handles GET /api/p/:username/testimonials
func (s *Server) GetPublicTestimonials(c *fiber.Ctx) error {
	testimonials, err := s.testimonialService.ListPublic(c.Context(), c.Params("username"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// GetMyTestimonials handles GET /api/profiles/me/testimonials
func (s *Server) GetMyTestimonials(c *fiber.Ctx) error {
	testimonials, err := s.testimonialService.ListForOwner(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// ApproveTestimonial handles POST /api/profiles/me/testimonials/:id/approve.
// The response carries the row as the store confirmed it.
func (s *Server) ApproveTestimonial(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	testimonial, err := s.testimonialService.Approve(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"testimonial": testimonial})
}

// RejectTestimonial handles DELETE /api/profiles/me/testimonials/:id
func (s *Server) RejectTestimonial(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.testimonialService.Reject(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Testimonial removed"})
}
