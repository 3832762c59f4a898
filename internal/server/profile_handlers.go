package server

import (
	"io"
	"strings"

	"resumin/internal/models"
	"resumin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetMyProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// CreateMyProfile handles POST /api/profiles/me
func (s *Server) CreateMyProfile(c *fiber.Ctx) error {
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.CreateProfile(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(profile)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteMyProfile handles DELETE /api/profiles/me
func (s *Server) DeleteMyProfile(c *fiber.Ctx) error {
	if err := s.profileService.DeleteProfile(c.Context(), currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile deleted"})
}

// UpdateMyLayout handles PUT /api/profiles/me/layout
func (s *Server) UpdateMyLayout(c *fiber.Ctx) error {
	var req models.Layout
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateLayout(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// SetMyVisibility handles PUT /api/profiles/me/visibility
func (s *Server) SetMyVisibility(c *fiber.Ctx) error {
	var req struct {
		IsPublic *bool `json:"isPublic"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsPublic == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("isPublic is required"))
	}

	profile, err := s.profileService.SetVisibility(c.Context(), currentUserID(c), *req.IsPublic)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// GetLayoutPresets handles GET /api/layouts/presets
func (s *Server) GetLayoutPresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": models.LayoutPresets()})
}

// CheckUsername handles GET /api/username/check?u=<candidate>. Auth is
// optional: with a valid token the caller's own username reports available.
func (s *Server) CheckUsername(c *fiber.Ctx) error {
	candidate := strings.TrimSpace(c.Query("u"))
	if candidate == "" {
		candidate = strings.TrimSpace(c.Query("username"))
	}
	if candidate == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Query parameter 'u' is required"))
	}

	userID, _ := s.optionalUserID(c)
	return c.JSON(s.usernameService.Check(c.Context(), candidate, userID))
}

// GetMyQRCode handles GET /api/profiles/me/qr. Returns a PNG image; size is
// an optional pixel-edge query parameter.
func (s *Server) GetMyQRCode(c *fiber.Ctx) error {
	size := c.QueryInt("size", 0)

	png, url, err := s.qrService.GenerateForUser(c.Context(), currentUserID(c), size)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set("X-Profile-URL", url)
	return c.Send(png)
}

// UploadMyPicture handles POST /api/profiles/me/picture (multipart form,
// field "picture").
func (s *Server) UploadMyPicture(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File field 'picture' is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	profile, err := s.pictureService.Upload(c.Context(), currentUserID(c), content,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// DeleteMyPicture handles DELETE /api/profiles/me/picture
func (s *Server) DeleteMyPicture(c *fiber.Ctx) error {
	profile, err := s.pictureService.Remove(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}
