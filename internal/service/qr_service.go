package service

import (
	"context"
	"fmt"
	"strings"

	"resumin/internal/models"
	"resumin/internal/observability"
	"resumin/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// QRService renders share QR codes pointing at public profile URLs.
type QRService struct {
	profileRepo   repository.ProfileRepository
	publicBaseURL string
}

// NewQRService returns a new QRService.
func NewQRService(profileRepo repository.ProfileRepository, publicBaseURL string) *QRService {
	return &QRService{
		profileRepo:   profileRepo,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PublicURL returns the canonical public URL for a username.
func (s *QRService) PublicURL(username string) string {
	return fmt.Sprintf("%s/%s", s.publicBaseURL, username)
}

// GenerateForUser renders a PNG QR code encoding the calling user's public
// profile URL. Size is clamped to a sane pixel range.
func (s *QRService) GenerateForUser(ctx context.Context, userID uint, size int) ([]byte, string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if size <= 0 {
		size = defaultQRSize
	}
	if size < minQRSize {
		size = minQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	url := s.PublicURL(profile.Username)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	observability.QRCodesGenerated.Inc()
	return png, url, nil
}
