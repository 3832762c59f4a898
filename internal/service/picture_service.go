package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"net/http"
	"strings"

	"resumin/internal/models"
	"resumin/internal/observability"
	"resumin/internal/repository"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// PictureMaxSize is the square edge uploads are normalized to.
	PictureMaxSize       = 512
	pictureWebPQuality   = 80
	defaultMaxUploadSize = 10 * 1024 * 1024
)

// AssetStore persists processed pictures and returns their public URL.
type AssetStore interface {
	Upload(ctx context.Context, path string, content []byte) (string, error)
	Delete(ctx context.Context, path string) error
}

// PictureService normalizes and stores profile pictures.
type PictureService struct {
	profileRepo        repository.ProfileRepository
	store              AssetStore
	maxUploadSizeBytes int64
}

// NewPictureService returns a new PictureService. maxUploadSizeMB <= 0 uses
// the default.
func NewPictureService(profileRepo repository.ProfileRepository, store AssetStore, maxUploadSizeMB int) *PictureService {
	maxBytes := int64(defaultMaxUploadSize)
	if maxUploadSizeMB > 0 {
		maxBytes = int64(maxUploadSizeMB) * 1024 * 1024
	}
	return &PictureService{
		profileRepo:        profileRepo,
		store:              store,
		maxUploadSizeBytes: maxBytes,
	}
}

// Upload validates, center-crops to a square, downsizes, re-encodes as WebP
// and stores the user's profile picture, saving its URL on the profile.
func (s *PictureService) Upload(ctx context.Context, userID uint, content []byte, contentType string) (*models.Profile, error) {
	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	if s.store == nil {
		return nil, models.NewInternalError(fmt.Errorf("picture storage not configured"))
	}

	detectedType := http.DetectContentType(content)
	if !isAllowedPictureMIME(detectedType) {
		return nil, models.NewValidationError("Invalid image type")
	}
	if provided := strings.ToLower(strings.TrimSpace(contentType)); provided != "" &&
		strings.HasPrefix(provided, "image/") && !mimeMatches(provided, detectedType) {
		return nil, models.NewValidationError("Image content type mismatch")
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Invalid image file")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalized := normalizePicture(decoded)
	encoded, err := encodePictureWebP(normalized)
	if err != nil {
		observability.PictureUploads.WithLabelValues("encode_error").Inc()
		return nil, models.NewInternalError(err)
	}

	url, err := s.store.Upload(ctx, picturePath(userID), encoded)
	if err != nil {
		observability.PictureUploads.WithLabelValues("store_error").Inc()
		return nil, models.NewInternalError(err)
	}

	profile.ProfilePicture = url
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	observability.PictureUploads.WithLabelValues("ok").Inc()
	return profile, nil
}

// Remove deletes the stored picture and clears the profile field.
func (s *PictureService) Remove(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ProfilePicture == "" {
		return profile, nil
	}

	if s.store != nil {
		// A dangling stored file is tolerable; a profile pointing at a
		// deleted file is not. Clear the field even when deletion fails.
		_ = s.store.Delete(ctx, picturePath(userID))
	}

	profile.ProfilePicture = ""
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func picturePath(userID uint) string {
	return fmt.Sprintf("u%d.webp", userID)
}

// normalizePicture center-crops to a square and scales down to at most
// PictureMaxSize on each edge. Smaller images are left at their size.
func normalizePicture(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return src
	}

	edge := w
	if h < edge {
		edge = h
	}
	x := b.Min.X + (w-edge)/2
	y := b.Min.Y + (h-edge)/2

	square := image.NewRGBA(image.Rect(0, 0, edge, edge))
	draw.Draw(square, square.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)

	if edge <= PictureMaxSize {
		return square
	}

	dst := image.NewRGBA(image.Rect(0, 0, PictureMaxSize, PictureMaxSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), square, square.Bounds(), xdraw.Over, nil)
	return dst
}

func encodePictureWebP(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: pictureWebPQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedPictureMIME(contentType string) bool {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func mimeMatches(provided, detected string) bool {
	if provided == detected {
		return true
	}
	return (provided == "image/jpg" && detected == "image/jpeg") ||
		(provided == "image/jpeg" && detected == "image/jpg")
}
