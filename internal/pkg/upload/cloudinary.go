// internal/pkg/upload/cloudinary.go
package upload

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/your-org/storefront-backend/internal/config"
)

// Uploader stores merchant images in Cloudinary.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

// NewUploader creates an uploader from the CLOUDINARY_URL style DSN.
func NewUploader(cfg *config.Config) (*Uploader, error) {
	if cfg.Upload.CloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary URL is not configured")
	}
	cld, err := cloudinary.NewFromURL(cfg.Upload.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &Uploader{cld: cld}, nil
}

// Upload stores the file under a deterministic public id so re-uploading
// the same slot overwrites the previous image instead of piling up copies.
// Returns the public HTTPS URL.
func (u *Uploader) Upload(ctx context.Context, file multipart.File, ownerID uint, purpose string) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  fmt.Sprintf("store-%d/%s", ownerID, purpose),
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.SecureURL, nil
}

// Delete removes a previously uploaded image.
func (u *Uploader) Delete(ctx context.Context, ownerID uint, purpose string) error {
	publicID := fmt.Sprintf("store-%d/%s", ownerID, purpose)
	if _, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
