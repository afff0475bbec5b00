// internal/domain/store/service.go
package store

import (
	"context"
	"fmt"
	"mime/multipart"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/upload"
	"gorm.io/gorm"
)

// Service handles store profile business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	uploader *upload.Uploader
	logger   *logrus.Logger
}

// NewService creates a new store service. uploader may be nil when image
// uploads are not configured.
func NewService(db *gorm.DB, cfg *config.Config, uploader *upload.Uploader, logger *logrus.Logger) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		uploader: uploader,
		logger:   logger,
	}
}

// UpdateProfileRequest represents store profile update data
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Currency    *string `json:"currency" binding:"omitempty,len=3"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a store name into a URL-safe slug.
func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// GetProfile loads the owner's profile, creating a default one on first
// access.
func (s *Service) GetProfile(ownerID uint) (*StoreProfile, error) {
	var profile StoreProfile
	result := s.db.Where("owner_id = ?", ownerID).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			profile = StoreProfile{
				OwnerID:  ownerID,
				Name:     "My Store",
				Slug:     fmt.Sprintf("store-%d", ownerID),
				Currency: s.config.Store.Currency,
			}
			if err := s.db.Create(&profile).Error; err != nil {
				return nil, fmt.Errorf("failed to create store profile: %w", err)
			}
			return &profile, nil
		}
		return nil, fmt.Errorf("failed to retrieve store profile: %w", result.Error)
	}
	return &profile, nil
}

// GetBySlug resolves a public storefront by its share slug.
func (s *Service) GetBySlug(slug string) (*StoreProfile, error) {
	var profile StoreProfile
	result := s.db.Where("slug = ?", slug).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", result.Error)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update. Renaming the store regenerates
// the slug, falling back to a numbered variant when taken.
func (s *Service) UpdateProfile(ownerID uint, req *UpdateProfileRequest) (*StoreProfile, error) {
	profile, err := s.GetProfile(ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("store name cannot be empty")
		}
		updates["name"] = name
		slug, err := s.availableSlug(name, profile.ID)
		if err != nil {
			return nil, err
		}
		updates["slug"] = slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Currency != nil {
		updates["currency"] = strings.ToUpper(*req.Currency)
	}

	if len(updates) == 0 {
		return profile, nil
	}
	if err := s.db.Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update store profile: %w", err)
	}
	return s.GetProfile(ownerID)
}

// UploadLogo replaces the store logo. The image slot is keyed by owner, so
// a re-upload overwrites the previous file.
func (s *Service) UploadLogo(ctx context.Context, ownerID uint, file multipart.File) (*StoreProfile, error) {
	return s.uploadImage(ctx, ownerID, file, "logo")
}

// UploadCover replaces the storefront cover image.
func (s *Service) UploadCover(ctx context.Context, ownerID uint, file multipart.File) (*StoreProfile, error) {
	return s.uploadImage(ctx, ownerID, file, "cover")
}

func (s *Service) uploadImage(ctx context.Context, ownerID uint, file multipart.File, purpose string) (*StoreProfile, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("image uploads are not configured")
	}
	profile, err := s.GetProfile(ownerID)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, file, ownerID, purpose)
	if err != nil {
		return nil, err
	}

	column := purpose + "_url"
	if err := s.db.Model(profile).Update(column, url).Error; err != nil {
		return nil, fmt.Errorf("failed to save image URL: %w", err)
	}
	if purpose == "logo" {
		profile.LogoURL = url
	} else {
		profile.CoverURL = url
	}
	return profile, nil
}

func (s *Service) availableSlug(name string, profileID uint) (string, error) {
	base := slugify(name)
	if base == "" {
		base = "store"
	}
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := s.db.Model(&StoreProfile{}).
			Where("slug = ? AND id <> ?", slug, profileID).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
		if i > 50 {
			return "", fmt.Errorf("could not find an available slug for %q", name)
		}
	}
}
