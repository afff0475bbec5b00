// internal/interfaces/http/handlers/store.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
	"github.com/your-org/storefront-backend/internal/domain/store"
	"github.com/your-org/storefront-backend/internal/pkg/share"
)

// StoreHandler handles store profile endpoints plus the public storefront
// view customers see.
type StoreHandler struct {
	storeService    *store.Service
	catalogService  *catalog.Service
	scheduleService *schedule.Service
	config          *config.Config
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *store.Service, catalogService *catalog.Service, scheduleService *schedule.Service, cfg *config.Config) *StoreHandler {
	return &StoreHandler{
		storeService:    storeService,
		catalogService:  catalogService,
		scheduleService: scheduleService,
		config:          cfg,
	}
}

// GetProfile handles GET /store
func (h *StoreHandler) GetProfile(c *gin.Context) {
	profile, err := h.storeService.GetProfile(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve store profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store profile retrieved successfully",
		"data":    profile,
	})
}

// UpdateProfile handles PUT /store
func (h *StoreHandler) UpdateProfile(c *gin.Context) {
	var req store.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	profile, err := h.storeService.UpdateProfile(ownerID(c), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store profile updated successfully",
		"data":    profile,
	})
}

// GetShareLink handles GET /store/share-link
func (h *StoreHandler) GetShareLink(c *gin.Context) {
	profile, err := h.storeService.GetProfile(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve store profile",
		})
		return
	}

	link := share.StorefrontURL(h.config.Store.PublicBaseURL, profile.Slug)
	c.JSON(http.StatusOK, gin.H{
		"message": "Share link composed successfully",
		"data": gin.H{
			"url":  link,
			"slug": profile.Slug,
		},
	})
}

// UploadLogo handles POST /store/logo
func (h *StoreHandler) UploadLogo(c *gin.Context) {
	h.uploadImage(c, "logo")
}

// UploadCover handles POST /store/cover
func (h *StoreHandler) UploadCover(c *gin.Context) {
	h.uploadImage(c, "cover")
}

func (h *StoreHandler) uploadImage(c *gin.Context, purpose string) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file required",
		})
		return
	}
	defer file.Close()

	if header.Size > h.config.Upload.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "Image file too large",
		})
		return
	}

	var profile *store.StoreProfile
	if purpose == "logo" {
		profile, err = h.storeService.UploadLogo(c.Request.Context(), ownerID(c), file)
	} else {
		profile, err = h.storeService.UploadCover(c.Request.Context(), ownerID(c), file)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully",
		"data":    profile,
	})
}

// GetStorefront handles GET /storefront/:slug, the public store view: the
// profile, open state, and full catalog in display order.
func (h *StoreHandler) GetStorefront(c *gin.Context) {
	profile, err := h.storeService.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Store not found",
		})
		return
	}

	status, err := h.scheduleService.Evaluate(profile.OwnerID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to evaluate availability",
		})
		return
	}

	products, err := h.catalogService.GetProducts(profile.OwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve catalog",
		})
		return
	}

	groups, err := h.catalogService.GetGroups(profile.OwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve groups",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Storefront retrieved successfully",
		"data": gin.H{
			"store":        profile,
			"availability": status,
			"groups":       groups,
			"products":     products,
		},
	})
}
