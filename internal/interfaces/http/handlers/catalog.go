// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles catalog management endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func ownerID(c *gin.Context) uint {
	id, _ := middleware.GetUserIDFromContext(c)
	return id
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}

// GetProducts handles GET /catalog/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.GetProducts(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(ownerID(c), productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// CreateProduct handles POST /catalog/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.CreateProduct(ownerID(c), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct handles PUT /catalog/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.UpdateProduct(ownerID(c), productID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /catalog/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(ownerID(c), productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// GetGroups handles GET /catalog/groups
func (h *CatalogHandler) GetGroups(c *gin.Context) {
	groups, err := h.catalogService.GetGroups(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve groups",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Groups retrieved successfully",
		"data":    groups,
	})
}

// CreateGroup handles POST /catalog/groups
func (h *CatalogHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Group name required",
		})
		return
	}

	group, err := h.catalogService.CreateGroup(ownerID(c), req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"data":    group,
	})
}

// UpdateGroup handles PUT /catalog/groups/:id
func (h *CatalogHandler) UpdateGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Group name required",
		})
		return
	}

	group, err := h.catalogService.UpdateGroup(ownerID(c), groupID, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group updated successfully",
		"data":    group,
	})
}

// DeleteGroup handles DELETE /catalog/groups/:id
func (h *CatalogHandler) DeleteGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteGroup(ownerID(c), groupID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Group deleted successfully; its products are now ungrouped",
	})
}

// ReorderRequest carries the full ordered id list after a drag.
type ReorderRequest struct {
	OrderedIDs []uint `json:"ordered_ids" binding:"required"`
}

// ReorderGroups handles PUT /catalog/groups/reorder. The new order is
// acknowledged immediately; persistence is debounced behind the scenes.
func (h *CatalogHandler) ReorderGroups(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ordered id list required",
		})
		return
	}

	h.catalogService.ReorderGroups(ownerID(c), req.OrderedIDs)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Group order accepted",
	})
}

// ReorderProducts handles PUT /catalog/products/reorder
func (h *CatalogHandler) ReorderProducts(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Ordered id list required",
		})
		return
	}

	h.catalogService.ReorderProducts(ownerID(c), req.OrderedIDs)
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Product order accepted",
	})
}

// AddOption handles POST /catalog/products/:id/options
func (h *CatalogHandler) AddOption(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req catalog.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	option, err := h.catalogService.AddOption(ownerID(c), productID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Option created successfully",
		"data":    option,
	})
}

// UpdateOption handles PUT /catalog/options/:id
func (h *CatalogHandler) UpdateOption(c *gin.Context) {
	optionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	option, err := h.catalogService.UpdateOption(ownerID(c), optionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Option updated successfully",
		"data":    option,
	})
}

// DeleteOption handles DELETE /catalog/options/:id
func (h *CatalogHandler) DeleteOption(c *gin.Context) {
	optionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteOption(ownerID(c), optionID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Option deleted successfully",
	})
}

// AddSubProduct handles POST /catalog/options/:id/sub-products
func (h *CatalogHandler) AddSubProduct(c *gin.Context) {
	optionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req catalog.CreateSubProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	subProduct, err := h.catalogService.AddSubProduct(ownerID(c), optionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Sub-product created successfully",
		"data":    subProduct,
	})
}

// UpdateSubProduct handles PUT /catalog/sub-products/:id
func (h *CatalogHandler) UpdateSubProduct(c *gin.Context) {
	subProductID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateSubProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	subProduct, err := h.catalogService.UpdateSubProduct(ownerID(c), subProductID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sub-product updated successfully",
		"data":    subProduct,
	})
}

// DeleteSubProduct handles DELETE /catalog/sub-products/:id
func (h *CatalogHandler) DeleteSubProduct(c *gin.Context) {
	subProductID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteSubProduct(ownerID(c), subProductID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sub-product deleted successfully",
	})
}

// GetIntegrityWarnings handles GET /catalog/integrity. Products whose
// required options have no active candidates keep selling; this surfaces
// them so the merchant can fix the catalog.
func (h *CatalogHandler) GetIntegrityWarnings(c *gin.Context) {
	warnings, err := h.catalogService.IntegrityWarnings(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute integrity warnings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Integrity warnings retrieved successfully",
		"data":    warnings,
	})
}
