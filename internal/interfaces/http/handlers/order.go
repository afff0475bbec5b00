// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
	"github.com/your-org/storefront-backend/internal/domain/store"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"github.com/your-org/storefront-backend/internal/pkg/share"
)

// OrderHandler handles order endpoints, both the public placement path and
// the merchant management surface.
type OrderHandler struct {
	orderService    *order.Service
	storeService    *store.Service
	scheduleService *schedule.Service
	pdfService      *pdf.Service
	config          *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, storeService *store.Service, scheduleService *schedule.Service, pdfService *pdf.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		storeService:    storeService,
		scheduleService: scheduleService,
		pdfService:      pdfService,
		config:          cfg,
	}
}

// PlaceOrder handles POST /storefront/:slug/orders. The store must be open;
// a closed store rejects the order before anything is written.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
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
			"error": "Failed to check store availability",
		})
		return
	}
	if !status.IsOpen {
		resp := gin.H{"error": "Store is currently closed"}
		if status.ReopensAt != nil {
			resp["reopens_at"] = status.ReopensAt
		}
		c.JSON(http.StatusConflict, resp)
		return
	}

	sessionID, err := c.Cookie(sessionCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No cart session",
		})
		return
	}

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.CreateOrder(c.Request.Context(), profile.OwnerID, sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	orders, err := h.orderService.GetOrders(ownerID(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(ownerID(c), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// AdvanceStatus handles POST /orders/:id/advance
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.AdvanceStatus(c.Request.Context(), ownerID(c), orderID)
	if err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status advanced",
		"data":    o,
	})
}

// Reject handles POST /orders/:id/reject
func (h *OrderHandler) Reject(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.Reject(c.Request.Context(), ownerID(c), orderID)
	if err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order rejected",
		"data":    o,
	})
}

// Trash handles POST /orders/:id/trash
func (h *OrderHandler) Trash(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.Trash(c.Request.Context(), ownerID(c), orderID)
	if err != nil {
		h.transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order moved to trash",
		"data":    o,
	})
}

// Restore handles POST /orders/:id/restore
func (h *OrderHandler) Restore(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	o, err := h.orderService.Restore(c.Request.Context(), ownerID(c), orderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order restored",
		"data":    o,
	})
}

// PermanentlyDelete handles DELETE /orders/:id. The merchant's password is
// re-verified server-side before anything is removed.
func (h *OrderHandler) PermanentlyDelete(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Password confirmation required",
		})
		return
	}

	if err := h.orderService.PermanentlyDelete(c.Request.Context(), ownerID(c), orderID, req.Password); err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order permanently deleted",
	})
}

// GetStatistics handles GET /orders/statistics
func (h *OrderHandler) GetStatistics(c *gin.Context) {
	stats, err := h.orderService.GetStatistics(ownerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Statistics retrieved successfully",
		"data":    stats,
	})
}

// GetReceipt handles GET /orders/:id/receipt and streams a PDF.
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	merchantID := ownerID(c)
	o, err := h.orderService.GetOrder(merchantID, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	profile, err := h.storeService.GetProfile(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load store profile",
		})
		return
	}

	buf, err := h.pdfService.GenerateReceipt(profile.Name, o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate receipt",
		})
		return
	}

	filename := fmt.Sprintf("receipt-%d.pdf", o.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// GetShareText handles GET /orders/:id/share and returns the plain-text
// summary plus a message-compose deep link.
func (h *OrderHandler) GetShareText(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	merchantID := ownerID(c)
	o, err := h.orderService.GetOrder(merchantID, orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	profile, err := h.storeService.GetProfile(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load store profile",
		})
		return
	}

	text := share.OrderSummary(profile.Name, o)
	c.JSON(http.StatusOK, gin.H{
		"message": "Share text composed successfully",
		"data": gin.H{
			"text": text,
			"link": share.MessageLink(text),
		},
	})
}

func (h *OrderHandler) transitionError(c *gin.Context, err error) {
	if _, ok := err.(*order.IllegalTransitionError); ok {
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error": err.Error(),
	})
}
