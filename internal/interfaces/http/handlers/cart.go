// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// CartHandler handles storefront cart endpoints. Carts are anonymous and
// session-scoped; the session id travels in a cookie.
type CartHandler struct {
	cartService *cart.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

const sessionCookie = "cart_session"

// getOrCreateSessionID resolves the cart session from the cookie, minting a
// new one on first contact.
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	if sessionID, err := c.Cookie(sessionCookie); err == nil && sessionID != "" {
		return sessionID
	}
	sessionID := uuid.NewString()
	c.SetCookie(sessionCookie, sessionID, 86400, "/", "", false, true)
	return sessionID
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	cartState, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartState,
	})
}

// QuickAdd handles POST /cart/items for products without options.
func (h *CartHandler) QuickAdd(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.QuickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartState, err := h.cartService.QuickAdd(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartState,
	})
}

// Confirm handles POST /cart/confirm for customized products. A validation
// failure reports every option out of bounds and leaves the cart untouched.
func (h *CartHandler) Confirm(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartState, err := h.cartService.ConfirmWithOptions(c.Request.Context(), sessionID, &req)
	if err != nil {
		if valErr, ok := err.(*cart.ValidationError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Selection out of bounds",
				"details": valErr.Errors,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item confirmed successfully",
		"data":    cartState,
	})
}

// UpdateQuantity handles PATCH /cart/items
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartState, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    cartState,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
