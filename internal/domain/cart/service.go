// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles cart business logic. Carts live in Redis per customer
// session; catalog lookups go through the database.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// QuickAddRequest represents the no-options add path.
type QuickAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// ConfirmRequest represents a customized add or edit.
type ConfirmRequest struct {
	ProductID         uint                         `json:"product_id" binding:"required"`
	Selections        map[uint]catalog.Selection   `json:"selections"`
	EditingCartItemID string                       `json:"editing_cart_item_id,omitempty"`
}

// UpdateQuantityRequest adjusts a line item quantity by a delta.
type UpdateQuantityRequest struct {
	CartItemID string `json:"cart_item_id" binding:"required"`
	Delta      int    `json:"delta" binding:"required"`
}

// GetCart retrieves the session's cart, creating an empty one on first use.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	cartKey := s.cartKey(sessionID)
	data, err := s.redisClient.Get(ctx, cartKey).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &Cart{
			SessionID: sessionID,
			Items:     []CartItem{},
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// QuickAdd adds a product without customization. Products carrying active
// options must go through the confirm path instead.
func (s *Service) QuickAdd(ctx context.Context, sessionID string, req *QuickAddRequest) (*Cart, error) {
	product, err := s.loadProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	if product.HasOptions() {
		return nil, fmt.Errorf("product %q requires customization", product.Name)
	}
	if !product.IsOrderable() {
		return nil, fmt.Errorf("product %q is not orderable", product.Name)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.AddProduct(product)
	if err := s.saveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ConfirmWithOptions validates the selections and merges the configured
// line into the cart. A validation failure leaves the stored cart unchanged
// and reports every option out of bounds.
func (s *Service) ConfirmWithOptions(ctx context.Context, sessionID string, req *ConfirmRequest) (*Cart, error) {
	product, err := s.loadProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsOrderable() {
		return nil, fmt.Errorf("product %q is not orderable", product.Name)
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := cart.ConfirmWithOptions(product, req.Selections, req.EditingCartItemID); err != nil {
		return nil, err
	}
	if err := s.saveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity adjusts a line by delta, clamped at zero.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, req *UpdateQuantityRequest) (*Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !cart.UpdateQuantity(req.CartItemID, req.Delta) {
		return nil, fmt.Errorf("cart item %s not found", req.CartItemID)
	}
	if err := s.saveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes the session's cart entirely.
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, s.cartKey(sessionID)).Err()
}

// Private helper methods

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) saveCart(ctx context.Context, sessionID string, cart *Cart) error {
	cart.SessionID = sessionID
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redisClient.Set(ctx, s.cartKey(sessionID), data, s.config.Store.CartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (s *Service) loadProduct(productID uint) (*catalog.Product, error) {
	var product catalog.Product
	result := s.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Options.SubProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("id = ?", productID).
		First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}
