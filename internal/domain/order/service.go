// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
	"github.com/your-org/storefront-backend/internal/pkg/notify"
	"gorm.io/gorm"
)

// EventPublisher pushes order change events onto the owner's realtime feed.
// Publish failures must not fail the persisted mutation.
type EventPublisher interface {
	PublishInsert(ctx context.Context, ownerID uint, o *Order) error
	PublishUpdate(ctx context.Context, ownerID uint, o *Order) error
	PublishDelete(ctx context.Context, ownerID uint, o *Order) error
}

// CredentialVerifier re-authenticates a merchant credential server-side.
// Used as the elevated confirmation for irreversible actions; secrets are
// never compared in the client.
type CredentialVerifier interface {
	VerifyPassword(userID uint, password string) error
}

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	publisher   EventPublisher
	verifier    CredentialVerifier
	notifier    notify.Notifier
	logger      *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, publisher EventPublisher, verifier CredentialVerifier, notifier notify.Notifier, logger *logrus.Logger) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
		publisher:   publisher,
		verifier:    verifier,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateOrderRequest represents checkout data from the storefront.
type CreateOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	Note          string `json:"note"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Status         OrderStatus `form:"status"`
	IncludeTrashed bool        `form:"include_trashed"`
	Limit          int         `form:"limit,default=100"`
}

// CreateOrder places an order from the session's cart. The total is frozen
// at creation; later catalog price edits never touch it.
func (s *Service) CreateOrder(ctx context.Context, ownerID uint, sessionID string, req *CreateOrderRequest) (*Order, error) {
	cartState, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if len(cartState.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	order := Order{
		OwnerID:       ownerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Note:          req.Note,
		Total:         cartState.Total(),
		Status:        OrderStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range cartState.Items {
			ci := &cartState.Items[i]
			item := OrderItem{
				OrderID:         order.ID,
				ProductID:       ci.ProductID,
				Name:            ci.Name,
				BasePrice:       ci.BasePrice,
				Quantity:        ci.Quantity,
				SelectedOptions: ci.SelectedOptions,
				LineTotal:       ci.LineTotal(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Clearing the cart is best effort; the order already exists.
	if err := s.cartService.ClearCart(ctx, sessionID); err != nil {
		s.logger.WithError(err).Warn("Failed to clear cart after order creation")
	}

	s.publish(ctx, ownerID, &order, eventInsert)
	metrics.OrdersCreatedTotal.Inc()

	if err := s.notifier.NotifyNewOrder(ctx, s.config.App.Name, order.ID, order.CustomerName, order.Total.StringFixed(2)); err != nil {
		s.logger.WithError(err).Warn("Failed to send new order notification")
	}
	return &order, nil
}

// GetOrders retrieves the owner's orders newest first. Trashed orders are
// hidden unless explicitly requested.
func (s *Service) GetOrders(ownerID uint, req *OrderListRequest) ([]Order, error) {
	query := s.db.Preload("Items").Where("owner_id = ?", ownerID)

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	} else if !req.IncludeTrashed {
		query = query.Where("status <> ?", OrderStatusTrashed)
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var orders []Order
	if err := query.Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// GetOrder retrieves a single owned order.
func (s *Service) GetOrder(ownerID, orderID uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").
		Where("id = ? AND owner_id = ?", orderID, ownerID).
		First(&order)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// AdvanceStatus moves the order one step along the happy path.
func (s *Service) AdvanceStatus(ctx context.Context, ownerID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return nil, err
	}

	next, ok := NextStatus(order.Status)
	if !ok {
		return nil, &IllegalTransitionError{From: order.Status, To: ""}
	}
	return s.setStatus(ctx, order, next, nil)
}

// Reject turns down a pending order. Terminal.
func (s *Service) Reject(ctx context.Context, ownerID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, OrderStatusRejected) {
		return nil, &IllegalTransitionError{From: order.Status, To: OrderStatusRejected}
	}
	return s.setStatus(ctx, order, OrderStatusRejected, nil)
}

// Trash soft-deletes the order, remembering where it was so a restore can
// put it back.
func (s *Service) Trash(ctx context.Context, ownerID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, OrderStatusTrashed) {
		return nil, &IllegalTransitionError{From: order.Status, To: OrderStatusTrashed}
	}
	previous := order.Status
	return s.setStatus(ctx, order, OrderStatusTrashed, map[string]interface{}{
		"status_before_trash": previous,
	})
}

// Restore returns a trashed order to its pre-trash status.
func (s *Service) Restore(ctx context.Context, ownerID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsTrashed() {
		return nil, fmt.Errorf("order %d is not trashed", orderID)
	}

	restored := order.StatusBeforeTrash
	if restored == "" {
		restored = OrderStatusPending
	}
	return s.setStatus(ctx, order, restored, map[string]interface{}{
		"status_before_trash": "",
	})
}

// PermanentlyDelete removes a trashed order for good. The merchant must
// re-enter their password; verification happens server-side only.
func (s *Service) PermanentlyDelete(ctx context.Context, ownerID, orderID uint, password string) error {
	if err := s.verifier.VerifyPassword(ownerID, password); err != nil {
		return fmt.Errorf("credential verification failed: %w", err)
	}

	order, err := s.GetOrder(ownerID, orderID)
	if err != nil {
		return err
	}
	if !order.IsTrashed() {
		return fmt.Errorf("only trashed orders can be permanently deleted")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(order).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, ownerID, order, eventDelete)
	return nil
}

// GetAllOrders loads the owner's complete order collection newest first,
// trashed included. The list endpoints page; aggregates and feed snapshots
// must see every order or the numbers drift.
func (s *Service) GetAllOrders(ownerID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// GetStatistics recomputes the dashboard aggregates from the owner's full
// order collection, trashed included in the scan so it can be excluded
// consistently in one place.
func (s *Service) GetStatistics(ownerID uint) (*Statistics, error) {
	orders, err := s.GetAllOrders(ownerID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStatistics(orders)
	return &stats, nil
}

// Private helper methods

func (s *Service) setStatus(ctx context.Context, order *Order, status OrderStatus, extra map[string]interface{}) (*Order, error) {
	updates := map[string]interface{}{"status": status}
	for k, v := range extra {
		updates[k] = v
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	if v, ok := extra["status_before_trash"]; ok {
		if sb, ok := v.(OrderStatus); ok {
			order.StatusBeforeTrash = sb
		} else {
			order.StatusBeforeTrash = ""
		}
	}

	s.publish(ctx, order.OwnerID, order, eventUpdate)
	return order, nil
}

type eventKind int

const (
	eventInsert eventKind = iota
	eventUpdate
	eventDelete
)

func (s *Service) publish(ctx context.Context, ownerID uint, order *Order, kind eventKind) {
	if s.publisher == nil {
		return
	}

	var err error
	switch kind {
	case eventInsert:
		err = s.publisher.PublishInsert(ctx, ownerID, order)
	case eventUpdate:
		err = s.publisher.PublishUpdate(ctx, ownerID, order)
	case eventDelete:
		err = s.publisher.PublishDelete(ctx, ownerID, order)
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"owner_id": ownerID,
			"order_id": order.ID,
		}).WithError(err).Warn("Failed to publish order change event")
	}
}
