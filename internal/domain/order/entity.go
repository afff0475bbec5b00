// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusRejected  OrderStatus = "rejected"
	OrderStatusTrashed   OrderStatus = "trashed"
)

// forwardTransitions is the happy path. Every other status has no forward
// transition: delivered and rejected are terminal, trashed only leads to
// permanent deletion.
var forwardTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusInTransit,
	OrderStatusInTransit: OrderStatusDelivered,
}

// NextStatus returns the single allowed forward transition, or false when
// the status has none.
func NextStatus(current OrderStatus) (OrderStatus, bool) {
	next, ok := forwardTransitions[current]
	return next, ok
}

// CanTransition reports whether a direct transition is legal:
// the forward happy path, pending→rejected, or any non-trashed→trashed.
// There is no path back out of trashed, rejected, or delivered.
func CanTransition(from, to OrderStatus) bool {
	switch to {
	case OrderStatusTrashed:
		return from != OrderStatusTrashed
	case OrderStatusRejected:
		return from == OrderStatusPending
	default:
		next, ok := forwardTransitions[from]
		return ok && next == to
	}
}

// IllegalTransitionError rejects a transition request before it reaches
// persistence.
type IllegalTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal order status transition from %q to %q", e.From, e.To)
}

// Order represents a placed order. Total is computed once at creation from
// the cart snapshot and never recomputed when catalog prices change.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OwnerID       uint            `gorm:"not null;index" json:"owner_id"`
	CustomerName  string          `gorm:"not null;size:255" json:"customer_name"`
	CustomerPhone string          `gorm:"size:50" json:"customer_phone"`
	Address       string          `gorm:"size:500" json:"address"`
	Note          string          `gorm:"type:text" json:"note"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"not null;default:'pending';size:20" json:"status"`

	// Status at the moment of trashing, so a restore can return the order
	// where it was.
	StatusBeforeTrash OrderStatus `gorm:"size:20" json:"status_before_trash,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is one cart line frozen into the order.
type OrderItem struct {
	ID              uint                  `gorm:"primaryKey" json:"id"`
	OrderID         uint                  `gorm:"not null;index" json:"order_id"`
	ProductID       uint                  `gorm:"not null;index" json:"product_id"`
	Name            string                `gorm:"not null;size:255" json:"name"`
	BasePrice       decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"base_price"`
	Quantity        int                   `gorm:"not null" json:"quantity"`
	SelectedOptions []cart.SelectedOption `gorm:"serializer:json" json:"selected_options"`
	LineTotal       decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"line_total"`
	CreatedAt       time.Time             `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// IsTrashed reports whether the order is soft-deleted.
func (o *Order) IsTrashed() bool {
	return o.Status == OrderStatusTrashed
}

// IsTerminal reports whether the order reached a final non-trashed state.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusRejected
}

// CanBeRejected reports whether the merchant may still turn the order down.
func (o *Order) CanBeRejected() bool {
	return o.Status == OrderStatusPending
}
