// internal/realtime/event.go
package realtime

import (
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// EventKind discriminates order change events on the feed.
type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
)

// Event is one order change pushed to subscribed dashboards. Delete events
// only need the order id; Record carries the full row for insert and update.
type Event struct {
	Kind    EventKind   `json:"kind"`
	OrderID uint        `json:"order_id"`
	Record  order.Order `json:"record"`
}
