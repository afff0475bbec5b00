// internal/pkg/notify/notify.go
package notify

import (
	"context"
)

// Notifier delivers out-of-band alerts to the merchant, e.g. when a new
// order arrives. Delivery is best effort; failures must never fail the
// operation that triggered the alert.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, storeName string, orderID uint, customerName, total string) error
}

// Noop discards all notifications. Used when no channel is configured.
type Noop struct{}

func (Noop) NotifyNewOrder(ctx context.Context, storeName string, orderID uint, customerName, total string) error {
	return nil
}
