package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		current OrderStatus
		want    OrderStatus
		ok      bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusInTransit, true},
		{OrderStatusInTransit, OrderStatusDelivered, true},
		{OrderStatusDelivered, "", false},
		{OrderStatusRejected, "", false},
		{OrderStatusTrashed, "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NextStatus(tt.current)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NextStatus(%q) = (%q, %v), want (%q, %v)", tt.current, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		// Forward-only happy path.
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusInTransit, true},
		{OrderStatusInTransit, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusInTransit, false},
		{OrderStatusPreparing, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusInTransit, false},

		// Rejection only from pending.
		{OrderStatusPending, OrderStatusRejected, true},
		{OrderStatusPreparing, OrderStatusRejected, false},
		{OrderStatusDelivered, OrderStatusRejected, false},

		// Any status except trashed can be trashed.
		{OrderStatusPending, OrderStatusTrashed, true},
		{OrderStatusPreparing, OrderStatusTrashed, true},
		{OrderStatusInTransit, OrderStatusTrashed, true},
		{OrderStatusDelivered, OrderStatusTrashed, true},
		{OrderStatusRejected, OrderStatusTrashed, true},
		{OrderStatusTrashed, OrderStatusTrashed, false},

		// No way back out of terminal or trashed states.
		{OrderStatusTrashed, OrderStatusPending, false},
		{OrderStatusRejected, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestIllegalTransitionError_Message(t *testing.T) {
	err := &IllegalTransitionError{From: OrderStatusDelivered, To: OrderStatusPreparing}
	assert.Contains(t, err.Error(), "delivered")
	assert.Contains(t, err.Error(), "preparing")
}
