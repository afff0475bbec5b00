package realtime

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

func pendingOrder(id uint, total string) order.Order {
	return order.Order{
		ID:     id,
		Status: order.OrderStatusPending,
		Total:  decimal.RequireFromString(total),
	}
}

func TestFeed_InsertPrependsNewestFirst(t *testing.T) {
	feed := NewFeed(nil, nil)
	feed.Resync([]order.Order{pendingOrder(1, "10.00")})

	feed.Apply(Event{Kind: EventInsert, OrderID: 2, Record: pendingOrder(2, "5.00")})

	orders := feed.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, uint(2), orders[0].ID, "new order goes on top")
	assert.Equal(t, uint(1), orders[1].ID)
}

func TestFeed_DuplicateInsertIsIdempotent(t *testing.T) {
	var announced []uint
	feed := NewFeed(func(o order.Order) { announced = append(announced, o.ID) }, nil)

	event := Event{Kind: EventInsert, OrderID: 1, Record: pendingOrder(1, "10.00")}
	feed.Apply(event)
	feed.Apply(event)
	feed.Apply(event)

	require.Len(t, feed.Orders(), 1)
	assert.Equal(t, []uint{1}, announced, "new-order callback fires once per id")
	assert.Equal(t, 1, feed.Statistics().OrderCount)
}

func TestFeed_RedeliveredInsertDoesNotRollBackUpdate(t *testing.T) {
	feed := NewFeed(nil, nil)
	feed.Apply(Event{Kind: EventInsert, OrderID: 1, Record: pendingOrder(1, "10.00")})

	delivered := pendingOrder(1, "10.00")
	delivered.Status = order.OrderStatusDelivered
	feed.Apply(Event{Kind: EventUpdate, OrderID: 1, Record: delivered})

	// The original insert arriving again carries a stale record.
	feed.Apply(Event{Kind: EventInsert, OrderID: 1, Record: pendingOrder(1, "10.00")})

	orders := feed.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderStatusDelivered, orders[0].Status)
}

func TestFeed_UpdateForUnknownOrderBecomesInsert(t *testing.T) {
	feed := NewFeed(nil, nil)
	feed.Resync(nil)

	updated := pendingOrder(5, "12.00")
	updated.Status = order.OrderStatusPreparing
	feed.Apply(Event{Kind: EventUpdate, OrderID: 5, Record: updated})

	orders := feed.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderStatusPreparing, orders[0].Status)
}

func TestFeed_UpdateReplacesInPlace(t *testing.T) {
	feed := NewFeed(nil, nil)
	feed.Resync([]order.Order{pendingOrder(2, "5.00"), pendingOrder(1, "10.00")})

	updated := pendingOrder(1, "10.00")
	updated.Status = order.OrderStatusDelivered
	feed.Apply(Event{Kind: EventUpdate, OrderID: 1, Record: updated})

	orders := feed.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, uint(2), orders[0].ID, "update keeps list position")
	assert.Equal(t, order.OrderStatusDelivered, orders[1].Status)
}

func TestFeed_DeleteClosesOpenDetailView(t *testing.T) {
	var closed []uint
	feed := NewFeed(nil, func(id uint) { closed = append(closed, id) })
	feed.Resync([]order.Order{pendingOrder(1, "10.00"), pendingOrder(2, "5.00")})

	feed.OpenDetail(1)
	feed.Apply(Event{Kind: EventDelete, OrderID: 2})
	assert.Empty(t, closed, "deleting another order leaves the view open")

	feed.Apply(Event{Kind: EventDelete, OrderID: 1})
	assert.Equal(t, []uint{1}, closed)
	assert.Len(t, feed.Orders(), 0)
}

func TestFeed_ResyncSupersedesMergedEvents(t *testing.T) {
	var announced []uint
	feed := NewFeed(func(o order.Order) { announced = append(announced, o.ID) }, nil)

	feed.Apply(Event{Kind: EventInsert, OrderID: 1, Record: pendingOrder(1, "10.00")})
	feed.Apply(Event{Kind: EventInsert, OrderID: 2, Record: pendingOrder(2, "5.00")})

	// The fresh snapshot no longer contains order 2.
	feed.Resync([]order.Order{pendingOrder(3, "7.00"), pendingOrder(1, "10.00")})

	orders := feed.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, uint(3), orders[0].ID)

	// Replaying the insert for an id seen before the resync stays silent.
	feed.Apply(Event{Kind: EventInsert, OrderID: 2, Record: pendingOrder(2, "5.00")})
	assert.Equal(t, []uint{1, 2}, announced)
}

func TestFeed_AggregatesRecomputedAfterEveryMerge(t *testing.T) {
	feed := NewFeed(nil, nil)
	feed.Resync([]order.Order{pendingOrder(1, "10.00")})
	require.True(t, feed.Statistics().Revenue.Equal(decimal.RequireFromString("10.00")))

	feed.Apply(Event{Kind: EventInsert, OrderID: 2, Record: pendingOrder(2, "5.50")})
	assert.True(t, feed.Statistics().Revenue.Equal(decimal.RequireFromString("15.50")))

	trashed := pendingOrder(2, "5.50")
	trashed.Status = order.OrderStatusTrashed
	feed.Apply(Event{Kind: EventUpdate, OrderID: 2, Record: trashed})
	assert.True(t, feed.Statistics().Revenue.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 1, feed.Statistics().OrderCount)
}
