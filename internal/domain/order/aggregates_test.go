package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStatistics_TrashedExcluded(t *testing.T) {
	orders := []Order{
		{ID: 1, Status: OrderStatusDelivered, Total: decimal.RequireFromString("30.00")},
		{ID: 2, Status: OrderStatusTrashed, StatusBeforeTrash: OrderStatusPending,
			Total: decimal.RequireFromString("20.00")},
		{ID: 3, Status: OrderStatusPending, Total: decimal.RequireFromString("12.50")},
	}

	stats := ComputeStatistics(orders)

	assert.Equal(t, 2, stats.OrderCount, "trashed orders do not count")
	assert.True(t, stats.Revenue.Equal(decimal.RequireFromString("42.50")),
		"revenue = %s", stats.Revenue)

	// Status counts still show the trashed order so the trash view can badge it.
	assert.Equal(t, 1, stats.StatusCounts[OrderStatusTrashed])
	assert.Equal(t, 1, stats.StatusCounts[OrderStatusDelivered])
	assert.Equal(t, 1, stats.StatusCounts[OrderStatusPending])
}

func TestComputeStatistics_TopProducts(t *testing.T) {
	orders := []Order{
		{ID: 1, Status: OrderStatusDelivered, Total: decimal.RequireFromString("25.00"), Items: []OrderItem{
			{ProductID: 7, Name: "Burger", Quantity: 2, LineTotal: decimal.RequireFromString("16.00")},
			{ProductID: 9, Name: "Fries", Quantity: 3, LineTotal: decimal.RequireFromString("9.00")},
		}},
		{ID: 2, Status: OrderStatusPending, Total: decimal.RequireFromString("8.00"), Items: []OrderItem{
			{ProductID: 7, Name: "Burger", Quantity: 1, LineTotal: decimal.RequireFromString("8.00")},
		}},
		// Trashed sales never reach the leaderboard.
		{ID: 3, Status: OrderStatusTrashed, Total: decimal.RequireFromString("80.00"), Items: []OrderItem{
			{ProductID: 5, Name: "Cake", Quantity: 10, LineTotal: decimal.RequireFromString("80.00")},
		}},
	}

	stats := ComputeStatistics(orders)

	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, uint(7), stats.TopProducts[0].ProductID)
	assert.Equal(t, 3, stats.TopProducts[0].Quantity)
	assert.True(t, stats.TopProducts[0].Revenue.Equal(decimal.RequireFromString("24.00")))
	assert.Equal(t, uint(9), stats.TopProducts[1].ProductID)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats := ComputeStatistics(nil)
	assert.Equal(t, 0, stats.OrderCount)
	assert.True(t, stats.Revenue.IsZero())
	assert.Empty(t, stats.TopProducts)
}

func TestComputeStatistics_RecomputeMatchesAfterStatusChange(t *testing.T) {
	orders := []Order{
		{ID: 1, Status: OrderStatusPending, Total: decimal.RequireFromString("10.00")},
		{ID: 2, Status: OrderStatusPending, Total: decimal.RequireFromString("15.00")},
	}
	before := ComputeStatistics(orders)
	require.Equal(t, 2, before.StatusCounts[OrderStatusPending])

	orders[1].Status = OrderStatusTrashed
	after := ComputeStatistics(orders)

	assert.Equal(t, 1, after.OrderCount)
	assert.True(t, after.Revenue.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, 1, after.StatusCounts[OrderStatusPending])
	assert.Equal(t, 1, after.StatusCounts[OrderStatusTrashed])
}
