package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/realtime"
)

type stubSubscriber struct {
	events []realtime.Event
}

func (s *stubSubscriber) Subscribe(ctx context.Context, ownerID uint, handler func(realtime.Event)) error {
	for _, e := range s.events {
		handler(e)
	}
	return nil
}

type stubOrderLoader struct {
	orders []order.Order
}

func (s *stubOrderLoader) GetAllOrders(ownerID uint) ([]order.Order, error) {
	return s.orders, nil
}

// sseRecorder adds the CloseNotify gin's streaming loop expects.
type sseRecorder struct {
	*httptest.ResponseRecorder
	clientGone chan bool
}

func (r *sseRecorder) CloseNotify() <-chan bool { return r.clientGone }

func TestStreamOrders_SnapshotThenMergedStatistics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	baseline := order.Order{ID: 1, Status: order.OrderStatusPending, Total: decimal.RequireFromString("10.00")}
	incoming := order.Order{ID: 2, Status: order.OrderStatusPending, Total: decimal.RequireFromString("5.50")}

	handler := NewStreamHandler(
		&stubSubscriber{events: []realtime.Event{
			{Kind: realtime.EventInsert, OrderID: 2, Record: incoming},
		}},
		&stubOrderLoader{orders: []order.Order{baseline}},
	)

	w := &sseRecorder{ResponseRecorder: httptest.NewRecorder(), clientGone: make(chan bool)}
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/orders/stream", nil)
	c.Set("user_id", uint(7))

	handler.StreamOrders(c)

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	require.Contains(t, body, "event:snapshot")
	require.Contains(t, body, "event:insert")
	require.Contains(t, body, "event:statistics")

	// The snapshot holds only the baseline order; the merged aggregates
	// after the insert cover both.
	assert.Contains(t, body, `"order_count":1`)
	assert.Contains(t, body, `"order_count":2`)
	assert.Contains(t, body, "15.5")
}
