// internal/interfaces/http/handlers/stream.go
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/realtime"
)

// eventSubscriber delivers one owner's order events until ctx is cancelled.
// Implemented by realtime.Broker.
type eventSubscriber interface {
	Subscribe(ctx context.Context, ownerID uint, handler func(realtime.Event)) error
}

// orderLoader provides the baseline snapshot the event stream merges onto.
// Implemented by order.Service.
type orderLoader interface {
	GetAllOrders(ownerID uint) ([]order.Order, error)
}

// StreamHandler serves the dashboard's live order feed over SSE. It keeps a
// server-side realtime.Feed per connection, so the client receives a merged
// snapshot up front and fresh aggregates with every event instead of
// re-implementing the merge rules in the browser.
type StreamHandler struct {
	subscriber eventSubscriber
	orders     orderLoader
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(subscriber eventSubscriber, orders orderLoader) *StreamHandler {
	return &StreamHandler{subscriber: subscriber, orders: orders}
}

// StreamOrders handles GET /orders/stream. The first frame is a "snapshot"
// event carrying the full order list and its aggregates; each change event
// that follows is paired with a "statistics" event recomputed from the
// merged projection. Events flow until the client disconnects.
func (h *StreamHandler) StreamOrders(c *gin.Context) {
	merchantID := ownerID(c)

	snapshot, err := h.orders.GetAllOrders(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order snapshot",
		})
		return
	}

	feed := realtime.NewFeed(nil, nil)
	feed.Resync(snapshot)

	events := make(chan realtime.Event, 16)
	ctx := c.Request.Context()

	go func() {
		defer close(events)
		_ = h.subscriber.Subscribe(ctx, merchantID, func(event realtime.Event) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	c.SSEvent("snapshot", gin.H{
		"orders":     feed.Orders(),
		"statistics": feed.Statistics(),
	})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		feed.Apply(event)
		c.SSEvent(string(event.Kind), event)
		c.SSEvent("statistics", feed.Statistics())
		return true
	})
}
