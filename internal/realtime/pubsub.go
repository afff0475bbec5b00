// internal/realtime/pubsub.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-backend/internal/pkg/metrics"
)

// Broker fans order change events out to dashboard subscribers through
// Redis pub/sub, one channel per owner. It implements order.EventPublisher.
type Broker struct {
	redis  *redis.Client
	logger *logrus.Logger
}

// NewBroker creates a new realtime broker.
func NewBroker(redisClient *redis.Client, logger *logrus.Logger) *Broker {
	return &Broker{
		redis:  redisClient,
		logger: logger,
	}
}

func channelFor(ownerID uint) string {
	return fmt.Sprintf("orders:%d", ownerID)
}

// PublishInsert announces a newly placed order.
func (b *Broker) PublishInsert(ctx context.Context, ownerID uint, o *order.Order) error {
	return b.publish(ctx, ownerID, Event{Kind: EventInsert, OrderID: o.ID, Record: *o})
}

// PublishUpdate announces an order whose status or fields changed.
func (b *Broker) PublishUpdate(ctx context.Context, ownerID uint, o *order.Order) error {
	return b.publish(ctx, ownerID, Event{Kind: EventUpdate, OrderID: o.ID, Record: *o})
}

// PublishDelete announces that an order was permanently removed.
func (b *Broker) PublishDelete(ctx context.Context, ownerID uint, o *order.Order) error {
	return b.publish(ctx, ownerID, Event{Kind: EventDelete, OrderID: o.ID})
}

func (b *Broker) publish(ctx context.Context, ownerID uint, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	if err := b.redis.Redis.Publish(ctx, channelFor(ownerID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	metrics.RealtimeEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	return nil
}

// Subscribe delivers the owner's order events to handler until ctx is
// cancelled. Malformed payloads are logged and skipped so one bad message
// cannot kill the stream.
func (b *Broker) Subscribe(ctx context.Context, ownerID uint, handler func(Event)) error {
	sub := b.redis.Redis.Subscribe(ctx, channelFor(ownerID))
	defer sub.Close()

	metrics.RealtimeSubscribers.Inc()
	defer metrics.RealtimeSubscribers.Dec()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.WithError(err).Warn("Dropping malformed order event")
				continue
			}
			handler(event)
		}
	}
}
