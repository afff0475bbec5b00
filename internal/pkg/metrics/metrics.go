// internal/pkg/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, path and code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_http_requests_total",
		Help: "Total number of HTTP requests processed",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// OrdersCreatedTotal counts orders placed through the storefront.
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Total number of orders created",
	})

	// RealtimeEventsTotal counts order change events published to the feed.
	RealtimeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_realtime_events_total",
		Help: "Total number of realtime order events published",
	}, []string{"kind"})

	// RealtimeSubscribers tracks currently connected feed subscribers.
	RealtimeSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_realtime_subscribers",
		Help: "Number of active realtime feed subscribers",
	})

	// NotificationsSentTotal counts outbound merchant notifications.
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_notifications_sent_total",
		Help: "Total number of merchant notifications sent",
	}, []string{"channel", "result"})

	// DebouncedSavesTotal counts debounced catalog writes by outcome.
	DebouncedSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_debounced_saves_total",
		Help: "Total number of debounced catalog saves",
	}, []string{"result"})
)
