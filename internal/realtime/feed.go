// internal/realtime/feed.go
package realtime

import (
	"sync"

	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Feed is one dashboard's live projection of the order list. Change events
// are merged into a baseline snapshot; aggregates are recomputed in full
// after every merge so duplicated or out-of-order events cannot make the
// numbers drift.
type Feed struct {
	mu sync.Mutex

	orders []order.Order
	index  map[uint]int

	// Order ids that have triggered the new-order callback. An insert for a
	// known id is a duplicate and must not fire it again.
	announced map[uint]bool

	// Id of the order currently open in the detail view, 0 when none.
	openOrderID uint

	stats order.Statistics

	onNewOrder  func(o order.Order)
	onViewClose func(orderID uint)
}

// NewFeed creates an empty feed. onNewOrder fires at most once per distinct
// order id; onViewClose fires when a deleted order was open in the detail
// view. Either callback may be nil.
func NewFeed(onNewOrder func(order.Order), onViewClose func(uint)) *Feed {
	return &Feed{
		index:       make(map[uint]int),
		announced:   make(map[uint]bool),
		onNewOrder:  onNewOrder,
		onViewClose: onViewClose,
	}
}

// Resync replaces the projection with a fresh snapshot, superseding every
// event merged so far. Orders already announced stay announced so a resync
// cannot replay new-order notifications.
func (f *Feed) Resync(orders []order.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders = make([]order.Order, len(orders))
	copy(f.orders, orders)
	f.rebuildIndex()
	for id := range f.index {
		f.announced[id] = true
	}
	if f.openOrderID != 0 {
		if _, ok := f.index[f.openOrderID]; !ok {
			f.openOrderID = 0
		}
	}
	f.recompute()
}

// Apply merges one change event into the projection.
func (f *Feed) Apply(event Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch event.Kind {
	case EventInsert:
		f.insert(event.Record)
	case EventUpdate:
		// An update for an order the snapshot missed is treated as an
		// insert, otherwise the row would silently vanish from the view.
		f.upsert(event.Record)
	case EventDelete:
		f.remove(event.OrderID)
	}
	f.recompute()
}

// Orders returns the current projection, newest first.
func (f *Feed) Orders() []order.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]order.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// Statistics returns the aggregates recomputed after the last merge.
func (f *Feed) Statistics() order.Statistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// OpenDetail marks an order as open in the detail view.
func (f *Feed) OpenDetail(orderID uint) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openOrderID = orderID
}

// CloseDetail clears the open detail view.
func (f *Feed) CloseDetail() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openOrderID = 0
}

// insert ignores ids already present. A redelivered insert may carry a
// record older than one an update already brought in, so the stored row
// always wins.
func (f *Feed) insert(o order.Order) {
	if _, ok := f.index[o.ID]; ok {
		return
	}
	f.prepend(o)
}

func (f *Feed) upsert(o order.Order) {
	if pos, ok := f.index[o.ID]; ok {
		f.orders[pos] = o
		return
	}
	f.prepend(o)
}

func (f *Feed) prepend(o order.Order) {
	// New rows go on top; the list stays newest first.
	f.orders = append([]order.Order{o}, f.orders...)
	f.rebuildIndex()

	if !f.announced[o.ID] {
		f.announced[o.ID] = true
		if f.onNewOrder != nil {
			f.onNewOrder(o)
		}
	}
}

func (f *Feed) remove(orderID uint) {
	pos, ok := f.index[orderID]
	if !ok {
		return
	}
	f.orders = append(f.orders[:pos], f.orders[pos+1:]...)
	f.rebuildIndex()

	if f.openOrderID == orderID {
		f.openOrderID = 0
		if f.onViewClose != nil {
			f.onViewClose(orderID)
		}
	}
}

func (f *Feed) rebuildIndex() {
	f.index = make(map[uint]int, len(f.orders))
	for i := range f.orders {
		f.index[f.orders[i].ID] = i
	}
}

func (f *Feed) recompute() {
	f.stats = order.ComputeStatistics(f.orders)
}
