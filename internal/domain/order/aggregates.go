// internal/domain/order/aggregates.go
package order

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProductSales is one row of the top-selling products aggregate.
type ProductSales struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// Statistics are the dashboard aggregates over an owner's orders.
type Statistics struct {
	OrderCount   int                 `json:"order_count"`
	Revenue      decimal.Decimal     `json:"revenue"`
	StatusCounts map[OrderStatus]int `json:"status_counts"`
	TopProducts  []ProductSales      `json:"top_products"`
}

// ComputeStatistics derives the aggregates from the full order collection.
// It is always a full recompute, never incremental, so a missed or
// duplicated change event cannot make the numbers drift. Trashed orders are
// excluded from revenue and sales but still counted under their status so
// the trash view can show a badge.
func ComputeStatistics(orders []Order) Statistics {
	stats := Statistics{
		Revenue:      decimal.Zero,
		StatusCounts: make(map[OrderStatus]int),
	}

	sales := make(map[uint]*ProductSales)
	for i := range orders {
		o := &orders[i]
		stats.StatusCounts[o.Status]++
		if o.IsTrashed() {
			continue
		}

		stats.OrderCount++
		stats.Revenue = stats.Revenue.Add(o.Total)

		for j := range o.Items {
			item := &o.Items[j]
			row, ok := sales[item.ProductID]
			if !ok {
				row = &ProductSales{
					ProductID: item.ProductID,
					Name:      item.Name,
					Revenue:   decimal.Zero,
				}
				sales[item.ProductID] = row
			}
			row.Quantity += item.Quantity
			row.Revenue = row.Revenue.Add(item.LineTotal)
		}
	}

	stats.TopProducts = make([]ProductSales, 0, len(sales))
	for _, row := range sales {
		stats.TopProducts = append(stats.TopProducts, *row)
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		if stats.TopProducts[i].Quantity != stats.TopProducts[j].Quantity {
			return stats.TopProducts[i].Quantity > stats.TopProducts[j].Quantity
		}
		return stats.TopProducts[i].ProductID < stats.TopProducts[j].ProductID
	})

	return stats
}
