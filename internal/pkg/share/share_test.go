package share

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:            42,
		CustomerName:  "Alex",
		CustomerPhone: "+15550100",
		Address:       "1 Main St",
		Note:          "ring the bell",
		Total:         decimal.RequireFromString("23.50"),
		Items: []order.OrderItem{
			{
				Name:     "Milkshake",
				Quantity: 2,
				SelectedOptions: []cart.SelectedOption{
					{OptionTitle: "Flavor", SubProductName: "Vanilla", Quantity: 2},
				},
				LineTotal: decimal.RequireFromString("20.50"),
			},
			{Name: "Espresso", Quantity: 1, LineTotal: decimal.RequireFromString("3.00")},
		},
	}
}

func TestOrderSummary(t *testing.T) {
	text := OrderSummary("Corner Cafe", sampleOrder())

	assert.Contains(t, text, "Order #42 at Corner Cafe")
	assert.Contains(t, text, "Customer: Alex")
	assert.Contains(t, text, "2x Milkshake (Vanilla x2) = 20.50")
	assert.Contains(t, text, "1x Espresso = 3.00")
	assert.Contains(t, text, "Total: 23.50")
	assert.Contains(t, text, "Note: ring the bell")
}

func TestMessageLink_EncodesTextWithoutRecipient(t *testing.T) {
	link := MessageLink("Order #42\nTotal: 23.50")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	assert.NotContains(t, link, "\n", "newlines must be percent-encoded")
	assert.Contains(t, link, "Order+%2342")
}

func TestStorefrontURL(t *testing.T) {
	assert.Equal(t, "https://shop.example.com/s/corner-cafe",
		StorefrontURL("https://shop.example.com/", "corner-cafe"))
}
