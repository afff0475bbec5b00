// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

// SelectedOption is one chosen sub-product inside an option, snapshotted
// with its price at selection time.
type SelectedOption struct {
	OptionID       uint            `json:"option_id"`
	OptionTitle    string          `json:"option_title"`
	SubProductID   uint            `json:"sub_product_id"`
	SubProductName string          `json:"sub_product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
}

// CartItem is one product configuration in the cart. CartItemID is a
// client-facing key distinct from the product id: two lines may carry the
// same product with different configurations.
type CartItem struct {
	CartItemID      string           `json:"cart_item_id"`
	ProductID       uint             `json:"product_id"`
	Name            string           `json:"name"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	AddedAt         time.Time        `json:"added_at"`
}

// UnitPrice returns base price plus the additive sub-product prices.
func (ci *CartItem) UnitPrice() decimal.Decimal {
	price := ci.BasePrice
	for _, sel := range ci.SelectedOptions {
		price = price.Add(sel.UnitPrice.Mul(decimal.NewFromInt(int64(sel.Quantity))))
	}
	return price
}

// LineTotal returns the unit price multiplied by the line quantity.
func (ci *CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// SameConfiguration reports whether two lines carry the same product with
// multiset-equal selected options. Option order is irrelevant.
func (ci *CartItem) SameConfiguration(other *CartItem) bool {
	if ci.ProductID != other.ProductID {
		return false
	}
	return optionKey(ci.SelectedOptions) == optionKey(other.SelectedOptions)
}

// optionKey canonicalizes a selection list: quantities summed per
// (option, sub-product) pair, rendered in sorted order.
func optionKey(sels []SelectedOption) string {
	merged := make(map[string]int, len(sels))
	for _, sel := range sels {
		if sel.Quantity > 0 {
			merged[fmt.Sprintf("%d:%d", sel.OptionID, sel.SubProductID)] += sel.Quantity
		}
	}
	parts := make([]string, 0, len(merged))
	for key, qty := range merged {
		parts = append(parts, fmt.Sprintf("%s=%d", key, qty))
	}
	// Deterministic ordering without caring about the original slice order.
	for i := range parts {
		for j := i + 1; j < len(parts); j++ {
			if parts[j] < parts[i] {
				parts[i], parts[j] = parts[j], parts[i]
			}
		}
	}
	return strings.Join(parts, ",")
}

// Cart is the customer's composed order-in-progress. Mutations are
// synchronous and strictly ordered by call sequence.
type Cart struct {
	SessionID string     `json:"session_id,omitempty"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ValidationError aggregates the per-option failures of a rejected confirm.
// The cart is untouched when it is returned.
type ValidationError struct {
	Errors []*catalog.SelectionError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid selection: " + strings.Join(msgs, "; ")
}

// AddProduct is the quick-add path for products without customization: it
// merges into the existing option-less line for the product, or appends a
// fresh line with quantity 1.
func (c *Cart) AddProduct(product *catalog.Product) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == product.ID && len(c.Items[i].SelectedOptions) == 0 {
			c.Items[i].Quantity++
			c.touch()
			return &c.Items[i]
		}
	}

	item := CartItem{
		CartItemID: uuid.New().String(),
		ProductID:  product.ID,
		Name:       product.Name,
		BasePrice:  product.Price,
		Quantity:   1,
		AddedAt:    time.Now().UTC(),
	}
	c.Items = append(c.Items, item)
	c.touch()
	return &c.Items[len(c.Items)-1]
}

// ConfirmWithOptions validates every option's selection and then either
// replaces the configuration of the line named by editingCartItemID
// (preserving its id and quantity), merges into a structurally equal line,
// or appends a new line with quantity 1. An invalid selection mutates
// nothing and reports every option out of bounds.
func (c *Cart) ConfirmWithOptions(product *catalog.Product, selections map[uint]catalog.Selection, editingCartItemID string) (*CartItem, error) {
	var errs []*catalog.SelectionError
	for i := range product.Options {
		opt := &product.Options[i]
		if !opt.IsActive {
			continue
		}
		if err := opt.ValidateSelection(selections[opt.ID]); err != nil {
			if selErr, ok := err.(*catalog.SelectionError); ok {
				errs = append(errs, selErr)
			} else {
				errs = append(errs, &catalog.SelectionError{
					OptionID: opt.ID, OptionTitle: opt.Title, Reason: err.Error(),
				})
			}
		}
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	selected := snapshotSelections(product, selections)

	if editingCartItemID != "" {
		for i := range c.Items {
			if c.Items[i].CartItemID == editingCartItemID {
				c.Items[i].SelectedOptions = selected
				c.Items[i].BasePrice = product.Price
				c.Items[i].Name = product.Name
				c.touch()
				return &c.Items[i], nil
			}
		}
		return nil, fmt.Errorf("cart item %s not found", editingCartItemID)
	}

	candidate := CartItem{
		CartItemID:      uuid.New().String(),
		ProductID:       product.ID,
		Name:            product.Name,
		BasePrice:       product.Price,
		Quantity:        1,
		SelectedOptions: selected,
		AddedAt:         time.Now().UTC(),
	}

	for i := range c.Items {
		if c.Items[i].SameConfiguration(&candidate) {
			c.Items[i].Quantity++
			c.touch()
			return &c.Items[i], nil
		}
	}

	c.Items = append(c.Items, candidate)
	c.touch()
	return &c.Items[len(c.Items)-1], nil
}

// UpdateQuantity adjusts a line by delta, clamping at zero; a line reaching
// zero is removed. Returns false when the line does not exist.
func (c *Cart) UpdateQuantity(cartItemID string, delta int) bool {
	for i := range c.Items {
		if c.Items[i].CartItemID != cartItemID {
			continue
		}
		newQty := c.Items[i].Quantity + delta
		if newQty <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = newQty
		}
		c.touch()
		return true
	}
	return false
}

// Total sums all line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].LineTotal())
	}
	return total
}

// ItemCount returns the summed quantity across lines.
func (c *Cart) ItemCount() int {
	count := 0
	for i := range c.Items {
		count += c.Items[i].Quantity
	}
	return count
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}

// snapshotSelections freezes the chosen sub-products with their current
// prices. Later catalog price edits never reprice lines already in a cart
// that became an order.
func snapshotSelections(product *catalog.Product, selections map[uint]catalog.Selection) []SelectedOption {
	var selected []SelectedOption
	for i := range product.Options {
		opt := &product.Options[i]
		sel := selections[opt.ID]
		for _, subID := range sel.SubProductIDs() {
			sub, ok := opt.SubProductByID(subID)
			if !ok {
				continue
			}
			selected = append(selected, SelectedOption{
				OptionID:       opt.ID,
				OptionTitle:    opt.Title,
				SubProductID:   sub.ID,
				SubProductName: sub.Name,
				UnitPrice:      sub.Price,
				Quantity:       sel[subID],
			})
		}
	}
	return selected
}
