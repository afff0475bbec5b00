package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func plainProduct() *catalog.Product {
	return &catalog.Product{
		ID:    1,
		Name:  "Espresso",
		Price: decimal.RequireFromString("3.00"),
	}
}

func customizableProduct() *catalog.Product {
	return &catalog.Product{
		ID:    2,
		Name:  "Milkshake",
		Price: decimal.RequireFromString("10.00"),
		Options: []catalog.Option{
			{
				ID: 1, ProductID: 2, Title: "Flavor", MinSelection: 1, MaxSelection: 3,
				AllowRepeat: true, IsActive: true,
				SubProducts: []catalog.SubProduct{
					{ID: 10, OptionID: 1, Name: "Vanilla", Price: decimal.RequireFromString("3.50"), IsActive: true},
					{ID: 11, OptionID: 1, Name: "Chocolate", Price: decimal.RequireFromString("1.25"), IsActive: true},
				},
			},
			{
				ID: 2, ProductID: 2, Title: "Topping", MinSelection: 0, MaxSelection: 2,
				IsActive: true,
				SubProducts: []catalog.SubProduct{
					{ID: 20, OptionID: 2, Name: "Sprinkles", Price: decimal.RequireFromString("0.75"), IsActive: true},
				},
			},
		},
	}
}

func TestAddProduct_QuickAddMergesOptionlessLine(t *testing.T) {
	cart := &Cart{}
	product := plainProduct()

	first := cart.AddProduct(product)
	second := cart.AddProduct(product)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, first.CartItemID, second.CartItemID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestAddProduct_DoesNotMergeIntoConfiguredLine(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	_, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 1}}, "")
	require.NoError(t, err)

	cart.AddProduct(plainProduct())
	cart.AddProduct(customizableProduct()) // optionless line for the same product id

	require.Len(t, cart.Items, 3)
}

func TestConfirmWithOptions_MergeIdempotence(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()
	selections := map[uint]catalog.Selection{1: {10: 1, 11: 1}}

	_, err := cart.ConfirmWithOptions(product, selections, "")
	require.NoError(t, err)
	_, err = cart.ConfirmWithOptions(product, selections, "")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1, "identical configurations must merge")
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestConfirmWithOptions_MergeIsOrderInsensitive(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	_, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 1}, 2: {20: 1}}, "")
	require.NoError(t, err)

	// Same multiset arriving with options swapped in the map still merges.
	_, err = cart.ConfirmWithOptions(product, map[uint]catalog.Selection{2: {20: 1}, 1: {10: 1}}, "")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestConfirmWithOptions_DifferentConfigurationsStaySeparate(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	_, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 1}}, "")
	require.NoError(t, err)
	_, err = cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {11: 1}}, "")
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
}

func TestConfirmWithOptions_InvalidSelectionDoesNotMutate(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	_, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 2}}, "")
	require.NoError(t, err)
	before := cart.Items[0].Quantity

	// Flavor requires at least one selection; Topping allows at most two.
	_, err = cart.ConfirmWithOptions(product, map[uint]catalog.Selection{2: {20: 5}}, "")
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected ValidationError, got %T", err)
	require.Len(t, valErr.Errors, 2, "every out-of-bounds option is reported")

	require.Len(t, cart.Items, 1)
	assert.Equal(t, before, cart.Items[0].Quantity)
}

func TestConfirmWithOptions_EditPreservesIDAndQuantity(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	item, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 1}}, "")
	require.NoError(t, err)
	cart.UpdateQuantity(item.CartItemID, 2) // quantity 3
	id := item.CartItemID

	edited, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {11: 2}}, id)
	require.NoError(t, err)

	assert.Equal(t, id, edited.CartItemID)
	assert.Equal(t, 3, edited.Quantity)
	require.Len(t, edited.SelectedOptions, 1)
	assert.Equal(t, uint(11), edited.SelectedOptions[0].SubProductID)
}

func TestUpdateQuantity_ClampsAtZeroAndRemoves(t *testing.T) {
	cart := &Cart{}
	item := cart.AddProduct(plainProduct())
	id := item.CartItemID

	assert.True(t, cart.UpdateQuantity(id, 2))
	assert.Equal(t, 3, cart.Items[0].Quantity)

	assert.True(t, cart.UpdateQuantity(id, -10))
	assert.Empty(t, cart.Items, "a line clamped to zero is removed")

	assert.False(t, cart.UpdateQuantity(id, 1))
}

func TestPricing(t *testing.T) {
	cart := &Cart{}
	product := customizableProduct()

	// Base 10.00 plus Vanilla 3.50 twice.
	item, err := cart.ConfirmWithOptions(product, map[uint]catalog.Selection{1: {10: 2}}, "")
	require.NoError(t, err)

	assert.True(t, item.UnitPrice().Equal(decimal.RequireFromString("17.00")),
		"unit price = %s", item.UnitPrice())
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("17.00")))

	cart.UpdateQuantity(item.CartItemID, 2) // quantity 3
	assert.True(t, cart.Items[0].LineTotal().Equal(decimal.RequireFromString("51.00")),
		"line total = %s", cart.Items[0].LineTotal())
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("51.00")))
}

func TestSameConfiguration_SplitQuantitiesCompareEqual(t *testing.T) {
	a := &CartItem{ProductID: 1, SelectedOptions: []SelectedOption{
		{OptionID: 1, SubProductID: 10, Quantity: 2},
	}}
	b := &CartItem{ProductID: 1, SelectedOptions: []SelectedOption{
		{OptionID: 1, SubProductID: 10, Quantity: 1},
		{OptionID: 1, SubProductID: 10, Quantity: 1},
	}}
	assert.True(t, a.SameConfiguration(b))

	c := &CartItem{ProductID: 1, SelectedOptions: []SelectedOption{
		{OptionID: 1, SubProductID: 11, Quantity: 2},
	}}
	assert.False(t, a.SameConfiguration(c))
}
