package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flavorOption() *Option {
	return &Option{
		ID:           1,
		Title:        "Choose your flavor",
		MinSelection: 1,
		MaxSelection: 3,
		AllowRepeat:  true,
		IsActive:     true,
		SubProducts: []SubProduct{
			{ID: 10, OptionID: 1, Name: "Vanilla", Price: decimal.RequireFromString("0.50"), IsActive: true},
			{ID: 11, OptionID: 1, Name: "Chocolate", Price: decimal.RequireFromString("1.00"), IsActive: true},
			{ID: 12, OptionID: 1, Name: "Pistachio", Price: decimal.RequireFromString("2.00"), IsActive: false},
		},
	}
}

func TestIncrement_NeverExceedsMaxSelection(t *testing.T) {
	opt := flavorOption()
	sel := Selection{}

	// Hammer increments well past the bound; total must stay capped.
	for i := 0; i < 10; i++ {
		opt.Increment(sel, 10)
		opt.Increment(sel, 11)
	}
	assert.LessOrEqual(t, sel.Total(), opt.MaxSelection)
}

func TestIncrement_RejectsPastLimitAtInputTime(t *testing.T) {
	opt := flavorOption()
	sel := Selection{}

	require.NoError(t, opt.Increment(sel, 10))
	require.NoError(t, opt.Increment(sel, 10))
	require.NoError(t, opt.Increment(sel, 11))

	err := opt.Increment(sel, 11)
	require.Error(t, err)

	var limitErr *LimitExceededError
	require.True(t, errors.As(err, &limitErr), "expected LimitExceededError, got %T", err)
	assert.Equal(t, opt.ID, limitErr.OptionID)
	assert.Equal(t, "Choose your flavor", limitErr.OptionTitle)
	assert.Equal(t, 3, sel.Total(), "rejected increment must not mutate the selection")
}

func TestIncrement_NoRepeatCapsEachSubProductAtOne(t *testing.T) {
	opt := flavorOption()
	opt.AllowRepeat = false
	sel := Selection{}

	require.NoError(t, opt.Increment(sel, 10))

	err := opt.Increment(sel, 10)
	var limitErr *LimitExceededError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 1, sel[10])

	// A different sub-product is still selectable up to max.
	require.NoError(t, opt.Increment(sel, 11))
	assert.Equal(t, 2, sel.Total())
}

func TestIncrement_InactiveSubProductNotSelectable(t *testing.T) {
	opt := flavorOption()
	sel := Selection{}

	err := opt.Increment(sel, 12)
	require.Error(t, err)
	assert.Empty(t, sel)
}

func TestDecrement_DropsKeyAtZero(t *testing.T) {
	opt := flavorOption()
	sel := Selection{10: 2}

	opt.Decrement(sel, 10)
	assert.Equal(t, 1, sel[10])

	opt.Decrement(sel, 10)
	_, exists := sel[10]
	assert.False(t, exists)

	// Decrementing an unselected sub-product is a no-op.
	opt.Decrement(sel, 11)
	assert.Empty(t, sel)
}

func TestSelect_SingleChoiceReplacesSelection(t *testing.T) {
	opt := flavorOption()
	opt.MaxSelection = 1
	opt.AllowRepeat = false
	sel := Selection{}

	require.NoError(t, opt.Select(sel, 10))
	require.NoError(t, opt.Select(sel, 11))

	assert.Equal(t, Selection{11: 1}, sel)
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		repeat  bool
		sel     Selection
		wantErr bool
	}{
		{"within bounds", 1, 3, true, Selection{10: 2, 11: 1}, false},
		{"optional empty", 0, 3, true, Selection{}, false},
		{"below minimum", 2, 3, true, Selection{10: 1}, true},
		{"above maximum", 0, 2, true, Selection{10: 3}, true},
		{"repeat disallowed", 0, 3, false, Selection{10: 2}, true},
		{"unknown candidate", 0, 3, true, Selection{99: 1}, true},
		{"inactive candidate", 0, 3, true, Selection{12: 1}, true},
		{"zero quantities ignored", 1, 3, true, Selection{10: 1, 11: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := flavorOption()
			opt.MinSelection = tt.min
			opt.MaxSelection = tt.max
			opt.AllowRepeat = tt.repeat

			err := opt.ValidateSelection(tt.sel)
			if tt.wantErr {
				require.Error(t, err)
				var selErr *SelectionError
				require.True(t, errors.As(err, &selErr))
				assert.Equal(t, opt.ID, selErr.OptionID)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOptionValidate(t *testing.T) {
	opt := &Option{Title: "Size", MinSelection: 2, MaxSelection: 1}
	require.Error(t, opt.Validate())

	opt.MinSelection = 0
	opt.MaxSelection = 0
	require.Error(t, opt.Validate())

	opt.MaxSelection = 1
	require.NoError(t, opt.Validate())
}

func TestIntegrityWarnings_RequiredOptionWithoutCandidates(t *testing.T) {
	product := &Product{
		ID:    5,
		Name:  "Milkshake",
		Price: decimal.RequireFromString("6.00"),
		Options: []Option{
			{
				ID: 1, ProductID: 5, Title: "Flavor", MinSelection: 1, MaxSelection: 1, IsActive: true,
				SubProducts: []SubProduct{{ID: 10, Name: "Vanilla", IsActive: false}},
			},
			{
				ID: 2, ProductID: 5, Title: "Topping", MinSelection: 0, MaxSelection: 2, IsActive: true,
			},
		},
	}

	warnings := product.IntegrityWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, uint(1), warnings[0].OptionID)
	assert.False(t, product.IsOrderable())

	// Re-activating the candidate clears the warning.
	product.Options[0].SubProducts[0].IsActive = true
	assert.Empty(t, product.IntegrityWarnings())
	assert.True(t, product.IsOrderable())
}
