// internal/domain/catalog/selection.go
package catalog

import (
	"fmt"
	"sort"
)

// Selection is the candidate multiset for a single option, keyed by
// sub-product id. A zero quantity and an absent key are equivalent.
type Selection map[uint]int

// Total returns the summed quantity across all sub-products.
func (s Selection) Total() int {
	total := 0
	for _, qty := range s {
		total += qty
	}
	return total
}

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	cp := make(Selection, len(s))
	for id, qty := range s {
		if qty > 0 {
			cp[id] = qty
		}
	}
	return cp
}

// SubProductIDs returns the selected ids in ascending order.
func (s Selection) SubProductIDs() []uint {
	ids := make([]uint, 0, len(s))
	for id, qty := range s {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LimitExceededError signals an increment past the option's bounds. It is
// raised at input time, before any submission.
type LimitExceededError struct {
	OptionID    uint
	OptionTitle string
	Limit       int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("selection limit of %d reached for option %q", e.Limit, e.OptionTitle)
}

// SelectionError reports an out-of-bounds selection for one option at
// submit time.
type SelectionError struct {
	OptionID    uint
	OptionTitle string
	Reason      string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("option %q: %s", e.OptionTitle, e.Reason)
}

// Increment adds one unit of the given sub-product to the selection.
// Bounds are enforced here so the UI can reject the tap immediately:
// the total never exceeds max_selection, and with allow_repeat=false a
// sub-product is capped at one unit.
func (o *Option) Increment(sel Selection, subProductID uint) error {
	sp, ok := o.SubProductByID(subProductID)
	if !ok {
		return fmt.Errorf("sub-product %d does not belong to option %q", subProductID, o.Title)
	}
	if !sp.IsActive {
		return fmt.Errorf("sub-product %q is not available", sp.Name)
	}

	if !o.AllowRepeat && sel[subProductID] >= 1 {
		return &LimitExceededError{OptionID: o.ID, OptionTitle: o.Title, Limit: 1}
	}
	if sel.Total() >= o.MaxSelection {
		return &LimitExceededError{OptionID: o.ID, OptionTitle: o.Title, Limit: o.MaxSelection}
	}

	sel[subProductID]++
	return nil
}

// Decrement removes one unit of the given sub-product, dropping the key at
// zero. Decrementing an unselected sub-product is a no-op.
func (o *Option) Decrement(sel Selection, subProductID uint) {
	if sel[subProductID] <= 1 {
		delete(sel, subProductID)
		return
	}
	sel[subProductID]--
}

// Select replaces the selection for a single-choice option with the given
// sub-product (radio behavior).
func (o *Option) Select(sel Selection, subProductID uint) error {
	if !o.IsSingleChoice() {
		return o.Increment(sel, subProductID)
	}
	sp, ok := o.SubProductByID(subProductID)
	if !ok {
		return fmt.Errorf("sub-product %d does not belong to option %q", subProductID, o.Title)
	}
	if !sp.IsActive {
		return fmt.Errorf("sub-product %q is not available", sp.Name)
	}
	for id := range sel {
		delete(sel, id)
	}
	sel[subProductID] = 1
	return nil
}

// ValidateSelection checks a candidate selection against the option's
// constraints before submission. Stored selections on already-placed orders
// are never re-validated, so a sub-product deactivated later does not
// invalidate history.
func (o *Option) ValidateSelection(sel Selection) error {
	total := 0
	for id, qty := range sel {
		if qty < 0 {
			return &SelectionError{OptionID: o.ID, OptionTitle: o.Title, Reason: "negative quantity"}
		}
		if qty == 0 {
			continue
		}
		sp, ok := o.SubProductByID(id)
		if !ok {
			return &SelectionError{
				OptionID:    o.ID,
				OptionTitle: o.Title,
				Reason:      fmt.Sprintf("sub-product %d is not a candidate", id),
			}
		}
		if !sp.IsActive {
			return &SelectionError{
				OptionID:    o.ID,
				OptionTitle: o.Title,
				Reason:      fmt.Sprintf("sub-product %q is not available", sp.Name),
			}
		}
		if !o.AllowRepeat && qty > 1 {
			return &SelectionError{
				OptionID:    o.ID,
				OptionTitle: o.Title,
				Reason:      fmt.Sprintf("sub-product %q may be chosen at most once", sp.Name),
			}
		}
		total += qty
	}

	if total < o.MinSelection {
		return &SelectionError{
			OptionID:    o.ID,
			OptionTitle: o.Title,
			Reason:      fmt.Sprintf("requires at least %d selection(s), got %d", o.MinSelection, total),
		}
	}
	if total > o.MaxSelection {
		return &SelectionError{
			OptionID:    o.ID,
			OptionTitle: o.Title,
			Reason:      fmt.Sprintf("allows at most %d selection(s), got %d", o.MaxSelection, total),
		}
	}
	return nil
}
