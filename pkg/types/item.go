package types

import (
	"fmt"
	"strconv"
)

// Item is one pantry entry. Identity is the Name alone: two items with the
// same name and different units are the same item.
type Item struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Units  string  `json:"units"`
}

// Equal reports whether two items share a name. Amount and Units are
// ignored.
func (i Item) Equal(other Item) bool {
	return i.Name == other.Name
}

// Merge returns a new Item whose Amount is the sum of both amounts. The
// receiver's Units are kept and other.Units is discarded.
// Returns ErrMergeConflict if the names differ.
func (i Item) Merge(other Item) (Item, error) {
	if !i.Equal(other) {
		return Item{}, fmt.Errorf("merge %q with %q: %w", i.Name, other.Name, ErrMergeConflict)
	}
	return Item{
		Name:   i.Name,
		Amount: i.Amount + other.Amount,
		Units:  i.Units,
	}, nil
}

// String renders the item as "<name>: <amount> <units>".
func (i Item) String() string {
	return i.Name + ": " + FormatAmount(i.Amount) + " " + i.Units
}

// FormatAmount formats an amount in its shortest decimal form, so whole
// quantities print without a fractional part (6, 2.5, -1).
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
