// Package pantry implements the item store: an ordered list of pantry
// items persisted as one value under a reserved key of a named shelf.
//
// A Store is not safe for concurrent use. It is meant to be driven
// synchronously from a single caller, such as a CLI command or a UI event
// handler.
package pantry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// ItemListKey is the shelf key the item sequence is stored under.
const ItemListKey = "item_list"

// Store owns an ordered sequence of items, at most one per name, and the
// shelf it persists them to.
//
// Lifecycle: Open yields an open, clean store. Add and Delete make it dirty;
// Save makes it clean. Close releases the shelf without saving. Reopen
// reloads the persisted sequence and discards anything unsaved.
type Store struct {
	shelf types.Shelf
	name  string

	items []types.Item
	dirty bool
	open  bool
}

// Open opens the named shelf, creating it if absent, and loads the item
// sequence. A shelf without an item list yields an empty store.
func Open(shelf types.Shelf, name string) (*Store, error) {
	s := &Store{shelf: shelf, name: name}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// With opens the named store, runs fn, and closes the store whatever fn
// returns. Close does not save; fn must call Save to keep its changes.
func With(shelf types.Shelf, name string, fn func(*Store) error) (err error) {
	s, err := Open(shelf, name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

func (s *Store) load() error {
	if err := s.shelf.Open(s.name); err != nil {
		return fmt.Errorf("open store %q: %w", s.name, err)
	}

	var items []types.Item
	if err := s.shelf.Get(ItemListKey, &items); err != nil && !errors.Is(err, types.ErrKeyNotFound) {
		return errors.Join(fmt.Errorf("load store %q: %w", s.name, err), s.shelf.Close())
	}

	s.items = items
	s.dirty = false
	s.open = true
	return nil
}

// Reopen moves a closed store back to open and clean, reloading the
// persisted sequence. Returns ErrAlreadyOpen if the store is open.
func (s *Store) Reopen() error {
	if s.open {
		return types.ErrAlreadyOpen
	}
	return s.load()
}

// Add records amount of the named item and returns the new item count.
//
// If an item with the same name exists, its amount grows by amount and its
// units stay as they were; units is discarded. Otherwise a new item is
// appended. Amount and units are not validated.
func (s *Store) Add(name string, amount float64, units string) int {
	candidate := types.Item{Name: name, Amount: amount, Units: units}

	if i := slices.IndexFunc(s.items, candidate.Equal); i >= 0 {
		// Names match, so Merge cannot fail.
		s.items[i], _ = s.items[i].Merge(candidate)
	} else {
		s.items = append(s.items, candidate)
	}

	s.dirty = true
	return len(s.items)
}

// Delete removes the items at the given zero-based indices and returns the
// new item count.
//
// Every index refers to the sequence as it is when Delete is called, so
// Delete(0, 1) removes the first two items. Repeated indices count once.
// If any index is out of range, Delete returns ErrNotFound and removes
// nothing. Calling Delete with no indices does nothing.
func (s *Store) Delete(indices ...int) (int, error) {
	n := len(s.items)
	if len(indices) == 0 {
		return n, nil
	}
	for _, i := range indices {
		if i < 0 || i >= n {
			return n, fmt.Errorf("delete index %d of %d items: %w", i, n, types.ErrNotFound)
		}
	}

	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	// Highest index first, so earlier removals never shift later targets.
	for k := len(sorted) - 1; k >= 0; k-- {
		i := sorted[k]
		s.items = slices.Delete(s.items, i, i+1)
	}

	s.dirty = true
	return len(s.items), nil
}

// Save writes the item sequence to the shelf and marks the store clean.
// Returns ErrStoreClosed after Close.
func (s *Store) Save() error {
	if !s.open {
		return types.ErrStoreClosed
	}

	items := s.items
	if items == nil {
		items = []types.Item{}
	}
	if err := s.shelf.Put(ItemListKey, items); err != nil {
		return fmt.Errorf("save store %q: %w", s.name, err)
	}

	s.dirty = false
	return nil
}

// Close releases the shelf. It does not save. Idempotent.
func (s *Store) Close() error {
	if !s.open {
		return nil
	}
	s.open = false
	if err := s.shelf.Close(); err != nil {
		return fmt.Errorf("close store %q: %w", s.name, err)
	}
	return nil
}

// Count returns the number of items.
func (s *Store) Count() int {
	return len(s.items)
}

// Render lists the items one per line in order, formatted as
// "<name>: <amount> <units>". An empty store renders as "".
func (s *Store) Render() string {
	lines := make([]string, len(s.items))
	for i, item := range s.items {
		lines[i] = item.String()
	}
	return strings.Join(lines, "\n")
}

// Items returns a copy of the item sequence.
func (s *Store) Items() []types.Item {
	return slices.Clone(s.items)
}

// Dirty reports whether there are changes since the last load or save.
func (s *Store) Dirty() bool {
	return s.dirty
}

// IsOpen reports whether the store holds an open shelf.
func (s *Store) IsOpen() bool {
	return s.open
}

// Name returns the shelf name the store was opened with.
func (s *Store) Name() string {
	return s.name
}
