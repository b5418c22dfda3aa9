package types

import (
	"errors"
	"fmt"
)

// Item and store errors.
var (
	ErrStorage       = errors.New("storage failure")
	ErrNotFound      = errors.New("item index out of range")
	ErrMergeConflict = errors.New("cannot merge unlike items")
	ErrStoreClosed   = errors.New("item store is closed")
)

// Shelf errors.
var (
	ErrShelfClosed    = errors.New("shelf is closed")
	ErrAlreadyOpen    = errors.New("shelf is already open")
	ErrKeyNotFound    = errors.New("key not found")
	ErrShelfNameEmpty = errors.New("shelf name must not be empty")
)

// WrapStorage tags err as a storage failure of the named operation. The
// result matches both ErrStorage and err under errors.Is.
func WrapStorage(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
