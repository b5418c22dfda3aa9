package types

// Shelf is a named persistent key-value store. Values are encoded by the
// shelf, so callers pass and receive ordinary Go values.
type Shelf interface {
	// Open opens the shelf with the given name, creating it if absent.
	// Returns ErrAlreadyOpen if the shelf is already open.
	Open(name string) error

	// Get decodes the value stored under key into dst.
	// Returns ErrKeyNotFound if the key is absent, ErrShelfClosed if the
	// shelf is not open.
	Get(key string, dst any) error

	// Put stores value under key, replacing any previous value.
	// Returns ErrShelfClosed if the shelf is not open.
	Put(key string, value any) error

	// Close releases the shelf handle. Idempotent.
	Close() error
}
