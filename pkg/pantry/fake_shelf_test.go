package pantry

import (
	"encoding/json"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// fakeShelf is an in-memory types.Shelf with injectable failures.
type fakeShelf struct {
	open   bool
	values map[string][]byte
	puts   int

	openErr  error
	getErr   error
	putErr   error
	closeErr error
}

func (f *fakeShelf) Open(name string) error {
	if f.openErr != nil {
		return f.openErr
	}
	if f.open {
		return types.ErrAlreadyOpen
	}
	if f.values == nil {
		f.values = make(map[string][]byte)
	}
	f.open = true
	return nil
}

func (f *fakeShelf) Get(key string, dst any) error {
	if !f.open {
		return types.ErrShelfClosed
	}
	if f.getErr != nil {
		return f.getErr
	}
	raw, ok := f.values[key]
	if !ok {
		return types.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dst)
}

func (f *fakeShelf) Put(key string, value any) error {
	if !f.open {
		return types.ErrShelfClosed
	}
	if f.putErr != nil {
		return f.putErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[key] = raw
	f.puts++
	return nil
}

func (f *fakeShelf) Close() error {
	f.open = false
	return f.closeErr
}
