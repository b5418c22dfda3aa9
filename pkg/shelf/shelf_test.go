package shelf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pantry/internal/jsonl"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

func TestNew_SelectsBackend(t *testing.T) {
	dir := t.TempDir()

	s, err := New(types.Config{Backend: types.BackendSQLite, DataDir: dir}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Shelf{}, s)

	s, err = New(types.Config{Backend: types.BackendJSONL, DataDir: dir}, nil)
	require.NoError(t, err)
	assert.IsType(t, &jsonl.Shelf{}, s)
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(types.Config{}, nil)
	assert.ErrorIs(t, err, types.ErrBackendEmpty)

	_, err = New(types.Config{Backend: "postgres"}, nil)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

// Every backend honors the same Shelf contract.
func TestBackendsShareContract(t *testing.T) {
	for _, backend := range []string{types.BackendSQLite, types.BackendJSONL} {
		t.Run(backend, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), backend)
			s, err := New(types.Config{Backend: backend, DataDir: dir}, nil)
			require.NoError(t, err)

			require.NoError(t, s.Open("pantry"))
			assert.ErrorIs(t, s.Open("pantry"), types.ErrAlreadyOpen)

			var items []types.Item
			assert.ErrorIs(t, s.Get("item_list", &items), types.ErrKeyNotFound)

			want := []types.Item{{Name: "Flour", Amount: 3, Units: "cups"}}
			require.NoError(t, s.Put("item_list", want))
			require.NoError(t, s.Close())
			assert.ErrorIs(t, s.Get("item_list", &items), types.ErrShelfClosed)

			require.NoError(t, s.Open("pantry"))
			defer s.Close()
			require.NoError(t, s.Get("item_list", &items))
			assert.Equal(t, want, items)
		})
	}
}
