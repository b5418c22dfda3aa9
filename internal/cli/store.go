package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/shelf"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// storeConfig resolves the backend, data directory and shelf name.
// Flags win over config.yaml and the PANTRY_* environment.
func (a *app) storeConfig() (types.Config, string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve data dir: %w: %w", errSystem, err)
	}

	backend := a.flags.backend
	if backend == "" {
		backend = a.config.GetString(cfgKeyBackend)
	}
	name := a.flags.shelfName
	if name == "" {
		name = a.config.GetString(cfgKeyShelf)
	}
	if name == "" {
		return types.Config{}, "", types.ErrShelfNameEmpty
	}

	return types.Config{Backend: backend, DataDir: dataDir}, name, nil
}

// withStore opens the configured store, runs fn, and closes the store.
func (a *app) withStore(fn func(*pantry.Store) error) error {
	cfg, name, err := a.storeConfig()
	if err != nil {
		return err
	}
	sh, err := shelf.New(cfg, a.logger)
	if err != nil {
		return err
	}

	a.logger.Debug("opening store",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.String("shelf", name))
	return pantry.With(sh, name, fn)
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// findItem returns the item with the given name.
func findItem(items []types.Item, name string) (types.Item, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return types.Item{}, false
}

// nonNil keeps empty lists rendering as [] in JSON output.
func nonNil(items []types.Item) []types.Item {
	if items == nil {
		return []types.Item{}
	}
	return items
}
