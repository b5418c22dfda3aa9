// Package shelf provides the public factory for shelf backends. The
// backend implementations stay internal; callers receive a types.Shelf.
package shelf

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/pantry/internal/jsonl"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// New validates cfg and returns a closed shelf for the selected backend.
// Pass the result to pantry.Open. A nil logger disables backend logging.
//
// Example:
//
//	sh, err := shelf.New(types.Config{Backend: types.BackendSQLite, DataDir: dir}, nil)
//	if err != nil {
//	    return err
//	}
//	store, err := pantry.Open(sh, "pantry")
func New(cfg types.Config, logger *zap.Logger) (types.Shelf, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("shelf config: %w", err)
	}

	switch cfg.Backend {
	case types.BackendJSONL:
		return jsonl.NewShelf(cfg.DataDir, logger), nil
	default:
		return sqlite.NewShelf(cfg.DataDir, logger), nil
	}
}
