// Package sqlite implements a Shelf backed by a SQLite database file.
// It uses the pure-Go modernc.org/sqlite driver, so no cgo toolchain is
// needed to build the pantry binary.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var _ types.Shelf = (*Shelf)(nil)

// FileExt is appended to the shelf name to form the database file name.
const FileExt = ".db"

// Shelf implements types.Shelf with one SQLite database per shelf name.
type Shelf struct {
	dataDir string
	logger  *zap.Logger

	db   *sql.DB
	path string
}

// NewShelf returns a closed shelf that keeps its databases in dataDir.
// An empty dataDir means the current directory; a nil logger disables logging.
func NewShelf(dataDir string, logger *zap.Logger) *Shelf {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shelf{dataDir: dataDir, logger: logger}
}

// Path returns the database file backing the shelf, or "" when it is closed.
func (s *Shelf) Path() string {
	return s.path
}

// Open opens <dataDir>/<name>.db, creating the directory, the file and the
// schema as needed. A file that is not a SQLite database fails with
// ErrStorage.
func (s *Shelf) Open(name string) error {
	if s.db != nil {
		return types.ErrAlreadyOpen
	}
	if name == "" {
		return types.ErrShelfNameEmpty
	}

	dataDir := s.dataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return types.WrapStorage("create data dir", err)
	}

	path := filepath.Join(dataDir, name+FileExt)
	op := fmt.Sprintf("open shelf %q", name)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return types.WrapStorage(op, err)
	}
	// One connection: the shelf has a single writer and no concurrent readers.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return types.WrapStorage(op, err)
		}
	}

	s.db = db
	s.path = path
	s.logger.Debug("sqlite shelf opened", zap.String("path", path))
	return nil
}

// Get decodes the value under key into dst.
func (s *Shelf) Get(key string, dst any) error {
	if s.db == nil {
		return types.ErrShelfClosed
	}

	var raw string
	err := s.db.QueryRow(selectValue, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrKeyNotFound
	}
	if err != nil {
		return types.WrapStorage(fmt.Sprintf("read %q", key), err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return types.WrapStorage(fmt.Sprintf("decode %q", key), err)
	}
	return nil
}

// Put encodes value as JSON and upserts it under key.
func (s *Shelf) Put(key string, value any) error {
	if s.db == nil {
		return types.ErrShelfClosed
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return types.WrapStorage(fmt.Sprintf("encode %q", key), err)
	}
	if _, err := s.db.Exec(upsertValue, key, string(raw)); err != nil {
		return types.WrapStorage(fmt.Sprintf("write %q", key), err)
	}

	s.logger.Debug("sqlite shelf put", zap.String("path", s.path), zap.String("key", key), zap.Int("bytes", len(raw)))
	return nil
}

// Close closes the database. Idempotent.
func (s *Shelf) Close() error {
	if s.db == nil {
		return nil
	}

	db, path := s.db, s.path
	s.db = nil
	s.path = ""
	if err := db.Close(); err != nil {
		return types.WrapStorage("close shelf", err)
	}

	s.logger.Debug("sqlite shelf closed", zap.String("path", path))
	return nil
}
