package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

var _ types.Shelf = (*Shelf)(nil)

// FileExt is appended to the shelf name to form the file name.
const FileExt = ".jsonl"

// Shelf implements types.Shelf on top of one JSONL file per shelf name.
// The whole file is read on Open and rewritten on every Put.
type Shelf struct {
	dataDir string
	logger  *zap.Logger

	open   bool
	path   string
	keys   []string // insertion order, preserved on rewrite
	values map[string]json.RawMessage
}

// NewShelf returns a closed shelf that keeps its files in dataDir.
// An empty dataDir means the current directory; a nil logger disables logging.
func NewShelf(dataDir string, logger *zap.Logger) *Shelf {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shelf{dataDir: dataDir, logger: logger}
}

// Path returns the file backing the shelf, or "" when it is closed.
func (s *Shelf) Path() string {
	return s.path
}

// Open loads <dataDir>/<name>.jsonl, creating the directory and an empty
// file when they are absent. A malformed line fails with ErrStorage.
func (s *Shelf) Open(name string) error {
	if s.open {
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
	if err := ensureFile(path); err != nil {
		return types.WrapStorage(fmt.Sprintf("open shelf %q", name), err)
	}
	records, err := readRecords(path)
	if err != nil {
		return types.WrapStorage(fmt.Sprintf("load shelf %q", name), err)
	}

	s.keys = nil
	s.values = make(map[string]json.RawMessage, len(records))
	for _, rec := range records {
		if _, seen := s.values[rec.Key]; !seen {
			s.keys = append(s.keys, rec.Key)
		}
		s.values[rec.Key] = rec.Value
	}
	s.path = path
	s.open = true

	s.logger.Debug("jsonl shelf opened", zap.String("path", path), zap.Int("keys", len(s.keys)))
	return nil
}

// Get decodes the value under key into dst.
func (s *Shelf) Get(key string, dst any) error {
	if !s.open {
		return types.ErrShelfClosed
	}
	raw, ok := s.values[key]
	if !ok {
		return types.ErrKeyNotFound
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return types.WrapStorage(fmt.Sprintf("decode %q", key), err)
	}
	return nil
}

// Put encodes value and rewrites the shelf file. The in-memory state only
// changes once the file has been replaced.
func (s *Shelf) Put(key string, value any) error {
	if !s.open {
		return types.ErrShelfClosed
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return types.WrapStorage(fmt.Sprintf("encode %q", key), err)
	}

	keys := s.keys
	if _, ok := s.values[key]; !ok {
		keys = append(keys[:len(keys):len(keys)], key)
	}
	records := make([]record, 0, len(keys))
	for _, k := range keys {
		v := s.values[k]
		if k == key {
			v = raw
		}
		records = append(records, record{Key: k, Value: v})
	}

	if err := writeRecords(s.path, records); err != nil {
		return types.WrapStorage(fmt.Sprintf("write %q", key), err)
	}
	s.keys = keys
	s.values[key] = raw

	s.logger.Debug("jsonl shelf put", zap.String("path", s.path), zap.String("key", key), zap.Int("bytes", len(raw)))
	return nil
}

// Close drops the loaded state. Idempotent.
func (s *Shelf) Close() error {
	if !s.open {
		return nil
	}
	s.logger.Debug("jsonl shelf closed", zap.String("path", s.path))
	s.open = false
	s.path = ""
	s.keys = nil
	s.values = nil
	return nil
}
