package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Config selects a shelf backend and the directory it keeps its files in.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendJSONL  = "jsonl"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

var backends = []string{BackendSQLite, BackendJSONL}

// Backends returns the backend names Validate accepts, default first.
func Backends() []string {
	return slices.Clone(backends)
}

// Validate checks the backend name. DataDir is not checked; an empty
// DataDir means the current directory.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("%w %q (want %s)", ErrBackendUnknown, c.Backend, strings.Join(backends, " or "))
	}
	return nil
}
