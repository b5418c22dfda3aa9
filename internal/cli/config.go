package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend = "backend"
	cfgKeyDataDir = "data_dir"
	cfgKeyShelf   = "shelf"

	// Environment overrides for config keys. The data directory has its own
	// variable, handled by the paths package.
	envBackend = "PANTRY_BACKEND"
	envShelf   = "PANTRY_SHELF"

	defaultBackend   = types.BackendSQLite
	defaultShelfName = "pantry"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
	Shelf   string `yaml:"shelf"`
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir(flag string) (string, error) {
	return paths.ResolveConfigDir(flag)
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// directory or file is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyShelf, defaultShelfName)
	if err := v.BindEnv(cfgKeyBackend, envBackend); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envBackend, err)
	}
	if err := v.BindEnv(cfgKeyShelf, envShelf); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envShelf, err)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with the given values if the
// file does not exist. An existing file is left untouched.
func writeConfigIfMissing(configDir string, cfg configFile) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# Pantry configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
