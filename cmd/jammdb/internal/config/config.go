// Package config loads the jammdb CLI configuration file.
//
// The file lives at os.UserConfigDir()/jammdb/config.yaml:
//
//	~/Library/Application Support/jammdb/config.yaml   (macOS)
//	~/.config/jammdb/config.yaml                       (Linux)
//	%AppData%/jammdb/config.yaml                       (Windows)
//
// The directory can be overridden with the JAMMDB_CONFIG_DIR environment
// variable. All fields are optional; command line flags take precedence
// over file values.
//
//	db: /var/lib/jammdb         # badger database directory
//	memory: false               # run on the in-memory engine
//	archive: s3://backups/kv    # snapshot archive target
//	format: raw                 # default output format
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "jammdb"

	// configFile is the configuration file name inside the app directory.
	configFile = "config.yaml"

	// envDir overrides the configuration directory.
	envDir = "JAMMDB_CONFIG_DIR"
)

// Config holds the CLI configuration.
type Config struct {
	// DB is the badger database directory.
	DB string `yaml:"db"`

	// Memory selects the in-memory engine instead of badger.
	Memory bool `yaml:"memory"`

	// Archive is the snapshot archive target: a local directory or an
	// s3://bucket/prefix URL.
	Archive string `yaml:"archive"`

	// Format is the default output format (raw, hex, base64 or json).
	Format string `yaml:"format"`
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	if dir := os.Getenv(envDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// Load reads the configuration from the default location. A missing
// file yields a zero Config.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, configFile))
}

// LoadFrom reads a configuration file from an explicit path. A missing
// file yields a zero Config.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
