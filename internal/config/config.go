// Package config provides reading and writing of opentag configuration,
// stored in ~/.opentag/config.yaml.
//
// Every setting is optional. A missing file, or a missing key, means the
// built-in default; the accessors below apply those defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Data holds the location of the tags file.
type Data struct {
	Path string `yaml:"path,omitempty"`
}

// Remove holds options for the remove operation.
type Remove struct {
	Confirm *bool `yaml:"confirm,omitempty"`
}

// Info holds options for the --info action.
type Info struct {
	Style string `yaml:"style,omitempty"`
}

// Styles accepted by info.style. "auto" picks dark or light from the
// terminal background; "notty" renders plain text.
var Styles = []string{"auto", "dark", "light", "notty"}

// DefaultStyle is used when info.style is not configured.
const DefaultStyle = "auto"

// Config contains configuration for opentag.
type Config struct {
	Data   Data   `yaml:"data,omitempty"`
	Editor string `yaml:"editor,omitempty"`
	Remove Remove `yaml:"remove,omitempty"`
	Info   Info   `yaml:"info,omitempty"`

	// path is the file this config was loaded from (for Save)
	path string
}

// Validate checks that all configured values are acceptable.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Info.Style != "" && !validStyle(c.Info.Style) {
		return fmt.Errorf("%w: info.style must be one of %v, got %q",
			ErrInvalidValue, Styles, c.Info.Style)
	}
	return nil
}

func validStyle(s string) bool { return slices.Contains(Styles, s) }

// DataPath returns the configured tags file, or "" for the default.
func (c *Config) DataPath() string { return c.Data.Path }

// RemoveConfirm returns whether remove asks for confirmation (defaults to true).
func (c *Config) RemoveConfirm() bool {
	if c.Remove.Confirm == nil {
		return true
	}
	return *c.Remove.Confirm
}

// InfoStyle returns the glamour style for --info (defaults to auto).
func (c *Config) InfoStyle() string {
	if c.Info.Style == "" {
		return DefaultStyle
	}
	return c.Info.Style
}

// globalPathFunc is overridden in tests.
var globalPathFunc = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".opentag", "config.yaml")
}

// GlobalPath returns the path to the config file: ~/.opentag/config.yaml
func GlobalPath() string {
	return globalPathFunc()
}

// Load reads the configuration file. A missing file yields defaults.
func Load() (*Config, error) {
	path := GlobalPath()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to the file it was loaded from.
// Creates parent directories as needed with mode 0755.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = GlobalPath()
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
