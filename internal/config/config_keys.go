// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go so that file only deals with the YAML structure
// and loading. The MCP server reads and writes config through these string
// keys (e.g. "remove.confirm").
//
// Design: Pointers are used for optional booleans so "not set" (nil) and
// "explicitly false" stay distinct; defaults apply only to the former.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{"data.path", "editor", "remove.confirm", "info.style"}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "data.path":
		return c.Data.Path, nil
	case "editor":
		return c.Editor, nil
	case "remove.confirm":
		return strconv.FormatBool(c.RemoveConfirm()), nil
	case "info.style":
		return c.InfoStyle(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data.path":
		c.Data.Path = value
	case "editor":
		c.Editor = value
	case "remove.confirm":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: remove.confirm must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Remove.Confirm = &b
	case "info.style":
		if !validStyle(value) {
			return fmt.Errorf("%w: info.style must be one of %v", ErrInvalidValue, Styles)
		}
		c.Info.Style = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		all[k], _ = c.Get(k)
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "data.path":
		return c.Data.Path != ""
	case "editor":
		return c.Editor != ""
	case "remove.confirm":
		return c.Remove.Confirm != nil
	case "info.style":
		return c.Info.Style != ""
	default:
		return false
	}
}
