//go:build !windows && !darwin

// path_unix.go follows the XDG base directory spec: $XDG_DATA_HOME when it is
// an absolute path, otherwise ~/.local/share.

package path

import (
	"os"
	"path/filepath"
)

func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(xdg) {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}
