//go:build windows || darwin

// path_native.go uses the OS application data directory: %AppData% on
// Windows and ~/Library/Application Support on macOS. Both coincide with
// os.UserConfigDir on these platforms.

package path

import "os"

func dataDir() (string, error) {
	return os.UserConfigDir()
}
