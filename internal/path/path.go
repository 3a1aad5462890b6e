// Package path locates the tag data file.
//
// Resolution order, highest first:
//   - the OPENTAG_DATA environment variable
//   - data.path from the user config
//   - <platform data dir>/opentag/tags.json
//
// The platform data directory follows each OS's convention and is
// implemented per platform in path_unix.go and path_native.go.
package path

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// EnvData is the environment variable that overrides the data file location.
const EnvData = "OPENTAG_DATA"

// ErrNoDataDir is returned when no data directory can be determined.
var ErrNoDataDir = errors.New("unable to retrieve data directory path")

// Data returns the path of the tag data file. configured is the data.path
// config value and may be empty. A leading ~ is expanded.
func Data(configured string) (string, error) {
	p := os.Getenv(EnvData)
	if p == "" {
		p = configured
	}
	if p != "" {
		exp, err := homedir.Expand(p)
		if err != nil {
			return "", fmt.Errorf("expand data path %q: %w", p, err)
		}
		return exp, nil
	}

	dir, err := dataDirFunc()
	if err != nil || dir == "" {
		return "", ErrNoDataDir
	}
	return filepath.Join(dir, "opentag", "tags.json"), nil
}

// dataDirFunc returns the platform data directory.
// Tests can override this to avoid depending on the real environment.
var dataDirFunc = dataDir
