package path

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestData(t *testing.T) {
	orig := dataDirFunc
	defer func() { dataDirFunc = orig }()
	dataDirFunc = func() (string, error) { return "/data", nil }

	t.Run("env wins", func(t *testing.T) {
		t.Setenv(EnvData, "/env/tags.json")
		p, err := Data("/configured/tags.json")
		require.NoError(t, err)
		assert.Equal(t, "/env/tags.json", p)
	})

	t.Run("configured over default", func(t *testing.T) {
		t.Setenv(EnvData, "")
		p, err := Data("/configured/tags.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/configured/tags.yaml", p)
	})

	t.Run("tilde expanded", func(t *testing.T) {
		t.Setenv(EnvData, "")
		home := t.TempDir()
		t.Setenv("HOME", home)
		homedir.DisableCache = true
		defer func() { homedir.DisableCache = false }()
		p, err := Data("~/tags.json")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "tags.json"), p)
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv(EnvData, "")
		p, err := Data("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/data", "opentag", "tags.json"), p)
	})

	t.Run("no data dir", func(t *testing.T) {
		t.Setenv(EnvData, "")
		dataDirFunc = func() (string, error) { return "", errors.New("no home") }
		_, err := Data("")
		assert.ErrorIs(t, err, ErrNoDataDir)
	})
}
