package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".opentag", "config.yaml")
	orig := globalPathFunc
	globalPathFunc = func() string { return path }
	t.Cleanup(func() { globalPathFunc = orig })
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	withConfigPath(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DataPath())
	assert.True(t, cfg.RemoveConfirm())
	assert.Equal(t, "auto", cfg.InfoStyle())
	assert.False(t, cfg.IsSet("remove.confirm"))
}

func TestLoad_File(t *testing.T) {
	path := withConfigPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  path: ~/tags.yaml
editor: nano
remove:
  confirm: false
info:
  style: dark
`), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "~/tags.yaml", cfg.DataPath())
	assert.Equal(t, "nano", cfg.Editor)
	assert.False(t, cfg.RemoveConfirm())
	assert.True(t, cfg.IsSet("remove.confirm"))
	assert.Equal(t, "dark", cfg.InfoStyle())
}

func TestLoad_Invalid(t *testing.T) {
	path := withConfigPath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	require.NoError(t, os.WriteFile(path, []byte("info: [unclosed"), 0644))
	_, err := Load()
	assert.ErrorContains(t, err, "malformed config file")

	require.NoError(t, os.WriteFile(path, []byte("info:\n  style: neon\n"), 0644))
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSetGet(t *testing.T) {
	cfg := &Config{}

	require.NoError(t, cfg.Set("remove.confirm", "FALSE"))
	v, err := cfg.Get("remove.confirm")
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	require.NoError(t, cfg.Set("editor", "code --wait"))
	assert.Equal(t, "code --wait", cfg.All()["editor"])

	assert.ErrorIs(t, cfg.Set("remove.confirm", "maybe"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("info.style", "neon"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("nope", "x"), ErrUnknownKey)
	_, err = cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSave_RoundTrip(t *testing.T) {
	path := withConfigPath(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Set("data.path", "/srv/tags.toml"))
	require.NoError(t, cfg.Set("info.style", "light"))
	require.NoError(t, cfg.Save())
	assert.FileExists(t, path)

	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/tags.toml", again.DataPath())
	assert.Equal(t, "light", again.InfoStyle())
	assert.True(t, again.RemoveConfirm())
}
