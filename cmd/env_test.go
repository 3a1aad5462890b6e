package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/opentag/internal/config"
	"github.com/jpl-au/opentag/internal/prompt"
	"github.com/jpl-au/opentag/internal/store"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `[
  {"names": ["work", "w"], "about": "Work things", "subtags": [
    {"names": ["docs", "d"], "path": "/d", "about": "Team docs\nSecond line"},
    {"names": ["mail"], "path": "https://mail.example.com", "app": "firefox"}
  ]},
  {"names": ["home"], "path": "~/notes"}
]`

// testEnv runs ot in-process against a temporary home and tags file.
type testEnv struct {
	t      *testing.T
	dir    string
	data   string
	opened []opened
	copied []string
	script *script
}

type opened struct{ target, app string }

type fakeOpener struct{ env *testEnv }

func (f fakeOpener) Open(target, app string) error {
	f.env.opened = append(f.env.opened, opened{target, app})
	return nil
}

type fakeClipboard struct{ env *testEnv }

func (f fakeClipboard) WriteAll(text string) error {
	f.env.copied = append(f.env.copied, text)
	return nil
}

// script answers prompts from fixed lists, in order.
type script struct {
	inputs   []string
	selects  []int // -1 picks the cancel entry
	confirms []bool
	asked    []string
}

func (s *script) Input(label string, _ bool) (string, error) {
	s.asked = append(s.asked, label)
	if len(s.inputs) == 0 {
		return "", prompt.ErrInterrupted
	}
	v := s.inputs[0]
	s.inputs = s.inputs[1:]
	return v, nil
}

func (s *script) Select(label string, _ []string, _ string) (int, bool, error) {
	s.asked = append(s.asked, label)
	if len(s.selects) == 0 {
		return 0, false, prompt.ErrInterrupted
	}
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, v >= 0, nil
}

func (s *script) Confirm(label string) (bool, error) {
	s.asked = append(s.asked, label)
	if len(s.confirms) == 0 {
		return false, prompt.ErrInterrupted
	}
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

func (s *script) Edit(string) (string, bool, error) {
	return "", false, nil
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{t: t, dir: dir, data: filepath.Join(dir, "tags.json"), script: &script{}}
	require.NoError(t, os.WriteFile(env.data, []byte(seed), 0644))

	t.Setenv("HOME", dir)
	t.Setenv("OPENTAG_DATA", env.data)

	prevOpener, prevClipboard, prevPrompter, prevOut, prevErr := opener, clipboard, newPrompter, out, errOut
	t.Cleanup(func() {
		opener, clipboard, newPrompter, out, errOut = prevOpener, prevClipboard, prevPrompter, prevOut, prevErr
	})
	opener = fakeOpener{env}
	clipboard = fakeClipboard{env}
	newPrompter = func(*config.Config) prompt.Prompter { return env.script }

	return env
}

// run executes ot with the given args and returns stdout.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	got, err := e.runErr(args...)
	require.NoError(e.t, err, "ot %v\noutput: %s", args, got)
	return got
}

// runErr executes ot and returns stdout and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	SetOut(&stdout)
	errOut = &stderr
	err := Run(args)
	return stdout.String(), err
}

// config writes the config file.
func (e *testEnv) config(yaml string) {
	e.t.Helper()
	p := filepath.Join(e.dir, ".opentag", "config.yaml")
	require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(e.t, os.WriteFile(p, []byte(yaml), 0644))
}

// tree reads the tags file back.
func (e *testEnv) tree() tag.Tree {
	e.t.Helper()
	got, err := store.Load(e.data)
	require.NoError(e.t, err)
	return got
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}
