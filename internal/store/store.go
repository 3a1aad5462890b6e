// Package store persists the tag tree to a single data file.
//
// The file is the persistence boundary: Save validates the whole tree before
// anything reaches disk, drops tombstoned tags, and replaces the file
// atomically so that a rejected or failed write leaves the previous contents
// untouched.
//
// The format follows the file extension (see codec.go). Whatever the format,
// the shape is the same: an ordered list of tags, each with names, optional
// path/about/app, and optional subtags.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
)

// Store reads and writes the tag tree at a fixed path.
type Store struct {
	path   string
	format Format
}

// Open returns a store for path, creating the file (and its parent
// directories) with an empty tree if it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, format: FormatFor(path)}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Create(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("tags file error at path `%s`: %w", path, err)
	}
	return s, nil
}

// Path returns the data file path.
func (s *Store) Path() string { return s.path }

// Load reads and parses the data file.
func (s *Store) Load() (tag.Tree, error) {
	return Load(s.path)
}

// Save validates and writes the tree.
func (s *Store) Save(t tag.Tree) error {
	return Save(s.path, t)
}

// Load reads the tag tree from path.
func Load(path string) (tag.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tags file error at path `%s`: %w", path, err)
	}
	f := FormatFor(path)
	t, err := f.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s error at path `%s`: %w", f, path, err)
	}
	return t, nil
}

// Save writes t to path. The whole tree is validated first; on failure
// nothing is written. Tombstoned tags are omitted at every level.
func Save(path string, t tag.Tree) error {
	if err := validate.CheckTree(t); err != nil {
		return err
	}
	f := FormatFor(path)
	data, err := f.encode(t.Prune())
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return writeAtomic(path, data)
}

// Create writes an empty tree to path, creating parent directories as needed.
func Create(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	data, err := FormatFor(path).encode(nil)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// writeAtomic writes to a temp file in the same directory and renames it over
// path, so readers see either the old or the new contents.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tags-*")
	if err != nil {
		return fmt.Errorf("writing tags file: %w", err)
	}
	name := tmp.Name()
	defer os.Remove(name) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing tags file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing tags file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing tags file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("writing tags file: %w", err)
	}
	return nil
}
