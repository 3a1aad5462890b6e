// codec.go maps file extensions to encoders and decoders.
//
// Separated from store.go so the file handling stays format-agnostic.
//
// Design: every format decodes into generic maps first and goes through the
// same normaliser in decode.go. That keeps the legacy field names and the
// "one name or many" rule in one place instead of three sets of struct tags.
// Encoding uses the canonical record type, so files are always written with
// canonical field names.

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jpl-au/opentag/internal/tag"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a data file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "json"
	}
}

// FormatFor picks the format from the file extension. Unknown extensions
// are treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// record is the canonical on-disk shape of a tag.
type record struct {
	Names   []string `json:"names" yaml:"names" toml:"names"`
	Path    string   `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	About   string   `json:"about,omitempty" yaml:"about,omitempty" toml:"about,omitempty"`
	App     string   `json:"app,omitempty" yaml:"app,omitempty" toml:"app,omitempty"`
	Subtags []record `json:"subtags,omitempty" yaml:"subtags,omitempty" toml:"subtags,omitempty"`
}

// tomlDoc wraps the list because a TOML document must be a table.
type tomlDoc struct {
	Tags []record `toml:"tags"`
}

type tomlRaw struct {
	Tags []map[string]any `toml:"tags"`
}

func toRecords(level []tag.Tag) []record {
	out := make([]record, 0, len(level))
	for _, t := range level {
		out = append(out, record{
			Names:   t.Names,
			Path:    t.Path,
			About:   t.About,
			App:     t.App,
			Subtags: toRecords(t.Subtags),
		})
	}
	return out
}

func (f Format) encode(t tag.Tree) ([]byte, error) {
	recs := toRecords(t)
	switch f {
	case FormatYAML:
		return yaml.Marshal(recs)
	case FormatTOML:
		return toml.Marshal(tomlDoc{Tags: recs})
	default:
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func (f Format) decode(data []byte) (tag.Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tag.Tree{}, nil
	}

	var raw []map[string]any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		var doc tomlRaw
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		raw = doc.Tags
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	t := make(tag.Tree, 0, len(raw))
	for i, m := range raw {
		tg, err := fromRaw(m, fmt.Sprintf("tags[%d]", i))
		if err != nil {
			return nil, err
		}
		t = append(t, tg)
	}
	return t, nil
}
