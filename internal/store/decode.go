// decode.go normalises a generically decoded tag into tag.Tag.
//
// Older data files used other field names; they are still accepted on read:
//
//	names: name
//	path:  url, link
//	app:   default_app, default_application
//
// Names may be a single string or a list. An empty list is rejected, since a
// tag without names would be a tombstone on disk.

package store

import (
	"errors"
	"fmt"

	"github.com/jpl-au/opentag/internal/tag"
)

var (
	// ErrNoNames is returned for a tag with a missing or empty names field.
	ErrNoNames = errors.New("expected at least one name")
	// ErrDuplicateField is returned when a field appears under two names.
	ErrDuplicateField = errors.New("duplicate field")
)

var fieldAliases = map[string][]string{
	"names":   {"names", "name"},
	"path":    {"path", "url", "link"},
	"about":   {"about"},
	"app":     {"app", "default_app", "default_application"},
	"subtags": {"subtags"},
}

// lookup returns the value stored under field or one of its aliases.
func lookup(m map[string]any, field string) (any, bool, error) {
	var (
		val   any
		found string
	)
	for _, key := range fieldAliases[field] {
		v, ok := m[key]
		if !ok {
			continue
		}
		if found != "" {
			return nil, false, fmt.Errorf("%w: %q and %q", ErrDuplicateField, found, key)
		}
		val, found = v, key
	}
	return val, found != "", nil
}

func fromRaw(m map[string]any, at string) (tag.Tag, error) {
	var t tag.Tag

	v, ok, err := lookup(m, "names")
	if err != nil {
		return t, fmt.Errorf("%s: %w", at, err)
	}
	if !ok {
		return t, fmt.Errorf("%s: missing field `names`", at)
	}
	if t.Names, err = oneOrMore(v); err != nil {
		return t, fmt.Errorf("%s.names: %w", at, err)
	}

	for _, f := range []struct {
		field string
		dst   *string
	}{
		{"path", &t.Path},
		{"about", &t.About},
		{"app", &t.App},
	} {
		v, ok, err := lookup(m, f.field)
		if err != nil {
			return t, fmt.Errorf("%s: %w", at, err)
		}
		if !ok || v == nil {
			continue
		}
		s, isStr := v.(string)
		if !isStr {
			return t, fmt.Errorf("%s.%s: expected a string, found %T", at, f.field, v)
		}
		*f.dst = s
	}

	v, ok, err = lookup(m, "subtags")
	if err != nil {
		return t, fmt.Errorf("%s: %w", at, err)
	}
	if ok && v != nil {
		list, isList := v.([]any)
		if !isList {
			return t, fmt.Errorf("%s.subtags: expected a list, found %T", at, v)
		}
		for i, item := range list {
			sub, isMap := item.(map[string]any)
			if !isMap {
				return t, fmt.Errorf("%s.subtags[%d]: expected a tag, found %T", at, i, item)
			}
			child, err := fromRaw(sub, fmt.Sprintf("%s.subtags[%d]", at, i))
			if err != nil {
				return t, err
			}
			t.Subtags = append(t.Subtags, child)
		}
	}

	return t, nil
}

// oneOrMore accepts a string or a non-empty list of strings.
func oneOrMore(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []any:
		if len(val) == 0 {
			return nil, fmt.Errorf("%w, found empty list", ErrNoNames)
		}
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected a string, found %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, ErrNoNames
	default:
		return nil, fmt.Errorf("expected a string or a list of strings, found %T", v)
	}
}
