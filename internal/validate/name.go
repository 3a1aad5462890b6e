// name.go implements the naming policy applied when names are parsed from
// user input (flags, prompts, editor sessions, MCP arguments).

package validate

import (
	"slices"
	"strings"
	"unicode"
)

// Reserved lists the words a tag can never be named. add, remove and update
// are the management commands injected at every level; help is claimed by
// the command-line grammar itself.
var Reserved = []string{"add", "remove", "update", "help"}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	return slices.Contains(Reserved, name)
}

// Name validates a single tag name.
func Name(name string) error {
	switch {
	case name == "":
		return ErrEmptyName
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return nameErr(ErrNameWithSpaces, name)
	case strings.ContainsRune(name, ','):
		// Names are edited and given as comma separated lists.
		return nameErr(ErrNameWithComma, name)
	case strings.HasPrefix(name, "-"):
		return nameErr(ErrNameBeginsWithHyphen, name)
	case IsReserved(name):
		return nameErr(ErrReservedName, name)
	}
	return nil
}

// Names parses a comma-separated list of names, primary first. Surrounding
// whitespace is trimmed and a single trailing comma is ignored. At least one
// name is required.
func Names(csv string) ([]string, error) {
	names, err := split(csv)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrMissingName
	}
	if dup := firstDuplicate(names); dup != "" {
		return nil, nameErr(ErrNameInUse, dup)
	}
	return names, nil
}

// Aliases parses a comma-separated alias list. An empty string yields an
// empty, non-nil list, meaning "no aliases".
func Aliases(csv string) ([]string, error) {
	names, err := split(csv)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	if dup := firstDuplicate(names); dup != "" {
		return nil, nameErr(ErrNameInUse, dup)
	}
	return names, nil
}

func split(csv string) ([]string, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	var names []string
	for _, p := range parts {
		n := strings.TrimSpace(p)
		if err := Name(n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
