// Package guide holds the help pages served to MCP clients. Each page is an
// embedded markdown file whose first heading is its title.
package guide

import (
	"embed"
	"io/fs"
	"strings"
)

//go:embed *.md
var pages embed.FS

// overview is the page served when no topic is named.
const overview = "guide"

// Topic describes one help page.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Get returns the markdown of the named page, or the overview for "".
func Get(name string) (string, error) {
	if name == "" {
		name = overview
	}
	data, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Topics lists every page except the overview, in file name order.
func Topics() ([]Topic, error) {
	matches, err := fs.Glob(pages, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, m := range matches {
		name := strings.TrimSuffix(m, ".md")
		if name == overview {
			continue
		}
		body, err := Get(name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title(body)})
	}
	return topics, nil
}

func title(md string) string {
	first, _, _ := strings.Cut(md, "\n")
	return strings.TrimSpace(strings.TrimPrefix(first, "#"))
}
