// markdown.go renders about text for --info.
//
// About text is free-form, and users tend to write it as markdown. On a
// terminal it is rendered with glamour; piped output gets the raw text so
// scripts see exactly what is stored.

package action

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is a terminal.
// Tests can override this.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Markdown returns a renderer for the given glamour style ("auto", "dark",
// "light" or "notty"), or nil when stdout is not a terminal.
func Markdown(style string) func(string) (string, error) {
	if !isTerminal() {
		return nil
	}
	opt := glamour.WithStandardStyle(style)
	if style == "" || style == "auto" {
		opt = glamour.WithAutoStyle()
	}
	return func(md string) (string, error) {
		r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(80))
		if err != nil {
			return "", err
		}
		return r.Render(md)
	}
}
