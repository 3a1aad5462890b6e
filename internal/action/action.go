// Package action runs what a resolved tag invocation asks for: list its
// subtags, show its details, print, copy or open its path.
//
// The system facilities (clipboard, opening a path with the desktop or a
// named application) sit behind small interfaces so the command layer and
// tests can substitute them.
package action

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/mitchellh/go-homedir"
	"github.com/skratchdot/open-golang/open"
)

// ErrTagWithNoPath is returned when a path action hits a grouping tag.
var ErrTagWithNoPath = errors.New("tag has no path or URL")

// Clipboard receives copied paths.
type Clipboard interface {
	WriteAll(text string) error
}

// Opener opens a path or URL, with app when it is not empty.
type Opener interface {
	Open(target, app string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type systemOpener struct{}

func (systemOpener) Open(target, app string) error {
	if app == "" {
		return open.Run(target)
	}
	return open.RunWith(target, app)
}

// Runner performs actions, writing any output to Out.
type Runner struct {
	Out       io.Writer
	Clipboard Clipboard
	Opener    Opener

	// Markdown renders about text for --info; nil prints it verbatim.
	Markdown func(string) (string, error)
}

// New returns a runner using the system clipboard and opener.
func New(out io.Writer) *Runner {
	return &Runner{Out: out, Clipboard: systemClipboard{}, Opener: systemOpener{}}
}

// Result records what was done, for the audit log.
type Result struct {
	Action string // e.g. "open", "print", "copy+print", "list"
	Target string // the path acted on, after ~ expansion for open
}

// Run acts on node according to f. A --list or --info request takes
// precedence over path actions. Copying happens before printing or opening;
// --print replaces opening and --silent-copy suppresses it.
func (r *Runner) Run(node *tag.Tag, f resolve.Flags) (Result, error) {
	if f.List {
		_, children := childrenOf(node)
		r.List(children)
		return Result{Action: "list"}, nil
	}
	if f.Info {
		return Result{Action: "info", Target: node.Path}, r.Info(node)
	}
	if node.Path == "" {
		return Result{}, ErrTagWithNoPath
	}

	var done []string
	res := Result{Target: node.Path}
	if f.Copy || f.SilentCopy {
		if err := r.Clipboard.WriteAll(node.Path); err != nil {
			return res, fmt.Errorf("unable to copy `%s`: %w", node.Path, err)
		}
		done = append(done, "copy")
	}

	switch {
	case f.Print:
		fmt.Fprintln(r.Out, node.Path)
		done = append(done, "print")
	case !f.SilentCopy:
		target := expand(node.Path)
		app := f.App
		if app == "" {
			app = node.App
		}
		res.Target = target
		if err := r.Opener.Open(target, app); err != nil {
			return res, fmt.Errorf("unable to open `%s`: %w", target, err)
		}
		done = append(done, "open")
	}

	res.Action = strings.Join(done, "+")
	return res, nil
}

func childrenOf(node *tag.Tag) ([]int, []*tag.Tag) {
	return tag.Tree(node.Subtags).Children(nil)
}

// expand resolves a leading ~ to the home directory. Anything it cannot
// expand (~user) is used as is.
func expand(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	e, err := homedir.Expand(p)
	if err != nil {
		return p
	}
	return e
}

var heading = lipgloss.NewStyle().Bold(true).Underline(true)

// List prints tags under a TAGS heading, one per line with their aliases
// and short description, or "No tags!" when there are none.
func (r *Runner) List(tags []*tag.Tag) {
	if len(tags) == 0 {
		fmt.Fprintln(r.Out, "No tags!")
		return
	}

	labels := make([]string, len(tags))
	width := 0
	for i, t := range tags {
		labels[i] = t.Name()
		if a := t.Aliases(); len(a) > 0 {
			labels[i] += " (" + strings.Join(a, ", ") + ")"
		}
		width = max(width, len(labels[i]))
	}

	fmt.Fprintln(r.Out, heading.Render("TAGS"))
	for i, t := range tags {
		if short := t.Short(); short != "" {
			fmt.Fprintf(r.Out, "  %-*s  %s\n", width, labels[i], short)
		} else {
			fmt.Fprintf(r.Out, "  %s\n", labels[i])
		}
	}
}

// Info prints every field of node.
func (r *Runner) Info(node *tag.Tag) error {
	fmt.Fprintln(r.Out, heading.Render(node.Name()))
	if a := node.Aliases(); len(a) > 0 {
		fmt.Fprintf(r.Out, "aliases: %s\n", strings.Join(a, ", "))
	}
	if node.Path != "" {
		fmt.Fprintf(r.Out, "path:    %s\n", node.Path)
	}
	if node.App != "" {
		fmt.Fprintf(r.Out, "app:     %s\n", node.App)
	}
	if _, sub := childrenOf(node); len(sub) > 0 {
		names := make([]string, len(sub))
		for i, s := range sub {
			names[i] = s.Name()
		}
		fmt.Fprintf(r.Out, "subtags: %s\n", strings.Join(names, ", "))
	}
	if node.About == "" {
		return nil
	}

	about := node.About
	if r.Markdown != nil {
		rendered, err := r.Markdown(about)
		if err != nil {
			return fmt.Errorf("rendering about: %w", err)
		}
		about = rendered
	}
	fmt.Fprintln(r.Out)
	fmt.Fprintln(r.Out, strings.TrimRight(about, "\n"))
	return nil
}
