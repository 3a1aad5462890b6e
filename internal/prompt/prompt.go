// Package prompt provides the interactive input used by the management
// commands: free text, selection from a list, confirmation and editing a
// value in the user's editor.
//
// The mutation engine only sees the Prompter interface, so tests drive it
// with scripted answers while the CLI uses the terminal implementation.
package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when interactive input is needed but stdin is
// not a terminal.
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// Prompter asks the user for input.
type Prompter interface {
	// Input reads a line of text. With allowEmpty false an empty answer is
	// refused and asked again.
	Input(label string, allowEmpty bool) (string, error)

	// Select lets the user pick one of items. ok is false when the user
	// chose the "none" entry labelled cancel instead.
	Select(label string, items []string, cancel string) (i int, ok bool, err error)

	// Confirm asks a yes/no question.
	Confirm(label string) (bool, error)

	// Edit opens text in an editor and returns the saved result. ok is false
	// when the editor exited without success, meaning "leave unchanged".
	Edit(text string) (result string, ok bool, err error)
}

// Terminal prompts on the controlling terminal.
type Terminal struct {
	Editor string // editor command; falls back to $VISUAL, $EDITOR, vi
}

var _ Prompter = (*Terminal)(nil)

// isTerminal reports whether stdin is interactive.
// Tests can override this.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (p *Terminal) check() error {
	if !isTerminal() {
		return ErrNotTerminal
	}
	return nil
}

// Input reads a line of text.
func (p *Terminal) Input(label string, allowEmpty bool) (string, error) {
	if err := p.check(); err != nil {
		return "", err
	}
	pr := promptui.Prompt{Label: label}
	if !allowEmpty {
		pr.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a value is required")
			}
			return nil
		}
	}
	s, err := pr.Run()
	if err != nil {
		return "", interrupted(err)
	}
	return strings.TrimSpace(s), nil
}

// Select shows items with a leading cancel entry and returns the index into
// items.
func (p *Terminal) Select(label string, items []string, cancel string) (int, bool, error) {
	if err := p.check(); err != nil {
		return 0, false, err
	}
	all := append([]string{cancel}, items...)
	sel := promptui.Select{
		Label: label,
		Items: all,
		Size:  10,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(all[index]), strings.ToLower(input))
		},
	}
	i, _, err := sel.Run()
	if err != nil {
		return 0, false, interrupted(err)
	}
	if i == 0 {
		return 0, false, nil
	}
	return i - 1, true, nil
}

// Confirm asks a yes/no question; anything but yes is no.
func (p *Terminal) Confirm(label string) (bool, error) {
	if err := p.check(); err != nil {
		return false, err
	}
	pr := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := pr.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, interrupted(err)
	}
	return true, nil
}

// Edit opens text in the configured editor.
func (p *Terminal) Edit(text string) (string, bool, error) {
	if err := p.check(); err != nil {
		return "", false, err
	}
	return editFile(editorCommand(p.Editor), text)
}

// ErrInterrupted is returned when the user aborts a prompt with Ctrl-C or
// end of input.
var ErrInterrupted = errors.New("interrupted")

func interrupted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrInterrupted
	}
	return fmt.Errorf("prompt: %w", err)
}
