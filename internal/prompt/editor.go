// editor.go runs an external editor on a temporary file.
//
// Separated from prompt.go because it shells out rather than drawing on the
// terminal. Comment filtering lives here too: editor buffers carry help lines
// starting with '#', and FilterComments strips them before parsing.

package prompt

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// editorCommand picks the editor: configured, $VISUAL, $EDITOR, then vi.
func editorCommand(configured string) string {
	for _, e := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(e) != "" {
			return e
		}
	}
	return "vi"
}

// runEditor is replaced in tests.
var runEditor = func(argv []string) error {
	c := exec.Command(argv[0], argv[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func editFile(editor, text string) (string, bool, error) {
	argv, err := shlex.Split(editor)
	if err != nil || len(argv) == 0 {
		return "", false, fmt.Errorf("invalid editor command %q", editor)
	}

	f, err := os.CreateTemp("", "opentag-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("creating edit file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", false, fmt.Errorf("writing edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("writing edit file: %w", err)
	}

	if err := runEditor(append(argv, name)); err != nil {
		// A failed or aborted editor leaves the value unchanged.
		return "", false, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", false, fmt.Errorf("reading edit file: %w", err)
	}
	return string(data), true, nil
}

// FilterComments drops lines whose trimmed form starts with '#' and blank
// lines, and joins the rest with newlines.
func FilterComments(text string) string {
	var keep []string
	for _, l := range strings.Split(text, "\n") {
		t := strings.TrimSpace(l)
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		keep = append(keep, strings.TrimRight(l, "\r"))
	}
	return strings.TrimSpace(strings.Join(keep, "\n"))
}
