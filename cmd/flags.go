/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines the per-level action flags and the management payload
// flags, and reads them back into resolver types.
//
// Separated from surface.go so that the command tree builder only decides
// which commands exist, not what each one accepts.
//
// Design: action flags are local to every level rather than persistent on
// the root. Traversal parses each level's flags as it descends, so the same
// flag may appear at several levels and the resolver merges them.

package cmd

import (
	"io"
	"os"

	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/jpl-au/opentag/internal/validate"
	"github.com/spf13/cobra"
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// errOut receives error messages. Defaults to os.Stderr.
var errOut io.Writer = os.Stderr

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// opAnnotation marks a reserved command with its operation.
const opAnnotation = "opentag/op"

// addActionFlags registers the action flags on a root or tag command.
func addActionFlags(c *cobra.Command) {
	f := c.Flags()
	f.BoolP("print", "p", false, "Print the path instead of opening it")
	f.BoolP("copy", "c", false, "Copy the path to the clipboard, then open it")
	f.BoolP("silent-copy", "C", false, "Copy the path to the clipboard without opening it")
	f.StringP("app", "A", "", "Open the path with this application")
	f.BoolP("info", "i", false, "Show the tag's details")
	f.BoolP("list", "l", false, "List the subtags")

	c.MarkFlagsMutuallyExclusive("app", "print")
	c.MarkFlagsMutuallyExclusive("app", "silent-copy")
	for _, other := range []string{"print", "copy", "silent-copy", "app", "info"} {
		c.MarkFlagsMutuallyExclusive("list", other)
	}
}

// actionFlags reads the action flags given at one level.
func actionFlags(c *cobra.Command) resolve.Flags {
	f := c.Flags()
	var r resolve.Flags
	r.Print, _ = f.GetBool("print")
	r.Copy, _ = f.GetBool("copy")
	r.SilentCopy, _ = f.GetBool("silent-copy")
	r.Info, _ = f.GetBool("info")
	r.List, _ = f.GetBool("list")
	r.App, _ = f.GetString("app")
	return r
}

// addPayloadFlags registers the flags of a management command. Management
// commands are leaves, so their short flags never meet the action flags of
// the level above.
func addPayloadFlags(c *cobra.Command, op project.Op) {
	f := c.Flags()
	if op == project.OpRemove {
		f.BoolP("no-prompt", "N", false, "Remove without asking for confirmation")
		return
	}
	if op == project.OpUpdate {
		f.StringP("name", "n", "", "New primary name")
	}
	f.StringP("path", "p", "", "Path or URL the tag opens")
	f.StringP("url", "u", "", "Same as --path")
	f.StringP("link", "l", "", "Same as --path")
	f.StringP("aliases", "A", "", "Comma separated aliases; empty clears them")
	f.String("alias", "", "Same as --aliases")
	f.String("about", "", "Description; the first line is the summary")
	f.String("app", "", "Application used to open the path")
	_ = f.MarkHidden("url")
	_ = f.MarkHidden("link")
	_ = f.MarkHidden("alias")
	c.MarkFlagsMutuallyExclusive("path", "url", "link")
	c.MarkFlagsMutuallyExclusive("aliases", "alias")
}

// payloadFrom reads a management command's flags. For add, the first
// argument is the new tag's name; the remaining arguments are returned.
func payloadFrom(c *cobra.Command, op project.Op, args []string) (resolve.Payload, []string, error) {
	var p resolve.Payload
	f := c.Flags()

	if op == project.OpRemove {
		p.NoPrompt, _ = f.GetBool("no-prompt")
		return p, args, nil
	}

	given := func(names ...string) *string {
		for _, n := range names {
			if f.Changed(n) {
				v, _ := f.GetString(n)
				return &v
			}
		}
		return nil
	}

	switch {
	case op == project.OpAdd && len(args) > 0:
		name := args[0]
		args = args[1:]
		if err := validate.Name(name); err != nil {
			return p, args, err
		}
		p.Fields.Name = &name
	case op == project.OpUpdate:
		if name := given("name"); name != nil {
			if err := validate.Name(*name); err != nil {
				return p, args, err
			}
			p.Fields.Name = name
		}
	}

	if a := given("aliases", "alias"); a != nil {
		aliases, err := validate.Aliases(*a)
		if err != nil {
			return p, args, err
		}
		p.Fields.Aliases = &aliases
	}
	p.Fields.Path = given("path", "url", "link")
	p.Fields.About = given("about")
	p.Fields.App = given("app")
	return p, args, nil
}
