/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// dispatch.go reads the parsed command chain back into an invocation,
// resolves it against the tags, and runs the result.
//
// Separated from surface.go so that all behaviour lives behind the resolver:
// cobra only supplies the chain of commands and the leftover arguments.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/jpl-au/opentag/internal/action"
	"github.com/jpl-au/opentag/internal/config"
	"github.com/jpl-au/opentag/internal/diff"
	"github.com/jpl-au/opentag/internal/log"
	"github.com/jpl-au/opentag/internal/mcp"
	"github.com/jpl-au/opentag/internal/mutate"
	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/prompt"
	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrMCPWithTag is returned when --mcp is combined with a tag.
var ErrMCPWithTag = errors.New("--mcp cannot be combined with a tag")

// Overridden in tests.
var (
	newPrompter = func(cfg *config.Config) prompt.Prompter {
		return &prompt.Terminal{Editor: cfg.Editor}
	}
	clipboard action.Clipboard
	opener    action.Opener
	serve     = mcp.Serve
	colour    = func() bool {
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

// run is the RunE of every command in the tree.
func (a *app) run(cmd *cobra.Command, args []string) error {
	if on, _ := cmd.Root().Flags().GetBool("mcp"); on {
		if cmd.HasParent() || len(args) > 0 {
			return ErrMCPWithTag
		}
		return serve(a.store)
	}

	inv, err := invocationFrom(cmd, args)
	if err != nil {
		return err
	}

	target := resolve.Resolve(a.tree, inv)
	switch target.Kind {
	case resolve.KindRoot:
		if !target.Flags.List {
			return cmd.Help()
		}
		_, tags := a.tree.Children(nil)
		a.runner().List(tags)
		log.Event("cli", "list").Detail("count", len(tags)).Write(nil)
		return nil
	case resolve.KindTag:
		return a.act(target)
	case resolve.KindManagement:
		return a.manage(target)
	}

	err = target.Err()
	log.Event("cli", "resolve").Tag(strings.Join(names(inv), " ")).Write(err)
	return err
}

// invocationFrom walks from the root to cmd, reading each level's flags.
// Arguments cobra could not match become further segments.
func invocationFrom(cmd *cobra.Command, args []string) (resolve.Invocation, error) {
	var chain []*cobra.Command
	for c := cmd; c.HasParent(); c = c.Parent() {
		chain = append(chain, c)
	}
	slices.Reverse(chain)

	root := cmd.Root()
	// cobra only checks flag groups on the command it runs.
	for _, c := range append([]*cobra.Command{root}, chain...) {
		if err := c.ValidateFlagGroups(); err != nil {
			return resolve.Invocation{}, err
		}
	}

	inv := resolve.Invocation{Flags: actionFlags(root)}
	for _, c := range chain {
		seg := resolve.Segment{Name: c.Name()}
		if op, ok := c.Annotations[opAnnotation]; ok {
			p, rest, err := payloadFrom(c, project.Op(op), args)
			if err != nil {
				return inv, err
			}
			seg.Payload = p
			args = rest
		} else {
			seg.Flags = actionFlags(c)
		}
		inv.Segments = append(inv.Segments, seg)
	}
	for _, arg := range args {
		inv.Segments = append(inv.Segments, resolve.Segment{Name: arg})
	}
	return inv, nil
}

func names(inv resolve.Invocation) []string {
	out := make([]string, len(inv.Segments))
	for i, s := range inv.Segments {
		out[i] = s.Name
	}
	return out
}

func (a *app) runner() *action.Runner {
	r := action.New(out)
	r.Markdown = action.Markdown(a.cfg.InfoStyle())
	if clipboard != nil {
		r.Clipboard = clipboard
	}
	if opener != nil {
		r.Opener = opener
	}
	return r
}

// act runs the action flags against a named tag.
func (a *app) act(target resolve.Target) error {
	node := a.tree.At(target.Index)
	res, err := a.runner().Run(node, target.Flags)

	name := res.Action
	if name == "" {
		name = "act"
	}
	log.Event("cli", name).Tag(a.tree.Address(target.Index)).Target(res.Target).Write(err)
	return err
}

// manage runs a management operation and reports the result.
func (a *app) manage(target resolve.Target) error {
	e := mutate.New(&a.tree, newPrompter(a.cfg))
	s := mutate.NewSession(e, a.store.Save)
	s.Confirm = a.cfg.RemoveConfirm()

	o, err := s.Run(mutate.Request{Op: target.Op, Context: target.Context, Payload: target.Payload})

	ev := log.Event("cli", string(target.Op)).Tag(o.Address).Detail("state", o.State.String())
	if o.Cancelled {
		ev.Detail("cancelled", true)
	}
	ev.Write(err)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, o.Message())
	if o.Op == project.OpUpdate && !o.Cancelled {
		if d := diff.Tags(o.Before, o.After, o.Address); d.Changed() {
			fmt.Fprint(out, d.Format(colour()))
		}
	}
	return nil
}
