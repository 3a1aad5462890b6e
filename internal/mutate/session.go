// session.go drives one management operation from target selection to
// commit.
//
// Design: a Session moves Idle -> AwaitingTarget -> AwaitingFields ->
// Validating and ends Committed or Rejected. The tree is snapshotted when
// the session starts; any failure, and any cancellation, restores the
// snapshot so the caller never sees a half-applied edit. Cancelling is a
// Rejected outcome without an error. Committed runs the whole-tree check
// and then the commit callback (normally the store's Save).

package mutate

import (
	"fmt"
	"strings"

	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/prompt"
	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
)

// State is the lifecycle state of a session.
type State int

const (
	StateIdle State = iota
	StateAwaitingTarget
	StateAwaitingFields
	StateValidating
	StateCommitted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTarget:
		return "awaiting target"
	case StateAwaitingFields:
		return "awaiting fields"
	case StateValidating:
		return "validating"
	case StateCommitted:
		return "committed"
	case StateRejected:
		return "rejected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Request is a management operation as resolved from an invocation.
type Request struct {
	Op      project.Op
	Context tag.IndexPath // node acted on; empty for the root sequence
	Payload resolve.Payload
}

// Outcome describes how a session ended.
type Outcome struct {
	State     State
	Op        project.Op
	Cancelled bool

	// Index is the tag added, removed or updated. Before and After hold its
	// contents around the edit (Before is zero for add, After for remove).
	Index  tag.IndexPath
	Before tag.Tag
	After  tag.Tag
	// Address is the invocation that reaches the tag, taken before removal.
	Address string
}

// Message is the one-line confirmation printed after a commit.
func (o Outcome) Message() string {
	switch {
	case o.Cancelled:
		return "Cancelled."
	case o.State != StateCommitted:
		return ""
	}
	switch o.Op {
	case project.OpAdd:
		return "Added tag."
	case project.OpRemove:
		return "Removed tag."
	}
	return "Updated tag."
}

// Session runs a single management operation against an Engine.
type Session struct {
	engine *Engine
	commit func(tag.Tree) error
	state  State

	// Confirm asks before removing unless the request says otherwise.
	Confirm bool
}

// NewSession returns an idle session. commit receives the tree once the edit
// passes validation; it may be nil.
func NewSession(e *Engine, commit func(tag.Tree) error) *Session {
	return &Session{engine: e, commit: commit, Confirm: true}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Run executes req. A session runs once.
func (s *Session) Run(req Request) (Outcome, error) {
	if s.state != StateIdle {
		return Outcome{State: s.state}, fmt.Errorf("session already %s", s.state)
	}
	snapshot := s.engine.tree.Clone()

	out, err := s.run(req)
	out.Op = req.Op
	if err == nil && !out.Cancelled {
		s.state = StateValidating
		err = validate.CheckTree(*s.engine.tree)
		if err == nil && s.commit != nil {
			err = s.commit(*s.engine.tree)
		}
	}
	if err != nil || out.Cancelled {
		*s.engine.tree = snapshot
		s.state = StateRejected
		out.State = StateRejected
		return out, err
	}
	s.state = StateCommitted
	out.State = StateCommitted
	return out, nil
}

func (s *Session) run(req Request) (Outcome, error) {
	switch req.Op {
	case project.OpAdd:
		return s.add(req)
	case project.OpRemove:
		return s.remove(req)
	case project.OpUpdate:
		return s.update(req)
	}
	return Outcome{}, fmt.Errorf("unknown operation %q", req.Op)
}

var (
	parentLabels = Labels{
		Label:        "Select the parent tag",
		Cancel:       "(no parent)",
		NestedLabel:  "Select a subtag of the parent",
		NestedCancel: "(use the parent)",
	}
	targetLabels = Labels{
		Label:        "Select the tag",
		Cancel:       "(cancel)",
		NestedLabel:  "Select a subtag",
		NestedCancel: "(select the parent)",
	}
)

// add places a new tag under req.Context. Without a name it prompts for
// every field not already supplied and then lets the user refine the
// parent, starting the selection at the context node.
func (s *Session) add(req Request) (Outcome, error) {
	s.state = StateAwaitingTarget
	parent := req.Context

	s.state = StateAwaitingFields
	f := req.Payload.Fields
	var names []string
	if f.Name != nil {
		names = []string{*f.Name}
		if f.Aliases != nil {
			names = append(names, *f.Aliases...)
		}
		if err := validate.Name(*f.Name); err != nil {
			return Outcome{}, err
		}
	} else {
		var err error
		if names, err = s.promptNames(f.Aliases); err != nil {
			return Outcome{}, err
		}
		for _, field := range []struct {
			dst   **string
			label string
		}{
			{&f.Path, "Path or URL (optional)"},
			{&f.About, "About (optional)"},
			{&f.App, "Application to open it with (optional)"},
		} {
			if *field.dst != nil {
				continue
			}
			v, err := s.engine.prompt.Input(field.label, true)
			if err != nil {
				return Outcome{}, err
			}
			*field.dst = &v
		}
		p, ok, err := s.engine.Select(req.Context, parentLabels)
		if err != nil {
			return Outcome{}, err
		}
		if ok {
			parent = p
		}
	}

	s.state = StateValidating
	t := tag.New(names, f)
	idx, err := s.engine.Add(parent, t)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Index: idx, After: t.Clone(), Address: s.engine.tree.Address(idx)}, nil
}

func (s *Session) promptNames(aliases *[]string) ([]string, error) {
	in, err := s.engine.prompt.Input("Names (comma separated, primary first)", false)
	if err != nil {
		return nil, err
	}
	names, err := validate.Names(in)
	if err != nil {
		return nil, err
	}
	if aliases != nil {
		names = append(names[:1], *aliases...)
	}
	return names, nil
}

// target resolves the node acted on by remove and update: the context node,
// or an interactive pick when the context is the root sequence.
func (s *Session) target(req Request) (tag.IndexPath, bool, error) {
	s.state = StateAwaitingTarget
	if !req.Context.IsRoot() {
		if !s.engine.live(req.Context) {
			return nil, false, ErrNoSuchNode
		}
		return req.Context, true, nil
	}
	return s.engine.Select(nil, targetLabels)
}

func (s *Session) remove(req Request) (Outcome, error) {
	p, ok, err := s.target(req)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{Cancelled: true}, nil
	}

	s.state = StateAwaitingFields
	before := s.engine.tree.At(p).Clone()
	out := Outcome{Index: p, Before: before, Address: s.engine.tree.Address(p)}
	if s.Confirm && !req.Payload.NoPrompt {
		yes, err := s.engine.prompt.Confirm(fmt.Sprintf("Remove `%s`", out.Address))
		if err != nil {
			return Outcome{}, err
		}
		if !yes {
			out.Cancelled = true
			return out, nil
		}
	}

	s.state = StateValidating
	if err := s.engine.Remove(p); err != nil {
		return Outcome{}, err
	}
	return out, nil
}

func (s *Session) update(req Request) (Outcome, error) {
	p, ok, err := s.target(req)
	if err != nil {
		return Outcome{}, err
	}
	if !ok {
		return Outcome{Cancelled: true}, nil
	}

	s.state = StateAwaitingFields
	before := s.engine.tree.At(p).Clone()
	f := req.Payload.Fields
	if f.Name != nil {
		if err := validate.Name(*f.Name); err != nil {
			return Outcome{}, err
		}
	}
	if f.Empty() {
		if f, err = s.editFields(before); err != nil {
			return Outcome{}, err
		}
	}

	s.state = StateValidating
	if err := s.engine.Update(p, f); err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Index:   p,
		Before:  before,
		After:   s.engine.tree.At(p).Clone(),
		Address: s.engine.tree.Address(p),
	}, nil
}

const editHelp = "# Lines starting with '#' will be ignored."

// editFields opens each field of t in the editor in turn. A field whose
// editor session fails is left unchanged; saving an empty buffer clears it.
func (s *Session) editFields(t tag.Tag) (tag.Fields, error) {
	var f tag.Fields

	current := strings.Join(t.Names, ", ")
	text, ok, err := s.engine.prompt.Edit(current + "\n" +
		"# Please enter a comma-separated list of names above, primary first.\n" + editHelp + "\n")
	if err != nil {
		return f, err
	}
	// An untouched buffer leaves the names alone, even ones a hand-edited
	// file gave a comma.
	if ok && prompt.FilterComments(text) != current {
		names, err := validate.Names(prompt.FilterComments(text))
		if err != nil {
			return f, err
		}
		f.Name = &names[0]
		aliases := names[1:]
		f.Aliases = &aliases
	}

	for _, field := range []struct {
		dst   **string
		value string
		what  string
	}{
		{&f.Path, t.Path, "the path or URL"},
		{&f.About, t.About, "the description"},
		{&f.App, t.App, "the application used to open the tag"},
	} {
		text, ok, err := s.engine.prompt.Edit(field.value + "\n" +
			"# Please enter " + field.what + " above. Leave it empty to clear it.\n" + editHelp + "\n")
		if err != nil {
			return f, err
		}
		if ok {
			v := prompt.FilterComments(text)
			*field.dst = &v
		}
	}
	return f, nil
}
