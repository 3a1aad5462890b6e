// Package resolve maps a parsed invocation back onto the tag tree.
//
// An invocation is a list of segments, one per level, each carrying the
// action flags given at that level. Resolve walks the segments and the tree
// in lock-step, matching names against the projected command surface so that
// resolution agrees with the commands the user was offered. A reserved word at any level ends the walk with a management
// target whose Context is the node the operation acts on; otherwise each
// segment must name a live tag at its level.
//
// Flags are merged across every level traversed, whatever the outcome:
// booleans are OR-ed and App keeps the first value set, so an outer level
// wins over an inner one.
package resolve

import (
	"errors"
	"fmt"

	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
)

var (
	// ErrNoTagFound is returned when a segment matches no tag.
	ErrNoTagFound = errors.New("no tag found")
	// ErrUnexpectedCommand is returned for a reserved word that is not a
	// management operation, or for segments after a management word.
	ErrUnexpectedCommand = errors.New("unexpected command")
)

// Flags are the action flags of one level, or the merged flags of a walk.
type Flags struct {
	Print      bool
	Copy       bool
	SilentCopy bool
	Info       bool
	List       bool
	App        string // empty when not given
}

// Merge folds inner into f: booleans are OR-ed, App is kept if already set.
func (f Flags) Merge(inner Flags) Flags {
	f.Print = f.Print || inner.Print
	f.Copy = f.Copy || inner.Copy
	f.SilentCopy = f.SilentCopy || inner.SilentCopy
	f.Info = f.Info || inner.Info
	f.List = f.List || inner.List
	if f.App == "" {
		f.App = inner.App
	}
	return f
}

// Payload is the edit payload given to a management word.
type Payload struct {
	Fields   tag.Fields
	NoPrompt bool // remove without confirmation
}

// Empty reports whether no field was given, which selects interactive mode.
func (p Payload) Empty() bool { return p.Fields.Empty() }

// Segment is one level of an invocation.
type Segment struct {
	Name    string
	Flags   Flags
	Payload Payload // only meaningful on a management word
}

// Invocation is a full parsed command line.
type Invocation struct {
	Flags    Flags // root-level flags
	Segments []Segment
}

// Kind classifies a resolved invocation.
type Kind int

const (
	KindRoot Kind = iota
	KindTag
	KindManagement
	KindNotFound
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindTag:
		return "tag"
	case KindManagement:
		return "management"
	case KindNotFound:
		return "not found"
	case KindUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Target is the result of resolving an invocation.
type Target struct {
	Kind  Kind
	Flags Flags

	// Index is the named tag for KindTag.
	Index tag.IndexPath

	// Context is the node a management operation acts on (empty for the
	// root sequence); Op and Payload describe the operation.
	Context tag.IndexPath
	Op      project.Op
	Payload Payload

	// Segment is the name that failed for KindNotFound and KindUnexpected.
	Segment string
}

// Err returns the error for unresolved targets, nil otherwise.
func (t Target) Err() error {
	switch t.Kind {
	case KindNotFound:
		return ErrNoTagFound
	case KindUnexpected:
		return fmt.Errorf("%w: %s", ErrUnexpectedCommand, t.Segment)
	}
	return nil
}

// Resolve walks inv against t.
func Resolve(t tag.Tree, inv Invocation) Target {
	target := Target{Kind: KindRoot, Flags: inv.Flags}
	var at tag.IndexPath
	units := project.Project(t).Units

	for n, seg := range inv.Segments {
		target.Flags = target.Flags.Merge(seg.Flags)

		if validate.IsReserved(seg.Name) {
			op, ok := project.IsOp(seg.Name)
			if !ok {
				return unresolved(target, KindUnexpected, seg.Name)
			}
			if n+1 < len(inv.Segments) {
				return unresolved(target, KindUnexpected, inv.Segments[n+1].Name)
			}
			target.Kind = KindManagement
			target.Context = at
			target.Op = op
			target.Payload = seg.Payload
			return target
		}

		u, ok := project.Find(units, seg.Name)
		if !ok {
			return unresolved(target, KindNotFound, seg.Name)
		}
		at, units = u.Index, u.Children
		target.Kind = KindTag
		target.Index = at
	}

	return target
}

func unresolved(t Target, k Kind, segment string) Target {
	t.Kind = k
	t.Segment = segment
	t.Index = nil
	return t
}

// Address resolves a list of plain names with no flags, for callers that
// address tags by name rather than by command line (the MCP server).
func Address(t tag.Tree, names []string) Target {
	inv := Invocation{Segments: make([]Segment, len(names))}
	for i, n := range names {
		inv.Segments[i] = Segment{Name: n}
	}
	return Resolve(t, inv)
}
