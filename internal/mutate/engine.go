// Package mutate applies add, remove and update to the tag tree.
//
// The Engine holds the tree by pointer and addresses nodes by IndexPath.
// Every mutation re-derives the node it touches by indexed traversal, and
// nothing is ever spliced out of a sibling slice: remove tombstones in place.
// That keeps any IndexPath taken earlier in the invocation valid, including
// the ones held across the nested prompts of an interactive selection.
//
// Naming checks here are incremental (one level). The whole tree is checked
// once more by Session before anything is written back.
package mutate

import (
	"errors"

	"github.com/jpl-au/opentag/internal/prompt"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
)

// ErrNoSuchNode is returned for an IndexPath that does not address a live tag.
var ErrNoSuchNode = errors.New("no tag found")

// Engine mutates a tag tree, prompting through p in interactive mode.
type Engine struct {
	tree   *tag.Tree
	prompt prompt.Prompter
}

// New returns an engine over t. p may be nil when only non-interactive
// operations are used.
func New(t *tag.Tree, p prompt.Prompter) *Engine {
	return &Engine{tree: t, prompt: p}
}

// Add appends t to the children of parent (the root sequence for an empty
// IndexPath) and returns its IndexPath. It fails, leaving the tree
// unchanged, if any name is reserved or already used at that level.
func (e *Engine) Add(parent tag.IndexPath, t tag.Tag) (tag.IndexPath, error) {
	if !parent.IsRoot() && !e.live(parent) {
		return nil, ErrNoSuchNode
	}
	level := e.tree.Level(parent)
	if err := validate.CheckInsert(*level, t.Names); err != nil {
		return nil, err
	}
	*level = append(*level, t)
	return parent.Child(len(*level) - 1), nil
}

// Remove tombstones the tag at p. Its slot, and every sibling index, stay
// where they are.
func (e *Engine) Remove(p tag.IndexPath) error {
	if !e.live(p) {
		return ErrNoSuchNode
	}
	e.tree.At(p).Tombstone()
	return nil
}

// Update applies f to the tag at p and re-checks p's level. On a conflict
// the tag is restored and the error returned.
func (e *Engine) Update(p tag.IndexPath, f tag.Fields) error {
	if !e.live(p) {
		return ErrNoSuchNode
	}
	node := e.tree.At(p)
	before := node.Clone()
	f.Apply(node)
	if !node.Live() {
		*node = before
		return validate.ErrMissingName
	}
	if err := validate.CheckLevel(*e.tree.Level(p.Parent())); err != nil {
		*node = before
		return err
	}
	return nil
}

func (e *Engine) live(p tag.IndexPath) bool {
	n := e.tree.At(p)
	if n == nil || !n.Live() {
		return false
	}
	// Every ancestor must be live too; a tombstone hides its subtree.
	for i := 1; i < len(p); i++ {
		if !e.tree.At(p[:i]).Live() {
			return false
		}
	}
	return true
}

// Labels are the prompt texts of a recursive selection.
type Labels struct {
	Label        string
	Cancel       string
	NestedLabel  string
	NestedCancel string
}

func (l Labels) nested() Labels {
	return Labels{
		Label:        l.NestedLabel,
		Cancel:       l.NestedCancel,
		NestedLabel:  l.NestedLabel,
		NestedCancel: l.NestedCancel,
	}
}

// Select lets the user pick a live tag among the children of start, then
// optionally one of its children, and so on. Cancelling at a nested level
// selects the tag picked one level up; cancelling at the first level
// selects nothing (ok is false).
func (e *Engine) Select(start tag.IndexPath, l Labels) (tag.IndexPath, bool, error) {
	idx, tags := e.tree.Children(start)
	if len(tags) == 0 {
		return nil, false, nil
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name()
	}

	i, ok, err := e.prompt.Select(l.Label, names, l.Cancel)
	if err != nil || !ok {
		return nil, false, err
	}

	chosen := start.Child(idx[i])
	sub, ok, err := e.Select(chosen, l.nested())
	if err != nil {
		return nil, false, err
	}
	if ok {
		return sub, true, nil
	}
	return chosen, true, nil
}
