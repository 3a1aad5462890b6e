// Package tag defines the tag tree: named nodes that optionally point at a
// path or URL, nested into an ordered forest.
//
// Nodes are addressed by IndexPath (sibling indices from the root) rather
// than by pointer. Removal tombstones a node in place instead of splicing it
// out of its parent, so an IndexPath taken before a removal stays valid for
// the rest of the invocation.
package tag

import (
	"slices"
	"strings"
)

// Tag is a single node in the tree.
type Tag struct {
	Names   []string // Names[0] is the primary name, the rest are aliases
	Path    string   // Path or URL to act on, empty for grouping nodes
	About   string   // Free text; the first line doubles as a summary
	App     string   // Default application used to open Path
	Subtags []Tag
}

// Tree is an ordered forest of root tags.
type Tree []Tag

// IndexPath locates a node by its sibling index at each level, starting at
// the root. The empty IndexPath is the synthetic root.
type IndexPath []int

// Child returns a new IndexPath one level below p.
func (p IndexPath) Child(i int) IndexPath {
	c := make(IndexPath, len(p), len(p)+1)
	copy(c, p)
	return append(c, i)
}

// Parent returns the IndexPath of the level that owns p. The parent of a
// root-level node is the empty IndexPath.
func (p IndexPath) Parent() IndexPath {
	if len(p) == 0 {
		return nil
	}
	return slices.Clone(p[:len(p)-1])
}

// IsRoot reports whether p addresses the synthetic root.
func (p IndexPath) IsRoot() bool { return len(p) == 0 }

// Live reports whether the tag has not been tombstoned.
func (t *Tag) Live() bool { return len(t.Names) > 0 }

// Name returns the primary name, or "" for a tombstone.
func (t *Tag) Name() string {
	if len(t.Names) == 0 {
		return ""
	}
	return t.Names[0]
}

// Aliases returns every name but the primary one.
func (t *Tag) Aliases() []string {
	if len(t.Names) < 2 {
		return nil
	}
	return t.Names[1:]
}

// HasName reports whether n is the primary name or an alias.
func (t *Tag) HasName(n string) bool {
	return slices.Contains(t.Names, n)
}

// Short returns the first line of About.
func (t *Tag) Short() string {
	short, _, _ := strings.Cut(t.About, "\n")
	return strings.TrimSpace(short)
}

// Tombstone clears the names, marking the tag as deleted.
func (t *Tag) Tombstone() { t.Names = nil }

// Clone returns a deep copy of the tag and its subtags.
func (t Tag) Clone() Tag {
	c := t
	c.Names = slices.Clone(t.Names)
	if t.Subtags != nil {
		c.Subtags = make([]Tag, len(t.Subtags))
		for i := range t.Subtags {
			c.Subtags[i] = t.Subtags[i].Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the tree.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	c := make(Tree, len(t))
	for i := range t {
		c[i] = t[i].Clone()
	}
	return c
}

// At returns the node at p by indexed traversal, or nil if p is the root or
// falls outside the tree.
func (t Tree) At(p IndexPath) *Tag {
	if len(p) == 0 {
		return nil
	}
	level := []Tag(t)
	var node *Tag
	for _, i := range p {
		if i < 0 || i >= len(level) {
			return nil
		}
		node = &level[i]
		level = node.Subtags
	}
	return node
}

// Level returns the sibling slice owned by the node at p, or the root slice
// for the empty IndexPath. Appending through the returned pointer adds a
// child. Returns nil if p does not address a node.
func (t *Tree) Level(p IndexPath) *[]Tag {
	if len(p) == 0 {
		return (*[]Tag)(t)
	}
	node := t.At(p)
	if node == nil {
		return nil
	}
	return &node.Subtags
}

// Children returns the live children at p together with their real sibling
// indices. Tombstones are skipped but still occupy their index.
func (t Tree) Children(p IndexPath) ([]int, []*Tag) {
	level := []Tag(t)
	if len(p) > 0 {
		node := t.At(p)
		if node == nil {
			return nil, nil
		}
		level = node.Subtags
	}
	var idx []int
	var tags []*Tag
	for i := range level {
		if level[i].Live() {
			idx = append(idx, i)
			tags = append(tags, &level[i])
		}
	}
	return idx, tags
}

// Address returns the primary names along p joined by spaces, which is the
// invocation that reaches the node.
func (t Tree) Address(p IndexPath) string {
	names := make([]string, 0, len(p))
	for n := 1; n <= len(p); n++ {
		node := t.At(p[:n])
		if node == nil {
			break
		}
		names = append(names, node.Name())
	}
	return strings.Join(names, " ")
}

// Prune returns a deep copy of the tree with every tombstone removed,
// recursively. IndexPaths into the original do not apply to the result.
func (t Tree) Prune() Tree {
	return prune(t)
}

func prune(level []Tag) []Tag {
	out := make([]Tag, 0, len(level))
	for _, tg := range level {
		if !tg.Live() {
			continue
		}
		c := tg
		c.Names = slices.Clone(tg.Names)
		c.Subtags = nil
		if len(tg.Subtags) > 0 {
			if sub := prune(tg.Subtags); len(sub) > 0 {
				c.Subtags = sub
			}
		}
		out = append(out, c)
	}
	return out
}
