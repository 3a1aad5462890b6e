// Package project derives the command surface from a tag tree.
//
// The surface mirrors the tree: one addressable unit per live tag, keyed by
// its primary name with its aliases as secondary keys, nested the same way
// the tags are. Every level, the synthetic root included, also carries the
// reserved management units. The command-line layer turns a Surface into
// real commands; nothing here depends on how that is done.
package project

import (
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
)

// Op is a management operation.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

// Ops lists the management operations in the order they are injected.
var Ops = []Op{OpAdd, OpRemove, OpUpdate}

// Usage text for each management unit.
var opShort = map[Op]string{
	OpAdd:    "Adds a new tag",
	OpRemove: "Removes an existing tag",
	OpUpdate: "Updates an existing tag",
}

var opLong = map[Op]string{
	OpAdd:    "Adds a new tag. If no name is provided, the command enters interactive mode.",
	OpRemove: "Removes an existing tag. At the top level, the tag to remove is chosen interactively.",
	OpUpdate: "Updates an existing tag. If no field is provided, each field is edited interactively.",
}

// Unit is one addressable name on the command surface.
type Unit struct {
	Name     string
	Aliases  []string
	Short    string
	Long     string
	Reserved bool // management unit rather than a mirrored tag
	Hidden   bool // left out of listings and help
	Op       Op   // set for reserved units

	// Index locates the mirrored tag; nil for reserved units.
	Index tag.IndexPath

	Children []Unit
}

// Surface is the projected root level.
type Surface struct {
	Units []Unit
}

// Project builds the command surface for t.
func Project(t tag.Tree) Surface {
	return Surface{Units: level(t, nil)}
}

func level(t tag.Tree, at tag.IndexPath) []Unit {
	units := Reserved()
	idx, tags := t.Children(at)
	for n, tg := range tags {
		// A tag named like a reserved word can only come from a hand-edited
		// file; the reserved unit already owns that name.
		if validate.IsReserved(tg.Name()) {
			continue
		}
		p := at.Child(idx[n])
		units = append(units, Unit{
			Name:     tg.Name(),
			Aliases:  tg.Aliases(),
			Short:    tg.Short(),
			Long:     tg.About,
			Index:    p,
			Children: level(t, p),
		})
	}
	return units
}

// Reserved returns the management units injected at every level.
func Reserved() []Unit {
	units := make([]Unit, 0, len(Ops))
	for _, op := range Ops {
		units = append(units, Unit{
			Name:     string(op),
			Short:    opShort[op],
			Long:     opLong[op],
			Reserved: true,
			Hidden:   true,
			Op:       op,
		})
	}
	return units
}

// Tags returns the mirrored (non-reserved) units of a level.
func Tags(units []Unit) []Unit {
	var out []Unit
	for _, u := range units {
		if !u.Reserved {
			out = append(out, u)
		}
	}
	return out
}

// Find returns the unit at a level matching name by primary name or alias.
// Reserved units are checked first.
func Find(units []Unit, name string) (Unit, bool) {
	for _, u := range units {
		if u.Reserved && u.Name == name {
			return u, true
		}
	}
	for _, u := range units {
		if u.Reserved {
			continue
		}
		if u.Name == name {
			return u, true
		}
		for _, a := range u.Aliases {
			if a == name {
				return u, true
			}
		}
	}
	return Unit{}, false
}

// IsOp reports whether name is a management operation.
func IsOp(name string) (Op, bool) {
	for _, op := range Ops {
		if string(op) == name {
			return op, true
		}
	}
	return "", false
}
