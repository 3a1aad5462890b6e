// tree.go implements the structural checks over sibling levels and the
// whole tree.
//
// Design: CheckTree checks an entire level before descending into any of its
// children, and visits children in order. The first conflict found is
// therefore deterministic, which keeps error messages reproducible.

package validate

import "github.com/jpl-au/opentag/internal/tag"

// CheckLevel returns the first name in a sibling sequence that is reserved or
// already used by an earlier sibling. Tombstones carry no names and never
// conflict.
func CheckLevel(level []tag.Tag) error {
	seen := make(map[string]bool)
	for i := range level {
		for _, n := range level[i].Names {
			if IsReserved(n) {
				return nameErr(ErrReservedName, n)
			}
			if seen[n] {
				return nameErr(ErrNameInUse, n)
			}
			seen[n] = true
		}
	}
	return nil
}

// CheckTree applies CheckLevel to the root sequence and then, in pre-order,
// to the subtags of every node.
func CheckTree(t tag.Tree) error {
	return checkTree(t)
}

func checkTree(level []tag.Tag) error {
	if err := CheckLevel(level); err != nil {
		return err
	}
	for i := range level {
		if err := checkTree(level[i].Subtags); err != nil {
			return err
		}
	}
	return nil
}

// CheckInsert reports whether names could be added as a new sibling of
// level: none may be reserved, repeated, or already used by a live sibling.
func CheckInsert(level []tag.Tag, names []string) error {
	if len(names) == 0 {
		return ErrMissingName
	}
	taken := make(map[string]bool)
	for i := range level {
		for _, n := range level[i].Names {
			taken[n] = true
		}
	}
	for _, n := range names {
		if IsReserved(n) {
			return nameErr(ErrReservedName, n)
		}
		if taken[n] {
			return nameErr(ErrNameInUse, n)
		}
		taken[n] = true
	}
	return nil
}
