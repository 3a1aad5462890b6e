// Package validate enforces the naming rules that keep a tag tree servable.
//
// A tree is servable when every sibling level has unique names and no name
// collides with a reserved management word. Reserved words live in exactly
// one place, Reserved, which both the name parser and the tree checks read.
//
// # Checks
//
// Name, Names and Aliases run at input-parsing time, before a name can reach
// the mutation engine. CheckInsert guards a single add. CheckLevel re-checks
// one sibling sequence after an update. CheckTree walks the whole tree before
// anything is written back.
//
// # Error Handling
//
// Failures wrap one of the sentinel errors in errors.go. Use errors.Is():
//
//	if errors.Is(err, validate.ErrNameInUse) {
//	    // pick another name
//	}
package validate
