// errors.go defines sentinel errors for naming failures.
//
// Separated to centralise error definitions. Kinds that concern a specific
// name are returned as *NameError so the message can quote it while
// errors.Is() still matches the sentinel.

package validate

import (
	"errors"
	"fmt"
)

var (
	ErrNameInUse            = errors.New("name already in use")
	ErrReservedName         = errors.New("reserved name")
	ErrMissingName          = errors.New("there must be at least one name")
	ErrEmptyName            = errors.New("tag names cannot be empty")
	ErrNameWithSpaces       = errors.New("tag names cannot contain spaces")
	ErrNameWithComma        = errors.New("tag names cannot contain commas")
	ErrNameBeginsWithHyphen = errors.New("tag names cannot begin with hyphens")
)

// NameError reports a naming failure for a particular name.
type NameError struct {
	Err  error
	Name string
}

func (e *NameError) Error() string {
	switch e.Err {
	case ErrNameInUse:
		return fmt.Sprintf("a tag with name `%s` already exists", e.Name)
	case ErrReservedName:
		return fmt.Sprintf("`%s` cannot be used as a tag name", e.Name)
	}
	return e.Err.Error()
}

func (e *NameError) Unwrap() error { return e.Err }

func nameErr(err error, name string) error {
	return &NameError{Err: err, Name: name}
}
