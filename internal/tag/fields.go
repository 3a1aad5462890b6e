// fields.go defines the edit payload shared by the resolver, the mutation
// engine and the MCP server.
//
// Design: every field is a pointer. nil means "not supplied, leave alone";
// a pointer to the zero value means "supplied empty, clear it". Collapsing
// the two would make `update --path ""` indistinguishable from `update`.

package tag

// Fields is a set of explicit field assignments for add and update.
type Fields struct {
	Name    *string   // replaces Names[0]
	Aliases *[]string // replaces Names[1:]; an empty slice drops all aliases
	Path    *string
	About   *string
	App     *string
}

// Empty reports whether no field was supplied.
func (f Fields) Empty() bool {
	return f.Name == nil && f.Aliases == nil && f.Path == nil && f.About == nil && f.App == nil
}

// Apply writes every supplied field onto t. It does not validate names.
func (f Fields) Apply(t *Tag) {
	if f.Name != nil {
		if len(t.Names) == 0 {
			t.Names = []string{*f.Name}
		} else {
			t.Names[0] = *f.Name
		}
	}
	if f.Aliases != nil && len(t.Names) > 0 {
		names := make([]string, 0, 1+len(*f.Aliases))
		names = append(names, t.Names[0])
		t.Names = append(names, *f.Aliases...)
	}
	if f.Path != nil {
		t.Path = *f.Path
	}
	if f.About != nil {
		t.About = *f.About
	}
	if f.App != nil {
		t.App = *f.App
	}
}

// New builds a tag from a full name list and the optional fields.
func New(names []string, f Fields) Tag {
	t := Tag{Names: append([]string(nil), names...)}
	f.Name = nil
	f.Aliases = nil
	f.Apply(&t)
	return t
}

// Ptr returns a pointer to v, for building Fields literals.
func Ptr[T any](v T) *T { return &v }
