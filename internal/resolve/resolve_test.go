package resolve

import (
	"testing"

	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func workTree() tag.Tree {
	return tag.Tree{
		{
			Names: []string{"work", "w"},
			Subtags: []tag.Tag{
				{Names: []string{"docs", "d"}, Path: "/d"},
				{Names: []string{"wiki"}, Path: "https://wiki"},
			},
		},
		{Names: []string{"home"}, Path: "~"},
	}
}

func seg(name string) Segment { return Segment{Name: name} }

func TestResolve_Tag(t *testing.T) {
	tree := workTree()

	t.Run("full path", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("docs")}})
		require.Equal(t, KindTag, got.Kind)
		assert.Equal(t, tag.IndexPath{0, 0}, got.Index)
		assert.Equal(t, "/d", tree.At(got.Index).Path)
		assert.NoError(t, got.Err())
	})

	t.Run("aliases", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("w"), seg("d")}})
		require.Equal(t, KindTag, got.Kind)
		assert.Equal(t, tag.IndexPath{0, 0}, got.Index)
	})

	t.Run("intermediate node", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work")}})
		require.Equal(t, KindTag, got.Kind)
		assert.Equal(t, tag.IndexPath{0}, got.Index)
	})

	t.Run("no segments", func(t *testing.T) {
		got := Resolve(tree, Invocation{Flags: Flags{List: true}})
		assert.Equal(t, KindRoot, got.Kind)
		assert.True(t, got.Flags.List)
	})
}

func TestResolve_MatchesSurface(t *testing.T) {
	// A hand-edited file may name a tag like a management word. No command
	// is offered for it, so it cannot be reached either.
	tree := tag.Tree{
		{Names: []string{"remove"}, Path: "/r"},
		{Names: []string{"old"}, Path: "/o", Subtags: []tag.Tag{{Names: []string{"x"}}}},
	}
	tree[1].Tombstone()

	got := Resolve(tree, Invocation{Segments: []Segment{seg("remove")}})
	assert.Equal(t, KindManagement, got.Kind)
	assert.Nil(t, got.Context)

	got = Resolve(tree, Invocation{Segments: []Segment{seg("old"), seg("x")}})
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Equal(t, "old", got.Segment)
}

func TestResolve_NotFound(t *testing.T) {
	tree := workTree()

	t.Run("bogus root", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("bogus")}})
		assert.Equal(t, KindNotFound, got.Kind)
		assert.Equal(t, "bogus", got.Segment)
		assert.ErrorIs(t, got.Err(), ErrNoTagFound)
	})

	t.Run("bogus child", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("bogus")}})
		assert.Equal(t, KindNotFound, got.Kind)
		assert.Nil(t, got.Index)
	})

	t.Run("child at wrong level", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("docs")}})
		assert.Equal(t, KindNotFound, got.Kind)
	})

	t.Run("tombstoned tag", func(t *testing.T) {
		tree := workTree()
		tree[0].Subtags[0].Tombstone()
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("docs")}})
		assert.Equal(t, KindNotFound, got.Kind)

		// The sibling after the tombstone keeps its index.
		got = Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("wiki")}})
		require.Equal(t, KindTag, got.Kind)
		assert.Equal(t, tag.IndexPath{0, 1}, got.Index)
	})
}

func TestResolve_Management(t *testing.T) {
	tree := workTree()

	t.Run("root", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("add")}})
		require.Equal(t, KindManagement, got.Kind)
		assert.Equal(t, project.OpAdd, got.Op)
		assert.True(t, got.Context.IsRoot())
		assert.True(t, got.Payload.Empty())
	})

	t.Run("nested with payload", func(t *testing.T) {
		p := Payload{Fields: tag.Fields{Path: tag.Ptr("/new")}}
		got := Resolve(tree, Invocation{Segments: []Segment{
			seg("work"), seg("docs"), {Name: "update", Payload: p},
		}})
		require.Equal(t, KindManagement, got.Kind)
		assert.Equal(t, project.OpUpdate, got.Op)
		assert.Equal(t, tag.IndexPath{0, 0}, got.Context)
		require.NotNil(t, got.Payload.Fields.Path)
		assert.Equal(t, "/new", *got.Payload.Fields.Path)
	})

	t.Run("reserved word before tag lookup", func(t *testing.T) {
		// A hand-edited tag named "remove" never shadows the operation.
		tree := workTree()
		tree = append(tree, tag.Tag{Names: []string{"remove"}, Path: "/oops"})
		got := Resolve(tree, Invocation{Segments: []Segment{seg("remove")}})
		assert.Equal(t, KindManagement, got.Kind)
		assert.Equal(t, project.OpRemove, got.Op)
	})

	t.Run("help is unexpected", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("help")}})
		assert.Equal(t, KindUnexpected, got.Kind)
		assert.ErrorIs(t, got.Err(), ErrUnexpectedCommand)
	})

	t.Run("segments after management word", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{seg("work"), seg("add"), seg("docs")}})
		assert.Equal(t, KindUnexpected, got.Kind)
		assert.Equal(t, "docs", got.Segment)
	})

	t.Run("flags accumulate up to management word", func(t *testing.T) {
		got := Resolve(tree, Invocation{
			Flags: Flags{Print: true},
			Segments: []Segment{
				{Name: "work", Flags: Flags{App: "code"}},
				seg("add"),
			},
		})
		require.Equal(t, KindManagement, got.Kind)
		assert.True(t, got.Flags.Print)
		assert.Equal(t, "code", got.Flags.App)
	})
}

func TestResolve_FlagMerging(t *testing.T) {
	tree := workTree()

	t.Run("booleans or across levels", func(t *testing.T) {
		// parent --copy child --print
		got := Resolve(tree, Invocation{Segments: []Segment{
			{Name: "work", Flags: Flags{Copy: true}},
			{Name: "docs", Flags: Flags{Print: true}},
		}})
		require.Equal(t, KindTag, got.Kind)
		assert.True(t, got.Flags.Copy)
		assert.True(t, got.Flags.Print)
		assert.False(t, got.Flags.SilentCopy)
	})

	t.Run("app set at parent only", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{
			{Name: "work", Flags: Flags{App: "foo"}},
			seg("docs"),
		}})
		assert.Equal(t, "foo", got.Flags.App)
	})

	t.Run("outer app wins", func(t *testing.T) {
		got := Resolve(tree, Invocation{
			Flags: Flags{App: "root"},
			Segments: []Segment{
				{Name: "work", Flags: Flags{App: "outer"}},
				{Name: "docs", Flags: Flags{App: "inner"}},
			},
		})
		assert.Equal(t, "root", got.Flags.App)
	})

	t.Run("flags kept on not found", func(t *testing.T) {
		got := Resolve(tree, Invocation{Segments: []Segment{
			{Name: "work", Flags: Flags{Info: true}},
			seg("bogus"),
		}})
		assert.Equal(t, KindNotFound, got.Kind)
		assert.True(t, got.Flags.Info)
	})
}

func TestAddress(t *testing.T) {
	got := Address(workTree(), []string{"w", "wiki"})
	require.Equal(t, KindTag, got.Kind)
	assert.Equal(t, tag.IndexPath{0, 1}, got.Index)
}
