package project

import (
	"testing"

	"github.com/jpl-au/opentag/internal/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree() tag.Tree {
	return tag.Tree{
		{Names: []string{"work", "w"}, About: "Work\nlong", Subtags: []tag.Tag{
			{Names: nil},
			{Names: []string{"docs"}, Path: "/d"},
		}},
		{Names: []string{"update"}}, // hand-edited file
		{Names: []string{"home"}},
	}
}

func names(units []Unit) []string {
	var out []string
	for _, u := range units {
		out = append(out, u.Name)
	}
	return out
}

func TestProject(t *testing.T) {
	s := Project(tree())

	assert.Equal(t, []string{"add", "remove", "update", "work", "home"}, names(s.Units))

	work, ok := Find(s.Units, "w")
	require.True(t, ok)
	assert.Equal(t, "work", work.Name)
	assert.Equal(t, []string{"w"}, work.Aliases)
	assert.Equal(t, "Work", work.Short)
	assert.Equal(t, "Work\nlong", work.Long)
	assert.Equal(t, tag.IndexPath{0}, work.Index)
	assert.False(t, work.Reserved)

	assert.Equal(t, []string{"add", "remove", "update", "docs"}, names(work.Children))
	docs, ok := Find(work.Children, "docs")
	require.True(t, ok)
	assert.Equal(t, tag.IndexPath{0, 1}, docs.Index, "tombstones keep their index")

	home, _ := Find(s.Units, "home")
	assert.Equal(t, tag.IndexPath{2}, home.Index)
	assert.Equal(t, []string{"add", "remove", "update"}, names(home.Children))
}

func TestReserved(t *testing.T) {
	units := Reserved()
	require.Len(t, units, len(Ops))
	for i, u := range units {
		assert.Equal(t, Ops[i], u.Op)
		assert.True(t, u.Reserved)
		assert.True(t, u.Hidden)
		assert.Nil(t, u.Index)
		assert.NotEmpty(t, u.Short)
	}
}

func TestFindPrefersReserved(t *testing.T) {
	units := append(Reserved(), Unit{Name: "x", Aliases: []string{"remove"}})
	u, ok := Find(units, "remove")
	require.True(t, ok)
	assert.True(t, u.Reserved)

	_, ok = Find(units, "nope")
	assert.False(t, ok)
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"work", "home"}, names(Tags(Project(tree()).Units)))
	assert.Nil(t, Tags(Reserved()))
}

func TestIsOp(t *testing.T) {
	op, ok := IsOp("update")
	assert.True(t, ok)
	assert.Equal(t, OpUpdate, op)

	_, ok = IsOp("help")
	assert.False(t, ok)
}
