package diff

import (
	"strings"
	"testing"

	"github.com/jpl-au/opentag/internal/tag"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	got := Render(tag.Tag{
		Names: []string{"docs", "d"},
		Path:  "/d",
		About: "Docs\nmore",
	})
	assert.Equal(t, "names: docs, d\npath: /d\nabout:\n  Docs\n  more\n", got)

	assert.Equal(t, "names: g\n", Render(tag.Tag{Names: []string{"g"}}))
}

func TestTags(t *testing.T) {
	before := tag.Tag{Names: []string{"docs"}, Path: "/d", App: "code"}
	after := tag.Tag{Names: []string{"docs", "d"}, Path: "/d", App: "code"}

	r := Tags(before, after, "work docs")
	assert.True(t, r.Changed())
	assert.Equal(t, "work docs (before)", r.Old)
	assert.Contains(t, r.Diff, "- names: docs\n")
	assert.Contains(t, r.Diff, "+ names: docs, d\n")
	assert.Contains(t, r.Diff, "  path: /d\n")

	out := r.Format(false)
	assert.True(t, strings.HasPrefix(out, "--- work docs (before)\n+++ work docs (after)\n"))
}

func TestTags_Unchanged(t *testing.T) {
	tg := tag.Tag{Names: []string{"x"}, Path: "/x"}
	assert.False(t, Tags(tg, tg, "x").Changed())
}

func TestCompute_CollapsesLongContext(t *testing.T) {
	var lines []string
	for i := range 10 {
		lines = append(lines, strings.Repeat("x", i+1))
	}
	old := strings.Join(lines, "\n") + "\n"
	r := Compute(old, old+"new\n", "a", "b")
	assert.Contains(t, r.Diff, "  ...\n")
	assert.Contains(t, r.Diff, "+ new\n")
}

func TestColourise(t *testing.T) {
	out := Colourise("- old\n+ new\n  same\n")
	assert.Contains(t, out, "\033[31m- old\033[0m")
	assert.Contains(t, out, "\033[32m+ new\033[0m")
	assert.Contains(t, out, "  same\n")
}
