package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jpl-au/opentag/internal/store"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *handlers {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"names": ["work", "w"], "subtags": [
    {"names": ["docs"], "path": "/d", "about": "Docs\nlong"}
  ]},
  {"names": ["home"], "path": "~"}
]`), 0644))
	st, err := store.Open(path)
	require.NoError(t, err)
	return &handlers{store: st}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func load(t *testing.T, h *handlers) tag.Tree {
	t.Helper()
	tree, err := h.store.Load()
	require.NoError(t, err)
	return tree
}

func TestList(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	res, err := h.list(ctx, call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	var items []listItem
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "work", items[0].Name)
	assert.Equal(t, []string{"w"}, items[0].Aliases)
	assert.Equal(t, 1, items[0].Subtags)

	res, err = h.list(ctx, call(map[string]any{"address": "w"}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "work docs", items[0].Address)
	assert.Equal(t, "Docs", items[0].Short)

	res, err = h.list(ctx, call(map[string]any{"address": "bogus"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "no tag found", text(t, res))
}

func TestShow(t *testing.T) {
	h := setup(t)

	res, err := h.show(context.Background(), call(map[string]any{"address": "work docs"}))
	require.NoError(t, err)
	var v tagView
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &v))
	assert.Equal(t, "/d", v.Path)
	assert.Equal(t, "Docs\nlong", v.About)

	res, err = h.show(context.Background(), call(map[string]any{"address": "work add"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.show(context.Background(), call(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestAdd(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	res, err := h.add(ctx, call(map[string]any{
		"parent":  "work",
		"name":    "wiki",
		"aliases": "wk",
		"path":    "https://wiki.example.com",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "added `work wiki`", text(t, res))

	tree := load(t, h)
	got := tree.At(tag.IndexPath{0, 1})
	require.NotNil(t, got)
	assert.Equal(t, []string{"wiki", "wk"}, got.Names)

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"in use", map[string]any{"name": "home"}, "a tag with name `home` already exists"},
		{"reserved", map[string]any{"name": "update"}, "`update` cannot be used as a tag name"},
		{"spaces", map[string]any{"name": "two words"}, "tag names cannot contain spaces"},
		{"comma", map[string]any{"name": "a,b"}, "tag names cannot contain commas"},
		{"bad parent", map[string]any{"parent": "nope", "name": "x"}, "no tag found"},
		{"missing name", map[string]any{}, "name is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.add(ctx, call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), tt.want)
		})
	}
	assert.Equal(t, tree, load(t, h), "rejected adds must not touch the file")
}

func TestRemove(t *testing.T) {
	h := setup(t)

	res, err := h.remove(context.Background(), call(map[string]any{"address": "work"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	tree := load(t, h)
	require.Len(t, tree, 1)
	assert.Equal(t, "home", tree[0].Name())
}

func TestUpdate(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	res, err := h.update(ctx, call(map[string]any{"address": "work docs", "path": "", "aliases": "d"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "- path: /d")

	got := load(t, h).At(tag.IndexPath{0, 0})
	assert.Equal(t, []string{"docs", "d"}, got.Names)
	assert.Equal(t, "", got.Path)
	assert.Equal(t, "Docs\nlong", got.About)

	res, err = h.update(ctx, call(map[string]any{"address": "home"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "no fields to update", text(t, res))

	res, err = h.update(ctx, call(map[string]any{"address": "home", "name": "work"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "already exists")
}

func TestReadTree(t *testing.T) {
	h := setup(t)
	var req mcp.ReadResourceRequest
	req.Params.URI = treeURI

	contents, err := h.readTree(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	tc := contents[0].(mcp.TextResourceContents)
	assert.Contains(t, tc.Text, `"docs"`)
	assert.Equal(t, "application/json", tc.MIMEType)
}

func TestGuide(t *testing.T) {
	h := setup(t)

	res, err := h.getGuide(context.Background(), call(map[string]any{"topic": "editing"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "# Editing tags")

	res, err = h.getGuide(context.Background(), call(map[string]any{"topic": "nope"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), `"addressing"`)
}
