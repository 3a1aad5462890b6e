// resources.go implements the MCP resource that exposes the whole tree.
//
// Resources give clients read-only context without a tool call. The tree is
// served in the canonical JSON shape of the tags file, with removed tags
// already dropped.

package mcp

import (
	"context"
	"encoding/json"

	"github.com/jpl-au/opentag/internal/tag"
	"github.com/mark3labs/mcp-go/mcp"
)

const treeURI = "opentag://tags"

// node mirrors the canonical on-disk record.
type node struct {
	Names   []string `json:"names"`
	Path    string   `json:"path,omitempty"`
	About   string   `json:"about,omitempty"`
	App     string   `json:"app,omitempty"`
	Subtags []node   `json:"subtags,omitempty"`
}

func nodes(level []tag.Tag) []node {
	out := make([]node, 0, len(level))
	for _, t := range level {
		out = append(out, node{
			Names:   t.Names,
			Path:    t.Path,
			About:   t.About,
			App:     t.App,
			Subtags: nodes(t.Subtags),
		})
	}
	return out
}

// readTree handles opentag://tags resource requests.
func (h *handlers) readTree(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) { //nolint:revive // ctx for future use
	t, err := h.store.Load()
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(nodes(t.Prune()), "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
