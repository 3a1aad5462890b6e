// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map.
//
// Design: extraction is permissive; a missing or mistyped optional parameter
// yields the default rather than an error. The one exception is getField,
// which must tell "absent" from "empty" because an empty string clears a tag
// field while an absent one leaves it alone.

package mcp

import (
	"encoding/json"
	"strings"

	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/mark3labs/mcp-go/mcp"
)

func args(req mcp.CallToolRequest) map[string]any {
	m, _ := req.Params.Arguments.(map[string]any)
	return m
}

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getField returns nil when the parameter is absent and a pointer to its
// value (possibly "") when present.
func getField(req mcp.CallToolRequest, name string) *string {
	if v, ok := args(req)[name].(string); ok {
		return &v
	}
	return nil
}

// getInt extracts an integer parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int {
	if v, ok := args(req)[name].(float64); ok {
		return int(v)
	}
	return def
}

// addressOf splits an address into tag names.
func addressOf(s string) []string {
	return strings.Fields(s)
}

// locate resolves an address to a live tag.
func locate(t tag.Tree, address string) (tag.IndexPath, error) {
	target := resolve.Address(t, addressOf(address))
	switch target.Kind {
	case resolve.KindTag:
		return target.Index, nil
	case resolve.KindRoot:
		return nil, nil
	case resolve.KindManagement:
		return nil, resolve.ErrNoTagFound
	}
	return nil, target.Err()
}

// jsonResult serialises v as indented JSON in a text result. Errors become
// MCP error results so the client always gets a readable response.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
