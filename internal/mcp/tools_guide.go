// tools_guide.go implements the MCP tool for reading the help pages.
//
// Clients use it to learn the addressing and naming rules before building
// arguments for the tag tools.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/opentag/guide"
	"github.com/jpl-au/opentag/internal/log"
	"github.com/mark3labs/mcp-go/mcp"
)

// getGuide handles ot_guide tool calls. An unknown topic is not a tool
// error: the reply lists what exists instead.
func (h *handlers) getGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	topic := getString(req, "topic", "")
	page, err := guide.Get(topic)
	log.Event("mcp:ot_guide", "read").Detail("topic", topic).Write(err)
	if err == nil {
		return mcp.NewToolResultText(page), nil
	}

	topics, err := guide.Topics()
	if err != nil {
		return nil, fmt.Errorf("listing guides: %w", err)
	}
	return jsonResult(map[string]any{
		"error":  fmt.Sprintf("no guide named %q", topic),
		"topics": topics,
	})
}
