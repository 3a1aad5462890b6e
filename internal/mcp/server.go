// Package mcp implements the Model Context Protocol server, exposing the tag
// tree to LLM clients. Tools list, show, add, remove and update tags by
// address (the space separated names a command line would use), read or
// change configuration, and serve the help pages.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/jpl-au/opentag/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// Serve starts the MCP server over stdio.
//
// Design: every tool call reloads the tags file, so edits made from the
// command line while the server runs are picked up. Mutations hold a lock
// across load, edit and save.
func Serve(st *store.Store) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	s := server.NewMCPServer(
		"opentag",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	h := &handlers{store: st}
	registerResources(s, h)
	registerTools(s, h)

	slog.Info("opentag MCP server ready", "version", Version, "transport", "stdio", "data", st.Path())

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP request handlers with access to the tag store.
type handlers struct {
	store *store.Store
	mu    sync.Mutex
}

// registerResources exposes the whole tree for context loading.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcp.NewResource(
			treeURI,
			"Tag tree",
			mcp.WithResourceDescription("Every tag with its names, path, about text, app and subtags"),
			mcp.WithMIMEType("application/json"),
		),
		h.readTree,
	)
}

// registerTools exposes tag operations as MCP tools.
func registerTools(s *server.MCPServer, h *handlers) {
	const addressHelp = "Space separated tag names from the top level, e.g. \"work docs\""

	s.AddTool(
		mcp.NewTool("ot_list",
			mcp.WithDescription("List the tags at a level of the tree"),
			mcp.WithString("address", mcp.Description(addressHelp+"; empty for the top level")),
		),
		h.list,
	)

	s.AddTool(
		mcp.NewTool("ot_show",
			mcp.WithDescription("Show one tag with all its fields"),
			mcp.WithString("address", mcp.Required(), mcp.Description(addressHelp)),
		),
		h.show,
	)

	s.AddTool(
		mcp.NewTool("ot_add",
			mcp.WithDescription("Add a tag under a parent tag, or at the top level"),
			mcp.WithString("parent", mcp.Description(addressHelp+"; empty for the top level")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Primary name")),
			mcp.WithString("aliases", mcp.Description("Comma separated aliases")),
			mcp.WithString("path", mcp.Description("Path or URL the tag opens")),
			mcp.WithString("about", mcp.Description("Description; the first line is the summary")),
			mcp.WithString("app", mcp.Description("Application used to open the path")),
		),
		h.add,
	)

	s.AddTool(
		mcp.NewTool("ot_remove",
			mcp.WithDescription("Remove a tag and everything under it"),
			mcp.WithString("address", mcp.Required(), mcp.Description(addressHelp)),
		),
		h.remove,
	)

	s.AddTool(
		mcp.NewTool("ot_update",
			mcp.WithDescription("Update fields of a tag. Omitted fields are left alone; an empty string clears a field"),
			mcp.WithString("address", mcp.Required(), mcp.Description(addressHelp)),
			mcp.WithString("name", mcp.Description("New primary name")),
			mcp.WithString("aliases", mcp.Description("Comma separated aliases, replacing the current ones")),
			mcp.WithString("path", mcp.Description("Path or URL")),
			mcp.WithString("about", mcp.Description("Description")),
			mcp.WithString("app", mcp.Description("Application used to open the path")),
		),
		h.update,
	)

	s.AddTool(
		mcp.NewTool("ot_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (data.path, editor, remove.confirm, info.style) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("ot_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key (data.path, editor, remove.confirm, info.style)")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)

	s.AddTool(
		mcp.NewTool("ot_log",
			mcp.WithDescription("Show recent audit log entries for this tags file"),
			mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20)")),
		),
		h.recentLog,
	)

	s.AddTool(
		mcp.NewTool("ot_guide",
			mcp.WithDescription("Read the opentag help pages on addressing, editing and configuration"),
			mcp.WithString("topic", mcp.Description("Topic name (addressing, editing, config) or empty for the overview")),
		),
		h.getGuide,
	)
}
