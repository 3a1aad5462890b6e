// tools_tags.go implements the MCP tools that read and edit the tag tree.
//
// Separated from server.go, which only declares the tools. Every mutation
// runs through a mutate.Session exactly as the command line does, so the
// same naming checks apply and a rejected edit never reaches the file.
//
// Design: MCP calls are never interactive. add requires a name, update
// requires at least one field, and remove never asks for confirmation.

package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/jpl-au/opentag/internal/diff"
	"github.com/jpl-au/opentag/internal/log"
	"github.com/jpl-au/opentag/internal/mutate"
	"github.com/jpl-au/opentag/internal/project"
	"github.com/jpl-au/opentag/internal/resolve"
	"github.com/jpl-au/opentag/internal/tag"
	"github.com/jpl-au/opentag/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// ErrNoFields is returned by ot_update when no field is supplied.
var ErrNoFields = errors.New("no fields to update")

// listItem is one row of ot_list output.
type listItem struct {
	Address string   `json:"address"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Short   string   `json:"short,omitempty"`
	Subtags int      `json:"subtags,omitempty"`
}

// tagView is the ot_show output.
type tagView struct {
	Address string   `json:"address"`
	Names   []string `json:"names"`
	Path    string   `json:"path,omitempty"`
	About   string   `json:"about,omitempty"`
	App     string   `json:"app,omitempty"`
	Subtags []string `json:"subtags,omitempty"`
}

// list handles ot_list tool calls.
func (h *handlers) list(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	address := getString(req, "address", "")

	t, err := h.store.Load()
	var at tag.IndexPath
	if err == nil {
		at, err = locate(t, address)
	}
	if err != nil {
		log.Event("mcp:ot_list", "list").Tag(address).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	idx, tags := t.Children(at)
	items := make([]listItem, 0, len(tags))
	for n, tg := range tags {
		_, sub := t.Children(at.Child(idx[n]))
		items = append(items, listItem{
			Address: t.Address(at.Child(idx[n])),
			Name:    tg.Name(),
			Aliases: tg.Aliases(),
			Short:   tg.Short(),
			Subtags: len(sub),
		})
	}

	log.Event("mcp:ot_list", "list").Tag(address).Detail("count", len(items)).Write(nil)
	return jsonResult(items)
}

// show handles ot_show tool calls.
func (h *handlers) show(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	address, err := req.RequireString("address")
	if err != nil || len(addressOf(address)) == 0 {
		return mcp.NewToolResultError("address is required"), nil //nolint:nilerr
	}

	t, err := h.store.Load()
	var at tag.IndexPath
	if err == nil {
		at, err = locate(t, address)
	}
	if err != nil {
		log.Event("mcp:ot_show", "show").Tag(address).Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	node := t.At(at)
	v := tagView{
		Address: t.Address(at),
		Names:   node.Names,
		Path:    node.Path,
		About:   node.About,
		App:     node.App,
	}
	_, sub := t.Children(at)
	for _, s := range sub {
		v.Subtags = append(v.Subtags, s.Name())
	}

	log.Event("mcp:ot_show", "show").Tag(v.Address).Target(node.Path).Write(nil)
	return jsonResult(v)
}

// add handles ot_add tool calls.
func (h *handlers) add(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	parent := getString(req, "parent", "")
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
	}

	out, err := h.apply(func(t tag.Tree) (mutate.Request, error) {
		at, err := locate(t, parent)
		if err != nil {
			return mutate.Request{}, err
		}
		f, err := fields(req)
		if err != nil {
			return mutate.Request{}, err
		}
		f.Name = &name
		return mutate.Request{Op: project.OpAdd, Context: at, Payload: resolve.Payload{Fields: f}}, nil
	})

	log.Event("mcp:ot_add", "add").Tag(out.Address).Target(out.After.Path).Detail("name", name).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added `%s`", out.Address)), nil
}

// remove handles ot_remove tool calls.
func (h *handlers) remove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	address, err := req.RequireString("address")
	if err != nil || len(addressOf(address)) == 0 {
		return mcp.NewToolResultError("address is required"), nil //nolint:nilerr
	}

	out, err := h.apply(func(t tag.Tree) (mutate.Request, error) {
		at, err := locate(t, address)
		if err != nil {
			return mutate.Request{}, err
		}
		return mutate.Request{Op: project.OpRemove, Context: at, Payload: resolve.Payload{NoPrompt: true}}, nil
	})

	log.Event("mcp:ot_remove", "remove").Tag(address).Target(out.Before.Path).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("removed `%s`", out.Address)), nil
}

// update handles ot_update tool calls.
func (h *handlers) update(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) { //nolint:revive // ctx for future use
	address, err := req.RequireString("address")
	if err != nil || len(addressOf(address)) == 0 {
		return mcp.NewToolResultError("address is required"), nil //nolint:nilerr
	}

	out, err := h.apply(func(t tag.Tree) (mutate.Request, error) {
		at, err := locate(t, address)
		if err != nil {
			return mutate.Request{}, err
		}
		f, err := fields(req)
		if err != nil {
			return mutate.Request{}, err
		}
		if name := getField(req, "name"); name != nil {
			if err := validate.Name(*name); err != nil {
				return mutate.Request{}, err
			}
			f.Name = name
		}
		if f.Empty() {
			return mutate.Request{}, ErrNoFields
		}
		return mutate.Request{Op: project.OpUpdate, Context: at, Payload: resolve.Payload{Fields: f}}, nil
	})

	log.Event("mcp:ot_update", "update").Tag(address).Target(out.After.Path).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	d := diff.Tags(out.Before, out.After, out.Address)
	if !d.Changed() {
		return mcp.NewToolResultText(fmt.Sprintf("`%s` unchanged", out.Address)), nil
	}
	return mcp.NewToolResultText(d.Format(false)), nil
}

// fields reads the optional aliases, path, about and app parameters.
func fields(req mcp.CallToolRequest) (tag.Fields, error) {
	var f tag.Fields
	if a := getField(req, "aliases"); a != nil {
		aliases, err := validate.Aliases(*a)
		if err != nil {
			return f, err
		}
		f.Aliases = &aliases
	}
	f.Path = getField(req, "path")
	f.About = getField(req, "about")
	f.App = getField(req, "app")
	return f, nil
}

// apply loads the tree, builds a request against it, and runs the request
// through a session that saves on commit.
func (h *handlers) apply(build func(tag.Tree) (mutate.Request, error)) (mutate.Outcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, err := h.store.Load()
	if err != nil {
		return mutate.Outcome{}, err
	}
	req, err := build(t)
	if err != nil {
		return mutate.Outcome{}, err
	}
	return mutate.NewSession(mutate.New(&t, nil), h.store.Save).Run(req)
}
