// Package mcptools exposes the widget as MCP tools so an agent can inspect
// and rearrange the location lists.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
	"github.com/agentic-research/locus/internal/widget"
)

// Server wraps an MCP server bound to one widget.
type Server struct {
	widget *widget.Widget
	mcp    *server.MCPServer
}

// New registers every tool on a fresh MCP server.
func New(w *widget.Widget, version string) *Server {
	s := &Server{
		widget: w,
		mcp:    server.NewMCPServer("locus", version, server.WithToolCapabilities(false)),
	}

	s.mcp.AddTool(mcp.NewTool("list_collections",
		mcp.WithDescription("Show both location lists, the placed map markers and the panel state as JSON."),
	), s.listCollections)

	s.mcp.AddTool(mcp.NewTool("move_node",
		mcp.WithDescription("Move a location out of a list into the other one. Moving a group moves all of its children."),
		mcp.WithString("from",
			mcp.Required(),
			mcp.Description("List the location currently sits in"),
			mcp.Enum("available", "active"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Location id"),
		),
	), s.moveNode)

	s.mcp.AddTool(mcp.NewTool("click_marker",
		mcp.WithDescription("Click the map marker of an active location, sending it back to the available list."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Location id of the marker"),
		),
	), s.clickMarker)

	s.mcp.AddTool(mcp.NewTool("toggle_panel",
		mcp.WithDescription("Show or hide the list panel."),
	), s.togglePanel)

	s.mcp.AddTool(mcp.NewTool("reload",
		mcp.WithDescription("Reload the locations from the data source. Both lists and all markers are reset."),
	), s.reload)

	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) listCollections(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.widget.Snapshot())
}

func (s *Server) moveNode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fromArg, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := graph.ParseCollectionID(fromArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.widget.Click(from, id, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	logger.Debug("mcp move", "id", int64(id), "outcome", res.Outcome.String())
	return jsonResult(res.View())
}

func (s *Server) clickMarker(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.widget.ClickMarker(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("location %d recalled to available", id)), nil
}

func (s *Server) togglePanel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := s.widget.Toggle()
	state := "hidden"
	if p.Shown {
		state = "shown"
	}
	return mcp.NewToolResultText(fmt.Sprintf("panel %s (%s)", state, p.Label())), nil
}

func (s *Server) reload(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.widget.Reload(ctx); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(s.widget.Snapshot())
}

func requireID(req mcp.CallToolRequest) (graph.NodeID, error) {
	v, err := req.RequireFloat("id")
	if err != nil {
		return 0, err
	}
	if math.Abs(v) >= 1<<63 || v != math.Trunc(v) {
		return 0, fmt.Errorf("id %v is not an int64", v)
	}
	return graph.NodeID(int64(v)), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
