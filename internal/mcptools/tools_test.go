package mcptools

import (
	"context"
	"encoding/json"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/widget"
)

type loaderFunc func(ctx context.Context) ([]*graph.Node, error)

func (f loaderFunc) Load(ctx context.Context) ([]*graph.Node, error) { return f(ctx) }

func newServer(t *testing.T) *Server {
	t.Helper()
	l := loaderFunc(func(context.Context) ([]*graph.Node, error) {
		return graph.FromLocations([]api.Location{
			{ID: 1, Name: "London", Children: []api.Location{{ID: 11, Name: "Westminster"}}},
			{ID: 3, Name: "Reading"},
		})
	})
	s := widget.DefaultSettings()
	s.Rand = rand.NewPCG(3, 4)
	w := widget.New(l, s)
	require.NoError(t, w.Load(context.Background()))
	return New(w, "test")
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "want text content, got %T", res.Content[0])
	return tc.Text
}

func TestListCollections(t *testing.T) {
	s := newServer(t)
	res, err := s.listCollections(context.Background(), call(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var st api.State
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &st))
	assert.Len(t, st.Available, 2)
	assert.Empty(t, st.Active)
}

func TestMoveNode(t *testing.T) {
	s := newServer(t)

	res, err := s.moveNode(context.Background(), call(map[string]any{"from": "available", "id": float64(1)}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var mr api.MoveResult
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &mr))
	assert.Equal(t, "promoted-parent", mr.Outcome)
	assert.Equal(t, []int64{1, 11}, mr.Placed)

	t.Run("errors are tool errors", func(t *testing.T) {
		cases := []map[string]any{
			{"id": float64(1)},
			{"from": "sideways", "id": float64(1)},
			{"from": "available"},
			{"from": "available", "id": 1.5},
			{"from": "available", "id": float64(1)},
		}
		for _, args := range cases {
			res, err := s.moveNode(context.Background(), call(args))
			require.NoError(t, err)
			assert.True(t, res.IsError, "%v", args)
		}
	})
}

func TestRequireID(t *testing.T) {
	id, err := requireID(call(map[string]any{"id": float64(42)}))
	require.NoError(t, err)
	assert.Equal(t, graph.NodeID(42), id)

	for _, v := range []float64{1.5, 1 << 63, -(1 << 63), 1e300, math.Inf(1), math.NaN()} {
		_, err := requireID(call(map[string]any{"id": v}))
		assert.Error(t, err, "%v", v)
	}
}

func TestClickMarkerAndToggle(t *testing.T) {
	s := newServer(t)

	res, err := s.clickMarker(context.Background(), call(map[string]any{"id": float64(3)}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "nothing is placed yet")

	_, err = s.moveNode(context.Background(), call(map[string]any{"from": "available", "id": float64(3)}))
	require.NoError(t, err)

	res, err = s.clickMarker(context.Background(), call(map[string]any{"id": float64(3)}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), "recalled")

	res, err = s.togglePanel(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "panel shown (-)", text(t, res))
	res, err = s.togglePanel(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Equal(t, "panel hidden (+)", text(t, res))
}

func TestReload(t *testing.T) {
	s := newServer(t)
	_, err := s.moveNode(context.Background(), call(map[string]any{"from": "available", "id": float64(3)}))
	require.NoError(t, err)

	res, err := s.reload(context.Background(), call(nil))
	require.NoError(t, err)
	var st api.State
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &st))
	assert.Len(t, st.Available, 2)
	assert.Empty(t, st.Markers)
}

func TestToolsRegistered(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	resp := s.MCPServer().HandleMessage(ctx, json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"list_collections", "move_node", "click_marker", "toggle_panel", "reload"} {
		assert.Contains(t, string(raw), `"name":"`+name+`"`)
	}
}
