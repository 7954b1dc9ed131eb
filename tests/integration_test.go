package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/ingest"
	"github.com/agentic-research/locus/internal/web"
	"github.com/agentic-research/locus/internal/widget"
)

// The upstream payload is wrapped, so every loader needs the selector.
const upstreamJSON = `{
  "version": 2,
  "locations": [
    {"id": 1, "name": "London", "children": [
      {"id": 11, "name": "Westminster", "parent_id": 1},
      {"id": 12, "name": "Camden", "parent_id": 1}
    ]},
    {"id": 2, "name": "Kent", "children": [
      {"id": 21, "name": "Canterbury", "parent_id": 2}
    ]},
    {"id": 3, "name": "Reading"}
  ]
}`

const selector = "$.locations[*]"

// testFixture serves the payload over HTTP, snapshots it into SQLite and
// runs one widget per source behind the web handler.
type testFixture struct {
	upstream *httptest.Server
	dbPath   string
}

func setup(t *testing.T) *testFixture {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upstreamJSON))
	}))
	t.Cleanup(upstream.Close)

	hl, err := ingest.NewHTTPLoader(upstream.URL, selector, upstream.Client())
	require.NoError(t, err)
	nodes, err := hl.Load(context.Background())
	require.NoError(t, err)

	dbPath := filepath.Join(t.TempDir(), "locations.db")
	w, err := ingest.NewSQLiteWriter(dbPath)
	require.NoError(t, err)
	require.NoError(t, w.AddAll(nodes))
	require.NoError(t, w.Close())

	return &testFixture{upstream: upstream, dbPath: dbPath}
}

func (f *testFixture) serve(t *testing.T, l ingest.Loader) *httptest.Server {
	t.Helper()
	s := widget.DefaultSettings()
	s.Rand = rand.NewPCG(42, 42)
	wg := widget.New(l, s)
	require.NoError(t, wg.Load(context.Background()))

	srv, err := web.NewServer(wg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := ts.Client().Post(ts.URL+path, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func state(t *testing.T, resp *http.Response) api.State {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st api.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	return st
}

func countIDs(st api.State) map[int64]int {
	seen := map[int64]int{}
	var walk func([]api.NodeView)
	walk = func(vs []api.NodeView) {
		for _, v := range vs {
			seen[v.ID]++
			walk(v.Children)
		}
	}
	walk(st.Available)
	walk(st.Active)
	return seen
}

// TestScenario_SQLiteBackedWidget drives a full session over HTTP: promote a
// group, send one child back by its marker, pull the child forward again so it
// rejoins its group, then demote the whole group.
func TestScenario_SQLiteBackedWidget(t *testing.T) {
	f := setup(t)
	ts := f.serve(t, ingest.NewSQLiteLoader(f.dbPath))

	resp, err := ts.Client().Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	st := state(t, resp)
	require.Len(t, st.Available, 3)
	want := countIDs(st)

	// 1. Promote Kent: group plus child get markers.
	resp = post(t, ts, "/api/move", api.MoveRequest{From: "available", ID: 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mr api.MoveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	assert.Equal(t, []int64{2, 21}, mr.Result.Placed)

	// 2. Canterbury's marker is clicked: it goes back alone.
	st = state(t, post(t, ts, "/api/markers/21/click", nil))
	assert.Len(t, st.Markers, 1)
	assert.Empty(t, st.Active[0].Children)
	assert.Equal(t, want, countIDs(st))

	// 3. Moving Canterbury forward again nests it under Kent with no new marker.
	resp = post(t, ts, "/api/move", api.MoveRequest{From: "available", ID: 21})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	assert.Equal(t, "nested-into-parent", mr.Result.Outcome)
	assert.Empty(t, mr.Result.Placed)
	assert.Len(t, mr.State.Markers, 1)

	// 4. Demote Kent: every marker is gone and the tree is whole again.
	resp = post(t, ts, "/api/move", api.MoveRequest{From: "active", ID: 2})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	assert.Empty(t, mr.State.Active)
	assert.Empty(t, mr.State.Markers)
	assert.Equal(t, want, countIDs(mr.State))
}

// TestScenario_StraysRejoinPromotedParent mirrors the partial-then-full
// promotion: children moved one by one are collected when their parent follows.
func TestScenario_StraysRejoinPromotedParent(t *testing.T) {
	f := setup(t)
	hl, err := ingest.NewHTTPLoader(f.upstream.URL, selector, f.upstream.Client())
	require.NoError(t, err)
	ts := f.serve(t, hl)

	post(t, ts, "/api/move", api.MoveRequest{From: "available", ID: 11})
	st := state(t, post(t, ts, "/api/move", api.MoveRequest{From: "available", ID: 12}))
	require.Len(t, st.Active, 2, "two strays at the top level")
	require.Len(t, st.Markers, 2)

	resp := post(t, ts, "/api/move", api.MoveRequest{From: "available", ID: 1})
	var mr api.MoveResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mr))
	assert.ElementsMatch(t, []int64{11, 12}, mr.Result.Renested)
	require.Len(t, mr.State.Active, 1)
	assert.Len(t, mr.State.Active[0].Children, 2)
	assert.Len(t, mr.State.Markers, 3, "re-placing replaces markers")
}

func TestScenario_UpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	hl, err := ingest.NewHTTPLoader(down.URL, selector, down.Client())
	require.NoError(t, err)
	wg := widget.New(hl, widget.DefaultSettings())
	err = wg.Load(context.Background())
	require.ErrorIs(t, err, ingest.ErrLoadFailed)

	srv, err := web.NewServer(wg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	st := state(t, resp)
	assert.Empty(t, st.Available)
	assert.Contains(t, st.LoadError, "503")
}
