// Package widget binds the loader, the tree mover and the marker registry
// into one session that every front end drives.
//
// All operations are serialised by a single mutex. A reload builds a fresh
// session off-lock and swaps it in, so readers never see a half-loaded tree.
package widget

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/ingest"
	"github.com/agentic-research/locus/internal/logger"
	"github.com/agentic-research/locus/internal/markers"
	"github.com/agentic-research/locus/internal/mover"
)

// Settings shape the map side of the widget.
type Settings struct {
	Bounds    markers.Bounds
	Precision int
	Map       api.MapView
	// Rand seeds marker placement. Nil means a runtime seed.
	Rand rand.Source
}

// DefaultSettings are the central London defaults.
func DefaultSettings() Settings {
	return Settings{
		Bounds:    markers.DefaultBounds,
		Precision: markers.DefaultPrecision,
		Map: api.MapView{
			Center:  [2]float64{51.5, -0.09},
			Zoom:    9,
			TileURL: "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		},
	}
}

// session is the swappable unit: one load's worth of state.
type session struct {
	mover   *mover.Mover
	markers *markers.Registry
	loadErr error
}

// Widget is safe for concurrent use.
type Widget struct {
	mu       sync.Mutex
	loader   ingest.Loader
	settings Settings
	scatter  *markers.Scatter
	current  *session
	panel    Panel
}

// New returns a widget with empty collections. Call Load before serving.
func New(l ingest.Loader, s Settings) *Widget {
	w := &Widget{
		loader:   l,
		settings: s,
		scatter:  markers.NewScatter(s.Bounds, s.Precision, s.Rand),
	}
	w.current = w.newSession(nil, nil)
	return w
}

func (w *Widget) newSession(nodes []*graph.Node, loadErr error) *session {
	reg := markers.NewRegistry(w.scatter)
	m := mover.New(nodes, reg)
	reg.OnClick(func(id graph.NodeID) error {
		res, err := m.Recall(id)
		if err != nil {
			return err
		}
		w.afterMove(m, res)
		return nil
	})
	return &session{mover: m, markers: reg, loadErr: loadErr}
}

// Load fetches the startup nodes and replaces the current session. On
// failure the widget keeps serving with an empty "available" collection and
// the error is reported in Snapshot.
func (w *Widget) Load(ctx context.Context) error {
	nodes, err := w.loader.Load(ctx)
	if err != nil {
		logger.Error("load failed", "error", err)
		nodes = nil
	}
	next := w.newSession(nodes, err)

	w.mu.Lock()
	w.current = next
	w.mu.Unlock()

	if err == nil {
		logger.Info("session loaded", "available", next.mover.Available().Len())
	}
	return err
}

// Reload discards both collections and every marker and loads again.
func (w *Widget) Reload(ctx context.Context) error {
	return w.Load(ctx)
}

// Click is a list row click: it moves node id out of collection from.
func (w *Widget) Click(from graph.CollectionID, id graph.NodeID, ev mover.Propagation) (*mover.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	m := w.current.mover
	res, err := m.Move(from, id, ev)
	if err != nil {
		logger.Warn("move rejected", "from", from.String(), "id", int64(id), "error", err)
		return nil, err
	}
	w.afterMove(m, res)
	return res, nil
}

// ClickMarker is a marker click: the node goes back to "available".
func (w *Widget) ClickMarker(id graph.NodeID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.current.markers.Click(id); err != nil {
		logger.Warn("marker click rejected", "id", int64(id), "error", err)
		return err
	}
	return nil
}

// Toggle flips the list panel and returns its new state.
func (w *Widget) Toggle() Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.panel.Toggle()
	return w.panel
}

// Panel returns the current panel state.
func (w *Widget) Panel() Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.panel
}

// Snapshot renders the whole widget for front ends.
func (w *Widget) Snapshot() api.State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := w.current
	st := api.State{
		Available:  graph.Views(s.mover.Available()),
		Active:     graph.Views(s.mover.Active()),
		Markers:    s.markers.Views(),
		PanelShown: w.panel.Shown,
		PanelLabel: w.panel.Label(),
		Map:        w.settings.Map,
	}
	if s.loadErr != nil {
		st.LoadError = s.loadErr.Error()
	}
	return st
}

// LoadError returns the error of the last load, if any.
func (w *Widget) LoadError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current.loadErr
}

func (w *Widget) afterMove(m *mover.Mover, res *mover.Result) {
	logger.Debug("node moved",
		"id", int64(res.Node.ID),
		"outcome", res.Outcome.String(),
		"from", res.From.String(),
		"to", res.To.String(),
		"placed", len(res.Placed),
	)
	if err := m.Verify(); err != nil {
		logger.Error("collections lost track of nodes", "error", err)
	}
}

// Settings returns the map settings the widget was built with.
func (w *Widget) Settings() Settings {
	return w.settings
}
