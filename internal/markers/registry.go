package markers

import (
	"errors"
	"fmt"
	"sort"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
)

var ErrNoMarker = errors.New("no marker for node")

// Marker is one placed map marker. Name is the tooltip text.
type Marker struct {
	NodeID graph.NodeID
	Name   string
	Lat    float64
	Lng    float64
}

// ClickFunc is told which node a clicked marker belongs to.
type ClickFunc func(id graph.NodeID) error

// Registry keeps the placed markers, keyed by node id.
// It implements mover.Renderer and is not safe for concurrent use.
type Registry struct {
	markers map[graph.NodeID]*Marker
	scatter *Scatter
	onClick ClickFunc
}

// NewRegistry returns an empty registry placing markers with s.
func NewRegistry(s *Scatter) *Registry {
	if s == nil {
		s = NewScatter(DefaultBounds, DefaultPrecision, nil)
	}
	return &Registry{
		markers: make(map[graph.NodeID]*Marker),
		scatter: s,
	}
}

// OnClick registers the handler invoked by Click.
func (r *Registry) OnClick(fn ClickFunc) {
	r.onClick = fn
}

// Place draws a marker for n. A node that already has a marker gets a new one.
func (r *Registry) Place(n *graph.Node) {
	lat, lng := r.scatter.Next()
	r.markers[n.ID] = &Marker{NodeID: n.ID, Name: n.Name, Lat: lat, Lng: lng}
	logger.Debug("marker placed", "node", n.ID, "name", n.Name, "lat", lat, "lng", lng)
}

// Remove erases the marker for n and the markers of its children.
func (r *Registry) Remove(n *graph.Node) {
	delete(r.markers, n.ID)
	for _, c := range n.Children {
		delete(r.markers, c.ID)
	}
	logger.Debug("marker removed", "node", n.ID, "children", len(n.Children))
}

// Get returns the marker of node id.
func (r *Registry) Get(id graph.NodeID) (Marker, error) {
	m, ok := r.markers[id]
	if !ok {
		return Marker{}, fmt.Errorf("%d: %w", id, ErrNoMarker)
	}
	return *m, nil
}

// Click resolves the marker of node id and reports it to the click handler.
func (r *Registry) Click(id graph.NodeID) error {
	if _, ok := r.markers[id]; !ok {
		return fmt.Errorf("click %d: %w", id, ErrNoMarker)
	}
	if r.onClick == nil {
		return nil
	}
	return r.onClick(id)
}

// Len returns the number of placed markers.
func (r *Registry) Len() int { return len(r.markers) }

// Clear drops every marker.
func (r *Registry) Clear() {
	r.markers = make(map[graph.NodeID]*Marker)
}

// Markers lists the placed markers ordered by node id.
func (r *Registry) Markers() []Marker {
	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// Views renders the markers for front ends.
func (r *Registry) Views() []api.MarkerView {
	ms := r.Markers()
	out := make([]api.MarkerView, len(ms))
	for i, m := range ms {
		out[i] = api.MarkerView{NodeID: int64(m.NodeID), Name: m.Name, Lat: m.Lat, Lng: m.Lng}
	}
	return out
}

// Scatter returns the position source.
func (r *Registry) Scatter() *Scatter { return r.scatter }
