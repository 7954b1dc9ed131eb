// Package mover moves location nodes between the "available" and "active"
// collections, keeping parent/child membership consistent on both sides.
//
// A node is reachable from exactly one collection at any time. Parents are
// always top-level; leaves are either nested under their parent or sit at the
// top level as a stray child while their parent lives in the other
// collection.
package mover

import (
	"fmt"

	"github.com/agentic-research/locus/internal/graph"
)

// Renderer receives marker requests for nodes entering or leaving "active".
type Renderer interface {
	// Place draws a marker for a single node.
	Place(n *graph.Node)
	// Remove erases the marker for n and, for a parent, its children's markers.
	Remove(n *graph.Node)
}

// Propagation lets the caller's UI event be cancelled when a leaf row is
// clicked, so the click does not also reach the enclosing parent row.
type Propagation interface {
	StopPropagation()
}

// StopFunc adapts a plain function to Propagation.
type StopFunc func()

// StopPropagation implements Propagation.
func (f StopFunc) StopPropagation() { f() }

// Mover owns both collections. It is not safe for concurrent use.
type Mover struct {
	cols     [2]*graph.Collection
	renderer Renderer
	loaded   *graph.Census
}

// New starts a mover with every node available and nothing active.
// A nil renderer discards marker requests.
func New(available []*graph.Node, r Renderer) *Mover {
	if r == nil {
		r = nopRenderer{}
	}
	return &Mover{
		cols: [2]*graph.Collection{
			graph.Available: graph.NewCollection(graph.Available, available),
			graph.Active:    graph.NewCollection(graph.Active, nil),
		},
		renderer: r,
		loaded:   graph.CensusOf(available),
	}
}

// Collection returns the collection with the given id.
func (m *Mover) Collection(id graph.CollectionID) *graph.Collection {
	return m.cols[id]
}

// Available is shorthand for Collection(graph.Available).
func (m *Mover) Available() *graph.Collection { return m.cols[graph.Available] }

// Active is shorthand for Collection(graph.Active).
func (m *Mover) Active() *graph.Collection { return m.cols[graph.Active] }

// Verify checks that every loaded node is still reachable exactly once.
func (m *Mover) Verify() error {
	return graph.TakeCensus(m.Available(), m.Active()).Verify(m.loaded)
}

// Move relocates node id out of collection from into the other collection.
//
// The node may sit at the top level of from or be nested under a parent.
// ev is stopped for leaf moves; it may be nil. All lookups are resolved before
// the first mutation, so a returned error means nothing changed.
func (m *Mover) Move(from graph.CollectionID, id graph.NodeID, ev Propagation) (*Result, error) {
	if from != graph.Available && from != graph.Active {
		return nil, fmt.Errorf("move %d: %w", id, graph.ErrBadDirection)
	}
	src, dst := m.cols[from], m.cols[from.Other()]

	loc, err := src.Locate(id)
	if err != nil {
		return nil, fmt.Errorf("move from %s: %w", from, err)
	}
	res := &Result{Node: loc.Node, From: src.ID, To: dst.ID}

	if loc.Node.IsParent() {
		if !loc.TopLevel() {
			return nil, fmt.Errorf("parent %d nested under %d: %w", id, loc.Parent.ID, graph.ErrInvalidTree)
		}
		m.moveParent(src, dst, loc, res)
		return res, nil
	}

	parent, err := leafParent(dst, loc.Node)
	if err != nil {
		return nil, err
	}
	if ev != nil {
		ev.StopPropagation()
	}
	m.moveLeaf(src, dst, loc, parent, res)
	return res, nil
}

// Recall moves an active node back to "available". It is the reaction to a
// click on the node's marker.
func (m *Mover) Recall(id graph.NodeID) (*Result, error) {
	return m.Move(graph.Active, id, nil)
}

func (m *Mover) moveParent(src, dst *graph.Collection, loc graph.Location, res *Result) {
	n := loc.Node
	res.Outcome = PromotedParent
	if src.ID == graph.Active {
		m.renderer.Remove(n)
	}

	// Children moved on their own earlier rejoin the group.
	if strays := dst.StrayChildren(n.ID); len(strays) > 0 {
		drop := make(map[graph.NodeID]struct{}, len(strays))
		for _, s := range strays {
			n.Children = append(n.Children, s)
			drop[s.ID] = struct{}{}
			res.Renested = append(res.Renested, s.ID)
		}
		dst.RemoveIDs(drop)
	}

	dst.Append(n)
	if dst.ID == graph.Active {
		m.place(n, res)
		for _, c := range n.Children {
			m.place(c, res)
		}
	}
	src.RemoveAt(loc.Index)
}

// leafParent returns n's parent when it sits at the top level of dst.
func leafParent(dst *graph.Collection, n *graph.Node) (*graph.Node, error) {
	if !n.HasParent {
		return nil, nil
	}
	p, err := dst.Get(n.ParentID)
	if err != nil {
		return nil, nil
	}
	if !p.IsParent() {
		return nil, fmt.Errorf("parent %d of %d is a leaf: %w", p.ID, n.ID, graph.ErrInvalidTree)
	}
	return p, nil
}

func (m *Mover) moveLeaf(src, dst *graph.Collection, loc graph.Location, parent *graph.Node, res *Result) {
	n := loc.Node

	if src.ID == graph.Active {
		m.renderer.Remove(n)
	}

	if parent != nil {
		// The parent's marker already stands for the group.
		res.Outcome = NestedIntoParent
		parent.Children = append(parent.Children, n)
		src.Detach(loc)
		return
	}

	res.Outcome = DetachedLeaf
	dst.Append(n)
	if dst.ID == graph.Active {
		m.place(n, res)
	}
	src.Detach(loc)
}

func (m *Mover) place(n *graph.Node, res *Result) {
	m.renderer.Place(n)
	res.Placed = append(res.Placed, n.ID)
}

type nopRenderer struct{}

func (nopRenderer) Place(*graph.Node)  {}
func (nopRenderer) Remove(*graph.Node) {}
