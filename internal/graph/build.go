package graph

import (
	"fmt"

	"github.com/agentic-research/locus/api"
)

// FromLocations converts a decoded payload into a node forest.
// It enforces the loader contract: unique ids everywhere, children are leaves,
// and every child points back at its parent. A child without parent_id
// inherits the id of the group that lists it. A top-level node may carry a
// parent_id only if it is a leaf and the id names a top-level group.
func FromLocations(locs []api.Location) ([]*Node, error) {
	seen := make(map[NodeID]struct{})
	claim := func(id int64) error {
		if _, dup := seen[NodeID(id)]; dup {
			return fmt.Errorf("id %d: %w", id, ErrDuplicateID)
		}
		seen[NodeID(id)] = struct{}{}
		return nil
	}

	nodes := make([]*Node, 0, len(locs))
	for _, loc := range locs {
		if err := claim(loc.ID); err != nil {
			return nil, err
		}
		n := &Node{ID: NodeID(loc.ID), Name: loc.Name}
		if loc.ParentID != nil {
			n.ParentID = NodeID(*loc.ParentID)
			n.HasParent = true
		}
		if loc.IsGroup() {
			n.Kind = KindParent
			n.Children = make([]*Node, 0, len(loc.Children))
		}
		for _, cl := range loc.Children {
			if err := claim(cl.ID); err != nil {
				return nil, err
			}
			if cl.IsGroup() {
				return nil, fmt.Errorf("child %d of %d has children: %w", cl.ID, loc.ID, ErrInvalidTree)
			}
			if cl.ParentID != nil && *cl.ParentID != loc.ID {
				return nil, fmt.Errorf("child %d of %d declares parent_id %d: %w",
					cl.ID, loc.ID, *cl.ParentID, ErrInvalidTree)
			}
			n.Children = append(n.Children, &Node{
				ID:        NodeID(cl.ID),
				Name:      cl.Name,
				Kind:      KindLeaf,
				ParentID:  n.ID,
				HasParent: true,
			})
		}
		nodes = append(nodes, n)
	}
	if err := checkStrays(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// checkStrays validates the parent references of top-level nodes.
func checkStrays(nodes []*Node) error {
	groups := make(map[NodeID]bool, len(nodes))
	for _, n := range nodes {
		groups[n.ID] = n.IsParent()
	}
	for _, n := range nodes {
		if !n.HasParent {
			continue
		}
		if n.IsParent() {
			return fmt.Errorf("group %d declares parent_id %d: %w", n.ID, n.ParentID, ErrInvalidTree)
		}
		isGroup, ok := groups[n.ParentID]
		switch {
		case !ok:
			return fmt.Errorf("node %d references missing parent %d: %w", n.ID, n.ParentID, ErrInvalidTree)
		case !isGroup:
			return fmt.Errorf("node %d references leaf %d as parent: %w", n.ID, n.ParentID, ErrInvalidTree)
		}
	}
	return nil
}

// ToLocations is the inverse of FromLocations. Groups always carry a
// non-nil children slice.
func ToLocations(nodes []*Node) []api.Location {
	out := make([]api.Location, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toLocation(n))
	}
	return out
}

func toLocation(n *Node) api.Location {
	loc := api.Location{ID: int64(n.ID), Name: n.Name}
	if n.HasParent {
		pid := int64(n.ParentID)
		loc.ParentID = &pid
	}
	if n.IsParent() {
		loc.Children = make([]api.Location, 0, len(n.Children))
		for _, c := range n.Children {
			loc.Children = append(loc.Children, toLocation(c))
		}
	}
	return loc
}

// View renders n for front ends.
func View(n *Node) api.NodeView {
	v := api.NodeView{ID: int64(n.ID), Name: n.Name, Group: n.IsParent()}
	if n.HasParent {
		pid := int64(n.ParentID)
		v.ParentID = &pid
	}
	for _, c := range n.Children {
		v.Children = append(v.Children, View(c))
	}
	return v
}

// Views renders a whole collection.
func Views(c *Collection) []api.NodeView {
	out := make([]api.NodeView, 0, c.Len())
	for _, n := range c.Nodes() {
		out = append(out, View(n))
	}
	return out
}
