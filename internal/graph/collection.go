package graph

import "fmt"

// Collection is an ordered sequence of top-level nodes.
// It is not safe for concurrent use.
type Collection struct {
	ID    CollectionID
	nodes []*Node
}

// NewCollection wraps nodes without copying them.
func NewCollection(id CollectionID, nodes []*Node) *Collection {
	if nodes == nil {
		nodes = []*Node{}
	}
	return &Collection{ID: id, nodes: nodes}
}

// Len returns the number of top-level nodes.
func (c *Collection) Len() int { return len(c.nodes) }

// Nodes returns the top-level nodes. Callers must not mutate the slice.
func (c *Collection) Nodes() []*Node { return c.nodes }

// IndexOf returns the top-level position of id.
func (c *Collection) IndexOf(id NodeID) (int, error) {
	for i, n := range c.nodes {
		if n.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%d in %s: %w", id, c.ID, ErrNotFound)
}

// Get returns the top-level node with the given id.
func (c *Collection) Get(id NodeID) (*Node, error) {
	i, err := c.IndexOf(id)
	if err != nil {
		return nil, err
	}
	return c.nodes[i], nil
}

// Location is where a node sits inside a collection.
// Parent is nil for top-level nodes; Index is relative to the slice that
// holds the node.
type Location struct {
	Node   *Node
	Parent *Node
	Index  int
}

// TopLevel reports whether the node is a direct member of the collection.
func (l Location) TopLevel() bool { return l.Parent == nil }

// Locate finds id at the top level or nested one level under a parent.
func (c *Collection) Locate(id NodeID) (Location, error) {
	for i, n := range c.nodes {
		if n.ID == id {
			return Location{Node: n, Index: i}, nil
		}
	}
	for _, p := range c.nodes {
		if !p.IsParent() {
			continue
		}
		for j, ch := range p.Children {
			if ch.ID == id {
				return Location{Node: ch, Parent: p, Index: j}, nil
			}
		}
	}
	return Location{}, fmt.Errorf("%d in %s: %w", id, c.ID, ErrNotFound)
}

// Contains reports whether id is reachable from the collection.
func (c *Collection) Contains(id NodeID) bool {
	_, err := c.Locate(id)
	return err == nil
}

// StrayChildren returns the top-level leaves that declare parent as their
// parent, in collection order.
func (c *Collection) StrayChildren(parent NodeID) []*Node {
	var out []*Node
	for _, n := range c.nodes {
		if !n.IsParent() && n.ChildOf(parent) {
			out = append(out, n)
		}
	}
	return out
}

// Append adds n to the end of the top level.
func (c *Collection) Append(n *Node) {
	c.nodes = append(c.nodes, n)
}

// RemoveAt drops the top-level node at index i, preserving order.
func (c *Collection) RemoveAt(i int) {
	c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
}

// Detach removes the node described by loc from wherever it sits.
func (c *Collection) Detach(loc Location) {
	if loc.TopLevel() {
		c.RemoveAt(loc.Index)
		return
	}
	loc.Parent.removeChild(loc.Index)
}

// RemoveIDs drops every top-level node whose id is in ids.
func (c *Collection) RemoveIDs(ids map[NodeID]struct{}) {
	kept := c.nodes[:0]
	for _, n := range c.nodes {
		if _, drop := ids[n.ID]; !drop {
			kept = append(kept, n)
		}
	}
	for i := len(kept); i < len(c.nodes); i++ {
		c.nodes[i] = nil
	}
	c.nodes = kept
}

// Walk visits every reachable node, parents before their children.
func (c *Collection) Walk(fn func(n *Node, parent *Node)) {
	for _, n := range c.nodes {
		fn(n, nil)
		for _, ch := range n.Children {
			fn(ch, n)
		}
	}
}

// IDs lists every reachable id in walk order.
func (c *Collection) IDs() []NodeID {
	var ids []NodeID
	c.Walk(func(n, _ *Node) { ids = append(ids, n.ID) })
	return ids
}
