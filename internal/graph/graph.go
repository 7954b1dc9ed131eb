package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("node not found")
	ErrDuplicateID  = errors.New("duplicate node id")
	ErrInvalidTree  = errors.New("invalid location tree")
	ErrBadDirection = errors.New("unknown collection")
)

// NodeID identifies a node for its whole lifetime.
type NodeID int64

// Kind is the explicit variant tag of a node.
type Kind int

const (
	KindLeaf   Kind = iota // a single place
	KindParent             // a group; Children may be empty
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindParent:
		return "parent"
	default:
		return "unknown"
	}
}

// Node is the universal primitive.
// Name is a display label only; every lookup goes through ID.
type Node struct {
	ID        NodeID
	Name      string
	Kind      Kind
	ParentID  NodeID // valid only when HasParent
	HasParent bool
	Children  []*Node // KindParent only
}

// IsParent reports whether n is a group node.
func (n *Node) IsParent() bool {
	return n.Kind == KindParent
}

// ChildOf reports whether n declares parent as its parent.
func (n *Node) ChildOf(parent NodeID) bool {
	return n.HasParent && n.ParentID == parent
}

// ChildIndex returns the position of the child with the given id.
func (n *Node) ChildIndex(id NodeID) (int, error) {
	for i, c := range n.Children {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("child %d of %d: %w", id, n.ID, ErrNotFound)
}

// removeChild drops the child at index i, preserving order.
func (n *Node) removeChild(i int) {
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d(%s)", n.Kind, n.ID, n.Name)
}

// CollectionID names one of the two top-level collections.
type CollectionID int

const (
	Available CollectionID = iota
	Active
)

// Other returns the swap partner of c.
func (c CollectionID) Other() CollectionID {
	if c == Available {
		return Active
	}
	return Available
}

func (c CollectionID) String() string {
	switch c {
	case Available:
		return "available"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// ParseCollectionID accepts "available" (or the legacy "data") and "active".
func ParseCollectionID(s string) (CollectionID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "data":
		return Available, nil
	case "active":
		return Active, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrBadDirection)
	}
}
