package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// Census is the set of node ids reachable from a group of collections.
// Duplicates is the number of ids seen more than once while building it.
type Census struct {
	IDs        *roaring64.Bitmap
	Visited    int
	Duplicates []NodeID
}

// TakeCensus walks every collection and records each reachable id.
func TakeCensus(cols ...*Collection) *Census {
	c := &Census{IDs: roaring64.New()}
	for _, col := range cols {
		col.Walk(func(n, _ *Node) {
			c.Visited++
			if !c.IDs.CheckedAdd(uint64(n.ID)) {
				c.Duplicates = append(c.Duplicates, n.ID)
			}
		})
	}
	return c
}

// CensusOf records the ids of a freshly loaded node forest.
func CensusOf(nodes []*Node) *Census {
	return TakeCensus(NewCollection(Available, nodes))
}

// Len returns the number of distinct ids.
func (c *Census) Len() int {
	return int(c.IDs.GetCardinality())
}

// Verify checks that c holds exactly the ids of want, each once.
func (c *Census) Verify(want *Census) error {
	if len(c.Duplicates) > 0 {
		return fmt.Errorf("ids %v reachable more than once: %w", c.Duplicates, ErrInvalidTree)
	}
	if c.IDs.Equals(want.IDs) {
		return nil
	}
	lost := roaring64.AndNot(want.IDs, c.IDs)
	extra := roaring64.AndNot(c.IDs, want.IDs)
	return fmt.Errorf("census mismatch: lost %v, unexpected %v: %w",
		toNodeIDs(lost), toNodeIDs(extra), ErrInvalidTree)
}

func toNodeIDs(bm *roaring64.Bitmap) []NodeID {
	raw := bm.ToArray()
	out := make([]NodeID, len(raw))
	for i, v := range raw {
		out[i] = NodeID(v)
	}
	return out
}
