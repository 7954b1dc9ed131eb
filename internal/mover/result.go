package mover

import (
	"fmt"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
)

// Outcome tells which branch of the move algorithm ran.
type Outcome int

const (
	// PromotedParent: a parent moved with all of its children, including
	// strays collected from the destination.
	PromotedParent Outcome = iota
	// NestedIntoParent: a leaf joined its parent already sitting in the
	// destination.
	NestedIntoParent
	// DetachedLeaf: a leaf left its group and became a top-level entry of
	// the destination.
	DetachedLeaf
)

func (o Outcome) String() string {
	switch o {
	case PromotedParent:
		return "promoted-parent"
	case NestedIntoParent:
		return "nested-into-parent"
	case DetachedLeaf:
		return "detached-leaf"
	default:
		return "unknown"
	}
}

// Result describes a completed move.
type Result struct {
	Outcome  Outcome
	Node     *graph.Node
	From     graph.CollectionID
	To       graph.CollectionID
	Placed   []graph.NodeID // marker placements, in request order
	Renested []graph.NodeID // strays that rejoined a moved parent
}

func (r *Result) String() string {
	return fmt.Sprintf("%s %s: %s -> %s", r.Outcome, r.Node, r.From, r.To)
}

// View renders r for front ends.
func (r *Result) View() api.MoveResult {
	v := api.MoveResult{
		Outcome: r.Outcome.String(),
		ID:      int64(r.Node.ID),
		From:    r.From.String(),
		To:      r.To.String(),
	}
	for _, id := range r.Placed {
		v.Placed = append(v.Placed, int64(id))
	}
	for _, id := range r.Renested {
		v.Renested = append(v.Renested, int64(id))
	}
	return v
}
