package ingest

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// DefaultSelector picks every element of a top-level JSON array.
const DefaultSelector = "$[*]"

// JsonWalker narrows a decoded JSON document to the location objects.
type JsonWalker struct {
	expr     jp.Expr
	selector string
}

// NewJsonWalker compiles selector. An empty selector means DefaultSelector.
func NewJsonWalker(selector string) (*JsonWalker, error) {
	if selector == "" {
		selector = DefaultSelector
	}
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}
	return &JsonWalker{expr: x, selector: selector}, nil
}

// Query returns the location objects selected from root.
// A selector that lands on an array (e.g. "$.locations") is flattened one level.
func (w *JsonWalker) Query(root any) ([]map[string]any, error) {
	results := w.expr.Get(root)
	if len(results) == 1 {
		if arr, ok := results[0].([]any); ok {
			results = arr
		}
	}

	out := make([]map[string]any, 0, len(results))
	for i, r := range results {
		obj, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: match %d is %T, want object", w.selector, i, r)
		}
		out = append(out, obj)
	}
	return out, nil
}
