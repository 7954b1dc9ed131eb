package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
)

// ErrLoadFailed wraps every failure to produce the startup node set.
var ErrLoadFailed = errors.New("load failed")

// DefaultSource is where the widget looks for its data when nothing is configured.
const DefaultSource = "./assets/data.json"

// Loader produces the top-level nodes the widget starts with.
type Loader interface {
	Load(ctx context.Context) ([]*graph.Node, error)
}

// NewLoader picks a loader for source: http(s) URLs are fetched, ".db"
// files are read as SQLite, anything else is a JSON file.
func NewLoader(source, selector string) (Loader, error) {
	if source == "" {
		source = DefaultSource
	}
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return NewHTTPLoader(source, selector, nil)
	case filepath.Ext(source) == ".db":
		return NewSQLiteLoader(source), nil
	default:
		return NewFileLoaderPath(source, selector)
	}
}

// decodePayload turns raw JSON into validated nodes.
func decodePayload(content []byte, w *JsonWalker) ([]*graph.Node, error) {
	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	objs, err := w.Query(data)
	if err != nil {
		return nil, err
	}

	locs := make([]api.Location, 0, len(objs))
	for _, obj := range objs {
		// Round-trip through encoding/json so "children": [] stays distinct
		// from a missing key.
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("re-encode location: %w", err)
		}
		var loc api.Location
		if err := json.Unmarshal(raw, &loc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		locs = append(locs, loc)
	}
	return graph.FromLocations(locs)
}

func loadFailed(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLoadFailed, what, err)
}
