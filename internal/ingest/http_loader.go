package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
)

// maxPayload caps the size of a fetched payload.
const maxPayload = 16 << 20

// HTTPLoader GETs a JSON payload from a URL.
type HTTPLoader struct {
	URL    string
	Client *http.Client
	walker *JsonWalker
}

// NewHTTPLoader fetches url with client (http.DefaultClient-like when nil).
func NewHTTPLoader(url, selector string, client *http.Client) (*HTTPLoader, error) {
	w, err := NewJsonWalker(selector)
	if err != nil {
		return nil, loadFailed("selector", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPLoader{URL: url, Client: client, walker: w}, nil
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context) ([]*graph.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, loadFailed(l.URL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, loadFailed(l.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, loadFailed(l.URL, fmt.Errorf("unexpected status %s", resp.Status))
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, loadFailed(l.URL, err)
	}
	nodes, err := decodePayload(content, l.walker)
	if err != nil {
		return nil, loadFailed(l.URL, err)
	}
	logger.Info("locations loaded", "source", l.URL, "top_level", len(nodes))
	return nodes, nil
}
