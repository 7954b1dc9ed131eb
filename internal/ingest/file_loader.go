package ingest

import (
	"context"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
)

// FileLoader reads a JSON payload from a billy filesystem.
type FileLoader struct {
	FS     billy.Basic
	Path   string
	walker *JsonWalker
}

// NewFileLoader reads path from fsys.
func NewFileLoader(fsys billy.Basic, path, selector string) (*FileLoader, error) {
	w, err := NewJsonWalker(selector)
	if err != nil {
		return nil, loadFailed("selector", err)
	}
	return &FileLoader{FS: fsys, Path: path, walker: w}, nil
}

// NewFileLoaderPath reads a path on the host filesystem, rooted at its directory.
func NewFileLoaderPath(path, selector string) (*FileLoader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, loadFailed(path, err)
	}
	return NewFileLoader(osfs.New(filepath.Dir(abs)), filepath.Base(abs), selector)
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context) ([]*graph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadFailed(l.Path, err)
	}
	content, err := util.ReadFile(l.FS, l.Path)
	if err != nil {
		return nil, loadFailed(l.Path, err)
	}
	nodes, err := decodePayload(content, l.walker)
	if err != nil {
		return nil, loadFailed(l.Path, err)
	}
	logger.Info("locations loaded", "source", l.Path, "top_level", len(nodes))
	return nodes, nil
}
