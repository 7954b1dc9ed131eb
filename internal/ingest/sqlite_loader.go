package ingest

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
	_ "modernc.org/sqlite"
)

// SQLiteLoader reads the nodes table written by SQLiteWriter.
type SQLiteLoader struct {
	Path string
}

func NewSQLiteLoader(dbPath string) *SQLiteLoader {
	return &SQLiteLoader{Path: dbPath}
}

type nodeRow struct {
	id       int64
	parentID sql.NullInt64
	name     string
	kind     graph.Kind
	nested   bool
}

// Load implements Loader. Rows are ordered by position; a nested row
// whose parent is missing is an invalid tree.
func (l *SQLiteLoader) Load(ctx context.Context) ([]*graph.Node, error) {
	db, err := sql.Open("sqlite", l.Path)
	if err != nil {
		return nil, loadFailed(l.Path, fmt.Errorf("open sqlite: %w", err))
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx,
		"SELECT id, parent_id, name, kind, nested FROM nodes ORDER BY position, id")
	if err != nil {
		return nil, loadFailed(l.Path, fmt.Errorf("query nodes: %w", err))
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var all []nodeRow
	for rows.Next() {
		var r nodeRow
		var kind int
		if err := rows.Scan(&r.id, &r.parentID, &r.name, &kind, &r.nested); err != nil {
			return nil, loadFailed(l.Path, fmt.Errorf("scan row: %w", err))
		}
		r.kind = graph.Kind(kind)
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, loadFailed(l.Path, fmt.Errorf("iterate rows: %w", err))
	}

	locs, err := assemble(all)
	if err != nil {
		return nil, loadFailed(l.Path, err)
	}
	nodes, err := graph.FromLocations(locs)
	if err != nil {
		return nil, loadFailed(l.Path, err)
	}
	logger.Info("locations loaded", "source", l.Path, "top_level", len(nodes))
	return nodes, nil
}

// assemble rebuilds the nested location list from flat rows. Top-level
// rows may still carry a parent_id (a leaf detached from its group).
func assemble(all []nodeRow) ([]api.Location, error) {
	var top []api.Location
	index := make(map[int64]int)
	for _, r := range all {
		if r.nested {
			continue
		}
		loc := api.Location{ID: r.id, Name: r.name}
		if r.parentID.Valid {
			pid := r.parentID.Int64
			loc.ParentID = &pid
		}
		if r.kind == graph.KindParent {
			loc.Children = []api.Location{}
		}
		index[r.id] = len(top)
		top = append(top, loc)
	}
	for _, r := range all {
		if !r.nested {
			continue
		}
		if !r.parentID.Valid {
			return nil, fmt.Errorf("%w: nested node %d has no parent_id", graph.ErrInvalidTree, r.id)
		}
		i, ok := index[r.parentID.Int64]
		if !ok {
			return nil, fmt.Errorf("%w: node %d references missing parent %d",
				graph.ErrInvalidTree, r.id, r.parentID.Int64)
		}
		if top[i].Children == nil {
			return nil, fmt.Errorf("%w: node %d nested under leaf %d",
				graph.ErrInvalidTree, r.id, r.parentID.Int64)
		}
		pid := r.parentID.Int64
		top[i].Children = append(top[i].Children, api.Location{ID: r.id, Name: r.name, ParentID: &pid})
	}
	return top, nil
}
