package ingest

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/agentic-research/locus/internal/graph"
	"github.com/agentic-research/locus/internal/logger"
	_ "modernc.org/sqlite"
)

const nodesSchema = `
CREATE TABLE IF NOT EXISTS nodes (
	id INTEGER PRIMARY KEY,
	parent_id INTEGER,
	name TEXT NOT NULL,
	kind INTEGER NOT NULL,
	position INTEGER NOT NULL,
	nested INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteWriter persists a node forest into the nodes table read by SQLiteLoader.
type SQLiteWriter struct {
	db       *sql.DB
	tx       *sql.Tx
	stmtNode *sql.Stmt
	position int
	mu       sync.Mutex
}

// NewSQLiteWriter opens dbPath, creates the schema and starts a transaction.
// Existing rows are replaced on id conflicts.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(nodesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &SQLiteWriter{db: db}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLiteWriter) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmtNode, err = w.tx.Prepare(`
		INSERT OR REPLACE INTO nodes (id, parent_id, name, kind, position, nested)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	return err
}

// AddNode writes n and, for a group, its children.
func (w *SQLiteWriter) AddNode(n *graph.Node) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.insert(n, false); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := w.insert(c, true); err != nil {
			return err
		}
	}
	return nil
}

// AddAll writes a forest in order.
func (w *SQLiteWriter) AddAll(nodes []*graph.Node) error {
	for _, n := range nodes {
		if err := w.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

func (w *SQLiteWriter) insert(n *graph.Node, nested bool) error {
	parentID := sql.NullInt64{Int64: int64(n.ParentID), Valid: n.HasParent}
	flag := 0
	if nested {
		flag = 1
	}
	_, err := w.stmtNode.Exec(int64(n.ID), parentID, n.Name, int(n.Kind), w.position, flag)
	if err != nil {
		return fmt.Errorf("insert node %d: %w", n.ID, err)
	}
	w.position++
	return nil
}

// Close commits the pending transaction and closes the database.
func (w *SQLiteWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stmtNode != nil {
		_ = w.stmtNode.Close()
	}
	if err := w.tx.Commit(); err != nil {
		_ = w.db.Close()
		return err
	}
	if _, err := w.db.Exec(`CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id)`); err != nil {
		logger.Warn("index creation failed", "error", err)
	}
	logger.Debug("sqlite nodes written", "rows", w.position)
	return w.db.Close()
}
