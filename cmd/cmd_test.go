package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/locus/api"
	"github.com/agentic-research/locus/internal/graph"
)

const testData = `[
  {"id": 1, "name": "London", "children": [
    {"id": 11, "name": "Westminster", "parent_id": 1},
    {"id": 12, "name": "Camden", "parent_id": 1}
  ]},
  {"id": 3, "name": "Reading"}
]`

func writeData(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testData), 0o644))
	return path
}

// resetFlags clears flag state left over from a previous Execute.
func resetFlags() {
	showMoves, showJSON = nil, false
	configPath, dataPath, selector, debug = "", "", "", false
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), showCmd.Flags()} {
		fs.VisitAll(func(f *pflag.Flag) { f.Changed = false })
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestShow(t *testing.T) {
	data := writeData(t)

	out, err := run(t, "show", "--data", data, "--move", "available:1", "--move", "active:11")
	require.NoError(t, err, out)
	assert.Contains(t, out, "promoted-parent")
	assert.Contains(t, out, "Available (2):")
	assert.Contains(t, out, "Active (1):")
	assert.Contains(t, out, "London/")
	assert.Contains(t, out, "Markers (2):")
}

func TestShowJSON(t *testing.T) {
	data := writeData(t)

	out, err := run(t, "show", "--data", data, "--move", "available:3", "--json")
	require.NoError(t, err, out)

	var st api.State
	require.NoError(t, json.Unmarshal([]byte(out), &st), out)
	require.Len(t, st.Active, 1)
	assert.Equal(t, int64(3), st.Active[0].ID)
	require.Len(t, st.Markers, 1)
	assert.Equal(t, "+", st.PanelLabel)
}

func TestShowErrors(t *testing.T) {
	data := writeData(t)

	_, err := run(t, "show", "--data", data, "--move", "available-1")
	require.Error(t, err)

	_, err = run(t, "show", "--data", data, "--move", "sideways:1")
	assert.ErrorIs(t, err, graph.ErrBadDirection)

	_, err = run(t, "show", "--data", data, "--move", "active:1")
	assert.ErrorIs(t, err, graph.ErrNotFound)
}

func TestShowMissingDataStillRuns(t *testing.T) {
	out, err := run(t, "show", "--data", filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
	assert.Contains(t, out, "load error:")
	assert.Contains(t, out, "Available (0):")
}

func TestBuildThenShow(t *testing.T) {
	data := writeData(t)
	db := filepath.Join(t.TempDir(), "places.db")

	out, err := run(t, "build", data, db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote 2 top-level locations")

	out, err = run(t, "show", "--data", db, "--move", "available:1")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Active (1):")
	assert.Contains(t, out, "Westminster")
}

func TestConfigFile(t *testing.T) {
	data := writeData(t)
	cfgPath := filepath.Join(t.TempDir(), "locus.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  source: "+data+"\n"), 0o644))

	var buf bytes.Buffer
	resetFlags()
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"show", "--config", cfgPath})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), buf.String())
	assert.Equal(t, data, cfg.Data.Source)
	assert.Contains(t, buf.String(), "Available (2):")
}
