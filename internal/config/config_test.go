package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/locus/internal/ingest"
	"github.com/agentic-research/locus/internal/markers"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, ingest.DefaultSource, c.Data.Source)
	assert.Equal(t, ingest.DefaultSelector, c.Data.Selector)
	assert.Equal(t, []float64{51.5, -0.09}, c.Map.Center)
	assert.Equal(t, 9, c.Map.Zoom)
	assert.Equal(t, markers.DefaultPrecision, *c.Map.Precision)
	assert.Equal(t, markers.DefaultBounds, c.ScatterBounds())
	assert.Equal(t, DefaultListen, c.Server.Listen)
	assert.False(t, c.Log.Enabled)
	require.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		c, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), c)
	})

	t.Run("hcl", func(t *testing.T) {
		path := writeFile(t, "locus.hcl", `
data {
  source   = "https://example.com/locations.json"
  selector = "$.locations[*]"
}

map {
  zoom      = 11
  precision = 4
  bounds {
    lat_min = 48.8
    lat_max = 48.9
    lng_min = 2.2
    lng_max = 2.4
  }
}

log {
  enabled = true
  level   = "debug"
}
`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/locations.json", c.Data.Source)
		assert.Equal(t, "$.locations[*]", c.Data.Selector)
		assert.Equal(t, 11, c.Map.Zoom)
		assert.Equal(t, 4, *c.Map.Precision)
		assert.Equal(t, markers.Bounds{LatMin: 48.8, LatMax: 48.9, LngMin: 2.2, LngMax: 2.4}, c.ScatterBounds())
		assert.Equal(t, DefaultCenter, c.Map.Center, "unset attributes keep defaults")
		assert.Equal(t, DefaultListen, c.Server.Listen, "missing blocks keep defaults")
		assert.True(t, c.LoggerOptions().Enabled)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "locus.yaml", `
data:
  source: places.db
map:
  center: [40.7, -74.0]
  precision: 0
server:
  listen: ":9090"
`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "places.db", c.Data.Source)
		assert.Equal(t, []float64{40.7, -74.0}, c.Map.Center)
		assert.Equal(t, 0, *c.Map.Precision, "explicit zero is kept")
		assert.Equal(t, ":9090", c.Server.Listen)
	})

	t.Run("json through hcl", func(t *testing.T) {
		path := writeFile(t, "locus.json", `{"server": {"listen": ":7070"}}`)
		c, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":7070", c.Server.Listen)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := Load(writeFile(t, "locus.toml", ""))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("invalid zoom", func(t *testing.T) {
		path := writeFile(t, "locus.yml", "map:\n  zoom: 42\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("bad center", func(t *testing.T) {
		path := writeFile(t, "locus.yml", "map:\n  center: [1, 2, 3]\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("bad log level", func(t *testing.T) {
		path := writeFile(t, "locus.hcl", "log {\n  level = \"loud\"\n}\n")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("hcl syntax error", func(t *testing.T) {
		_, err := Load(writeFile(t, "locus.hcl", "data {"))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
