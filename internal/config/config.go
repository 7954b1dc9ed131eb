// Package config loads locus settings from HCL, JSON or YAML files.
//
// HCL and JSON go through hclsimple, YAML through yaml.v3; the format is
// picked from the file extension. Missing blocks and attributes fall back to
// the defaults below, then command-line flags override individual fields.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/locus/internal/ingest"
	"github.com/agentic-research/locus/internal/logger"
	"github.com/agentic-research/locus/internal/markers"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalid           = errors.New("invalid config")
)

const (
	DefaultSource   = ingest.DefaultSource
	DefaultSelector = ingest.DefaultSelector
	DefaultListen   = "127.0.0.1:8080"
	DefaultZoom     = 9
	DefaultTileURL  = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultLogLevel = "info"
)

// DefaultCenter is the initial map view, central London.
var DefaultCenter = []float64{51.5, -0.09}

type Config struct {
	Data   *Data   `hcl:"data,block" yaml:"data"`
	Map    *Map    `hcl:"map,block" yaml:"map"`
	Server *Server `hcl:"server,block" yaml:"server"`
	Log    *Log    `hcl:"log,block" yaml:"log"`
}

// Data says where the startup locations come from.
type Data struct {
	// Source is a JSON file path, an http(s) URL or a .db SQLite file.
	Source string `hcl:"source,optional" yaml:"source"`
	// Selector is a JSONPath narrowing the payload to the location list.
	Selector string `hcl:"selector,optional" yaml:"selector"`
}

type Map struct {
	Center    []float64 `hcl:"center,optional" yaml:"center"`
	Zoom      int       `hcl:"zoom,optional" yaml:"zoom"`
	TileURL   string    `hcl:"tile_url,optional" yaml:"tile_url"`
	Precision *int      `hcl:"precision,optional" yaml:"precision"`
	Bounds    *Bounds   `hcl:"bounds,block" yaml:"bounds"`
}

// Bounds is the marker scatter box. When present, all four edges are required.
type Bounds struct {
	LatMin float64 `hcl:"lat_min" yaml:"lat_min"`
	LatMax float64 `hcl:"lat_max" yaml:"lat_max"`
	LngMin float64 `hcl:"lng_min" yaml:"lng_min"`
	LngMax float64 `hcl:"lng_max" yaml:"lng_max"`
}

type Server struct {
	Listen string `hcl:"listen,optional" yaml:"listen"`
}

type Log struct {
	Enabled bool   `hcl:"enabled,optional" yaml:"enabled"`
	Dir     string `hcl:"dir,optional" yaml:"dir"`
	Level   string `hcl:"level,optional" yaml:"level"`
}

// Default returns a fully populated configuration.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads path and fills in defaults. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".json":
		if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "path", path, "source", cfg.Data.Source)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Data == nil {
		c.Data = &Data{}
	}
	if c.Data.Source == "" {
		c.Data.Source = DefaultSource
	}
	if c.Data.Selector == "" {
		c.Data.Selector = DefaultSelector
	}

	if c.Map == nil {
		c.Map = &Map{}
	}
	if len(c.Map.Center) == 0 {
		c.Map.Center = append([]float64(nil), DefaultCenter...)
	}
	if c.Map.Zoom == 0 {
		c.Map.Zoom = DefaultZoom
	}
	if c.Map.TileURL == "" {
		c.Map.TileURL = DefaultTileURL
	}
	if c.Map.Precision == nil {
		p := markers.DefaultPrecision
		c.Map.Precision = &p
	}
	if c.Map.Bounds == nil {
		b := Bounds(markers.DefaultBounds)
		c.Map.Bounds = &b
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}

	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if len(c.Map.Center) != 2 {
		return fmt.Errorf("%w: map.center needs [lat, lng], got %d values", ErrInvalid, len(c.Map.Center))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 19 {
		return fmt.Errorf("%w: map.zoom %d out of range 0..19", ErrInvalid, c.Map.Zoom)
	}
	if p := *c.Map.Precision; p < 0 || p > 10 {
		return fmt.Errorf("%w: map.precision %d out of range 0..10", ErrInvalid, p)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ScatterBounds converts the configured box for the marker scatter.
func (c *Config) ScatterBounds() markers.Bounds {
	return markers.Bounds(*c.Map.Bounds)
}

// LoggerOptions maps the log block onto logger options.
func (c *Config) LoggerOptions() logger.Options {
	lvl, _ := logger.ParseLevel(c.Log.Level) // checked in Validate
	return logger.Options{Enabled: c.Log.Enabled, Dir: c.Log.Dir, Level: lvl}
}
