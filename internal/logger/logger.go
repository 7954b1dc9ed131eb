package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger instance. It discards all output until Init enables it.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "locus-"
	logSuffix     = ".log"
	retentionDays = 14
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Dir     string     // Directory for log files. Default: ~/.agentic-research/locus/logs
	Stderr  bool       // Write text lines to stderr instead of a file
	Level   slog.Level // Minimum log level
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// Init configures logging. Call it before any log calls.
// The terminal UI owns stdout, so file output is the default when enabled.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	if opts.Stderr {
		L = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
		return nil
	}

	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve log dir: %w", err)
		}
		dir = filepath.Join(home, ".agentic-research", "locus", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	cleanOldLogs(dir)

	name := filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	return nil
}

// cleanOldLogs removes log files older than retentionDays. Best effort.
func cleanOldLogs(dir string) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
