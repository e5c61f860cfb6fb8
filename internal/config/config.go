// Package config loads environment defaults for the slicer CLI and builds its
// logger.
package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Config holds settings that may come from the environment. Command-line
// flags take precedence over every field.
type Config struct {
	OutputDir string `env:"LOOPSLICE_OUTPUT_DIR, default=."`
	Workers   string `env:"LOOPSLICE_WORKERS, default=auto"`
	Preset    string `env:"LOOPSLICE_PRESET"`

	LogLevel  string `env:"LOOPSLICE_LOG_LEVEL, default=info"`  // "debug", "info", "warn", "error"
	LogFormat string `env:"LOOPSLICE_LOG_FORMAT, default=text"` // "json" or "text"
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := ParseWorkers(cfg.Workers); err != nil {
		return nil, fmt.Errorf("config: LOOPSLICE_WORKERS %w", err)
	}
	return cfg, nil
}

// NewLogger creates a structured logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(c.LogLevel)}
	if strings.ToLower(c.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseWorkers parses a worker count. "auto" resolves to the number of CPUs.
func ParseWorkers(raw string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return 0, fmt.Errorf("empty value (use integer >= 1 or 'auto')")
	}
	if v == "auto" {
		return runtime.NumCPU(), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q (use integer >= 1 or 'auto')", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%d (must be >= 1 or 'auto')", n)
	}
	return n, nil
}
