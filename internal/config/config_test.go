package config

import (
	"bytes"
	"context"
	"log/slog"
	"runtime"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "auto", cfg.Workers)
	assert.Empty(t, cfg.Preset)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomValues(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LOOPSLICE_OUTPUT_DIR": "/tmp/slices",
		"LOOPSLICE_WORKERS":    "3",
		"LOOPSLICE_PRESET":     "presets/drums.yaml",
		"LOOPSLICE_LOG_LEVEL":  "debug",
		"LOOPSLICE_LOG_FORMAT": "json",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/slices", cfg.OutputDir)
	assert.Equal(t, "3", cfg.Workers)
	assert.Equal(t, "presets/drums.yaml", cfg.Preset)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LOOPSLICE_WORKERS": "zero",
	}))
	assert.Error(t, err)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOOPSLICE_OUTPUT_DIR", "env-out")
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-out", cfg.OutputDir)
}

func TestParseWorkers(t *testing.T) {
	n, err := ParseWorkers("auto")
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), n)

	n, err = ParseWorkers(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, raw := range []string{"", "0", "-1", "many"} {
		_, err := ParseWorkers(raw)
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown", "slice", 2)
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"slice":2`)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input), tt.input)
	}
}
