package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, Options{Format: "json", Level: "warn"})
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Info("dropped")
	logger.Warn("channel type registry changed", "added", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "channel type registry changed", rec["msg"])
	assert.Equal(t, float64(2), rec["added"])
}

func TestNewHandler_AutoFallsBackToJSON(t *testing.T) {
	// a bytes.Buffer is never a terminal
	var buf bytes.Buffer
	h, err := NewHandler(&buf, Options{Format: "auto"})
	require.NoError(t, err)

	slog.New(h).Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNewHandler_Pretty(t *testing.T) {
	var buf bytes.Buffer
	h, err := NewHandler(&buf, Options{Format: "pretty", Level: "debug"})
	require.NoError(t, err)

	slog.New(h).Debug("lookup", "id", 14)
	out := buf.String()
	assert.Contains(t, out, "lookup")
	assert.Contains(t, out, "id=14")
	assert.NotContains(t, out, "\033[", "colors must be off when not writing to a terminal")
}

func TestNewHandler_Errors(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)

	_, err = NewHandler(&bytes.Buffer{}, Options{Format: "json", Level: "verbose"})
	assert.Error(t, err)
}
