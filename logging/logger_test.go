package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, parseLevel(tc.input), tc.input)
	}
}

func TestSetup_JSON(t *testing.T) {
	r := require.New(t)
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	logger := Setup(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "table", "people")

	var entry map[string]any
	r.NoError(json.Unmarshal(buf.Bytes(), &entry))
	r.Equal("kept", entry["msg"])
	r.Equal("people", entry["table"])
	r.Equal("WARN", entry["level"])
}

func TestSetup_Text(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	var buf bytes.Buffer
	Setup(&buf, "debug", "text")

	slog.Debug("statement executed", "rows_affected", 1)
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "rows_affected=1")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := NewContext(context.Background(), logger.With("connection_id", "abc"))
	WithFields(ctx, "op", "DeleteRow").Info("row deleted")

	out := buf.String()
	assert.Contains(t, out, "connection_id=abc")
	assert.Contains(t, out, "op=DeleteRow")

	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestOpenFile(t *testing.T) {
	r := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "sqladmin.log")

	for _, line := range []string{"first\n", "second\n"} {
		f, err := OpenFile(path)
		r.NoError(err)
		_, err = f.WriteString(line)
		r.NoError(err)
		r.NoError(f.Close())
	}

	content, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal("first\nsecond\n", string(content))
}
