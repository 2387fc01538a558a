package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewText(&buf, "warn")
	require.NoError(t, err)

	ctx := context.Background()
	logger.Info(ctx, "hidden")
	logger.With("component", "searchpath").Warn(ctx, "no search paths discovered", "os", "linux")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "no search paths discovered")
	assert.Contains(t, out, "component=searchpath")
	assert.Contains(t, out, "os=linux")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error(context.Background(), "dropped")
	if l, ok := logger.With("k", "v").(*slogLogger); !ok || l == nil {
		t.Fatalf("With should return an slog-backed logger")
	}
}

func TestNewNilUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	New(nil).Info(context.Background(), "through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Fatalf("expected record on default logger, got %q", buf.String())
	}
}
