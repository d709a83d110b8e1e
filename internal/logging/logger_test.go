package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestInitLogger(t *testing.T) {
	prevLogger, prevOutput := slog.Default(), Output
	t.Cleanup(func() {
		slog.SetDefault(prevLogger)
		Output = prevOutput
	})

	var buf bytes.Buffer
	Output = &buf

	InitLogger("warn")
	slog.Info("[Test] hidden")
	slog.Warn("[Test] shown", slog.String("video_id", "abc"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[Test] shown")
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "logger_test.go")
}
