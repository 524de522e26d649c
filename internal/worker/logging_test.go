package worker

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLoggerLevels(t *testing.T) {
	cases := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"verbose", slog.LevelInfo, slog.LevelDebug},
	}

	ctx := context.Background()
	for _, tc := range cases {
		logger := NewLogger(tc.level, "text")
		if !logger.Enabled(ctx, tc.enabled) {
			t.Errorf("level %q: expected %v to be enabled", tc.level, tc.enabled)
		}
		if logger.Enabled(ctx, tc.muted) {
			t.Errorf("level %q: expected %v to be muted", tc.level, tc.muted)
		}
	}
}

func TestNewLoggerFormats(t *testing.T) {
	if NewLogger("info", "json") == nil {
		t.Fatal("expected json logger")
	}
	if NewLogger("info", "text") == nil {
		t.Fatal("expected text logger")
	}
}
