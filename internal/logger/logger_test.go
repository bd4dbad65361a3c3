package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("day done", "day", 3)
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json output %q: %v", buf.String(), err)
	}
	if rec["msg"] != "day done" || rec["day"] != float64(3) {
		t.Fatalf("record = %v", rec)
	}

	buf.Reset()
	New(&buf, "info", "text").Info("day done", "day", 3)
	if !strings.Contains(buf.String(), "msg=\"day done\" day=3") {
		t.Fatalf("text output = %q", buf.String())
	}

	// A buffer is never a terminal.
	buf.Reset()
	New(&buf, "info", "auto").Info("x")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("auto format to a buffer = %q, want JSON", buf.String())
	}
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "text")
	if l.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info enabled at warn level")
	}
	if !l.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error disabled at warn level")
	}
}
