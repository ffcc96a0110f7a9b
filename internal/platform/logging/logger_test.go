package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q)=%s, want %s", raw, got, want)
		}
	}
}

func TestLogger_JSONFieldsAndLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo, FormatJSON).With("component", "seats")

	logger.Debug("dropped")
	logger.WarnContext(context.Background(), "seat conflict", "section", "121", "error", errors.New("duplicate"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.UnmarshalString(lines[0], &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "seat conflict" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["component"] != "seats" || entry["section"] != "121" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["error"] != "duplicate" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if _, ok := entry["trace_id"]; ok {
		t.Fatalf("did not expect trace_id without a span")
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	t.Parallel()

	fields := zapFields([]any{"a", 1, 2, "b", "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" {
		t.Fatalf("expected non-string key to fall back to arg, got %q", fields[1].Key)
	}
}
