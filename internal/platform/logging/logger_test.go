package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestNewJSONTo_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONTo(&buf, LevelInfo).Named("procyclingstats")

	logger.InfoContext(context.Background(), "fetch page", "url", "https://example.test/race/x", "status", 404)
	logger.Debug("suppressed below info")
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := sonic.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["msg"] != "fetch page" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["logger"] != "procyclingstats" {
		t.Fatalf("unexpected logger name: %v", entry["logger"])
	}
	if entry["status"] != float64(404) {
		t.Fatalf("unexpected status field: %v", entry["status"])
	}
}

func TestZapFields_OddArgsAndErrors(t *testing.T) {
	fields := zapFields([]any{"race", "tour-de-france", "error", errSample{}, "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != "error" {
		t.Fatalf("expected error field key, got %q", fields[1].Key)
	}
	if fields[2].Key != "dangling" {
		t.Fatalf("expected dangling key preserved, got %q", fields[2].Key)
	}
}

func TestDefault_NeverNil(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected default logger")
	}
}

type errSample struct{}

func (errSample) Error() string { return "sample" }
