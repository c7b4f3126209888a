package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"": slog.LevelInfo, "DEBUG": slog.LevelDebug, "warning": slog.LevelWarn, " error ": slog.LevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected unknown level error")
	}
}

func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "operation", "create_zoo")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a single json record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "kept" || record["operation"] != "create_zoo" {
		t.Fatalf("unexpected record %v", record)
	}

	buf.Reset()
	logger, err = New(Config{}, &buf)
	if err != nil {
		t.Fatalf("new text: %v", err)
	}
	logger.Info("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("expected text output, got %q", buf.String())
	}

	if _, err := New(Config{Format: "xml"}, &buf); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
