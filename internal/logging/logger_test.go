package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"gifify/internal/logging"
)

func TestNewConsoleWritesReadableLines(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("converted", logging.String("output", "clip.gif"), logging.Int("loop", 0))

	line := buf.String()
	if !strings.Contains(line, "INFO") || !strings.Contains(line, "converted") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "output=clip.gif") {
		t.Fatalf("expected attribute rendering, got %q", line)
	}
	if strings.Contains(line, "\x1b[") {
		t.Fatalf("expected no colour codes on a non-tty writer: %q", line)
	}
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "suppressed") {
		t.Fatalf("info line should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestNewJSONEmitsStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("converted", slog.String("output", "clip.gif"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "converted" || record["output"] != "clip.gif" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("nothing happens", logging.Error(nil))
}
