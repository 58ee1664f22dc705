package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInitTagsRecordsWithRunID(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	runID := Init(Options{Output: &buf})

	slog.Debug("hidden at info level")
	slog.Info("store opened", "path", "data/index.db")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %q", buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if record["run_id"] != runID || record["msg"] != "store opened" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestInitDevelopmentUsesText(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	Init(Options{Development: true, Output: &buf})

	slog.Debug("batch written", "rows", 10)
	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "rows=10") {
		t.Fatalf("expected debug text output, got %q", buf.String())
	}
}
