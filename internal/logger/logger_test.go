// internal/logger/logger_test.go
//
// Unit-test for New: the daily JSON file appears under <root>/logs.
//
// Run: go test ./internal/logger -v

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNew_WritesDailyJSONFile(t *testing.T) {
	root := t.TempDir()
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	log, err := New(root, false, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debugw("employee rejected", "reason", "ssn is required")
	_ = log.Sync()

	path := filepath.Join(root, "logs", time.Now().Format("2006-01-02")+".log")
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), raw)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["level"] != "debug" || entry["reason"] != "ssn is required" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if zap.L() == prev {
		t.Fatalf("global logger not replaced")
	}
}
