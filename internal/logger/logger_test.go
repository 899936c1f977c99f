package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "osmclean.log")
	l := build(Options{File: path})
	l.Info("Processed elements")
	l.Debug("hidden at info level")
	l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), data)
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("file log is not JSON: %v", err)
	}
	if entry["msg"] != "Processed elements" {
		t.Errorf("msg = %v", entry["msg"])
	}
}

func TestBuildDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	l := build(Options{Debug: true, File: path})
	l.Debug("visible")
	l.Sync()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "visible") {
		t.Error("debug entry missing at debug level")
	}
}

func TestGet(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
	if Get() != Get() {
		t.Error("Get() should return the same logger")
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault(0, 50) != 50 || orDefault(-1, 5) != 5 || orDefault(7, 5) != 7 {
		t.Error("orDefault returned the wrong value")
	}
}
