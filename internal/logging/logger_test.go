package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, LogFileName)); os.IsNotExist(err) {
			t.Errorf("log file was not created in %s", dir)
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.sink.file != nil {
			t.Error("expected no file when dir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["level"] != "WARN" || entries[1]["level"] != "ERROR" {
		t.Errorf("levels = %v, %v, want WARN, ERROR", entries[0]["level"], entries[1]["level"])
	}
}

func TestChildLoggers(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	child := logger.WithComponent("autoscroll").WithPanel(2)
	child.Debug("boundary reached", "offset", 200)

	// Closing the child closes the shared file.
	if err := child.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}

	entries := readEntries(t, dir)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry := entries[0]
	if entry["component"] != "autoscroll" {
		t.Errorf("component = %v, want autoscroll", entry["component"])
	}
	if entry["panel"] != float64(2) {
		t.Errorf("panel = %v, want 2", entry["panel"])
	}
	if entry["offset"] != float64(200) {
		t.Errorf("offset = %v, want 200", entry["offset"])
	}
}

func TestWithNoArgsReturnsSameLogger(t *testing.T) {
	logger := NopLogger()
	if got := logger.With(); got != logger {
		t.Error("With() with no args should return the receiver")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Info("discarded", "key", "value")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}
