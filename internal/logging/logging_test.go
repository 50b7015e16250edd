package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != InfoLevel {
		t.Errorf("expected default level to be InfoLevel, got %v", cfg.Level)
	}
	if cfg.MaxSize != 10 {
		t.Errorf("expected default MaxSize to be 10, got %d", cfg.MaxSize)
	}
	if cfg.MaxBackups != 5 {
		t.Errorf("expected default MaxBackups to be 5, got %d", cfg.MaxBackups)
	}
	if !cfg.JSON {
		t.Error("expected default JSON to be true")
	}
	if !cfg.Compress {
		t.Error("expected default Compress to be true")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if level != tt.expected {
				t.Errorf("level = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestInitWithFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "taskbeat.log")

	cfg := DefaultConfig()
	cfg.FilePath = logPath
	cfg.Level = DebugLevel

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Get().WithIssueKey("ABC-1").Info("test message")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, `"issue_key":"ABC-1"`) {
		t.Errorf("log output missing issue_key field: %s", content)
	}
	if !strings.Contains(content, "test message") {
		t.Errorf("log output missing message: %s", content)
	}
}

func TestInitFromLogConfig_BadLevel(t *testing.T) {
	err := InitFromLogConfig(LoggingConfig{Level: "nonsense"})
	if err == nil {
		t.Error("expected error for invalid level")
	}
}
