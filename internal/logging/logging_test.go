package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != InfoLevel {
		t.Errorf("expected Level to be InfoLevel, got %v", cfg.Level)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected Output to be os.Stderr")
	}
	if cfg.Pretty != false {
		t.Errorf("expected Pretty to be false")
	}
	if cfg.TimeFormat != time.RFC3339 {
		t.Errorf("expected TimeFormat to be RFC3339, got %s", cfg.TimeFormat)
	}
	if cfg.File != "" {
		t.Errorf("expected File to be empty, got %s", cfg.File)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"  DEBUG  ", DebugLevel},
		{"INFO", InfoLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"ERROR", ErrorLevel},
		{"FATAL", FatalLevel},
		{"unknown", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInitWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("component", "store").Msg("resolved settings path")

	out := buf.String()
	if !strings.Contains(out, `"message":"resolved settings path"`) {
		t.Errorf("expected message field in output, got %s", out)
	}
	if !strings.Contains(out, `"component":"store"`) {
		t.Errorf("expected component field in output, got %s", out)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("suppressed")
	Info().Msg("also suppressed")
	Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Errorf("expected debug/info messages to be filtered, got %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("expected warn message in output, got %s", out)
	}
}

func TestInitFileOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "neight.log")
	Init(Config{Level: InfoLevel, Output: &buf, File: path})
	defer Init(DefaultConfig())

	Info().Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in log file, got %s", data)
	}
	if !strings.Contains(buf.String(), "written to file") {
		t.Errorf("expected message on Output as well, got %s", buf.String())
	}
}
