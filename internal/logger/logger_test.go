package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{
		Debug:     false,
		ConfigDir: configDir,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Error("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{
		Debug:     true,
		ConfigDir: filepath.Join(t.TempDir(), "config"),
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
}

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, log.WarnLevel)

	Info("hidden")
	Warn("storage quota reached", "bytes", 42)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "storage quota reached") || !strings.Contains(out, "bytes=42") {
		t.Errorf("expected warning with key/value pair, got %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}
