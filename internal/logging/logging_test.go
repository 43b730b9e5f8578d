package logging

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}

	// Should not panic
	logger.Debug("debug message")
	logger.Info("info message")
	logger.WithUserID("user-1").Info("with user")
	logger.WithField("key", "value").Warn("with field")
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	// Unknown level falls back to info rather than failing
	logger, err := NewLogger(Config{
		Level:  "verbose",
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
}

func TestNewDefaultLogger(t *testing.T) {
	logger, err := NewDefaultLogger()
	if err != nil {
		t.Fatalf("NewDefaultLogger failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
}
