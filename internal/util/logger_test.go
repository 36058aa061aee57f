package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevels(t *testing.T) {
	logger, err := NewLogger("debug", "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug entries")
	}

	logger, err = NewLogger("nonsense", "")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("unknown level should fall back to info")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("fallback logger should enable info entries")
	}
}

func TestNewLoggerFileSink(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "bot.log")

	logger, err := NewLogger("info", logFile)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("combo data loaded")
	logger.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "combo data loaded") {
		t.Errorf("log file missing entry, got %q", data)
	}
}
