package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	log, err := New("production", "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info must be disabled at warn level")
	}
	if !log.Core().Enabled(zapcore.WarnLevel) {
		t.Fatalf("warn must be enabled")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		log, err := New("development", level)
		if err != nil {
			t.Fatalf("new logger(%q): %v", level, err)
		}
		if log.Core().Enabled(zapcore.DebugLevel) {
			t.Fatalf("level %q: debug must be disabled", level)
		}
		if !log.Core().Enabled(zapcore.InfoLevel) {
			t.Fatalf("level %q: info must be enabled", level)
		}
	}
}
