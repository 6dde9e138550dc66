package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "nimbus"})

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warning")
	logger.Error("visible error: %d", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed levels were written:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] nimbus: visible warning") {
		t.Errorf("warning missing:\n%s", out)
	}
	if !strings.Contains(out, "[ERROR] nimbus: visible error: 7") {
		t.Errorf("formatted error missing:\n%s", out)
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info written at error level: %s", buf.String())
	}

	logger.SetLevel(LogLevelDebug)
	logger.Debug("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("debug missing after SetLevel:\n%s", buf.String())
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("float").Info("ready")
	if !strings.Contains(buf.String(), "{component=float}") {
		t.Errorf("component field missing:\n%s", buf.String())
	}

	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("field leaked into parent logger:\n%s", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Error("discarded")
	NullLogger.WithComponent("x").Info("discarded")
}
