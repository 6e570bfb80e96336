package logger

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	l := New()
	if l.GetLevel() != slog.LevelInfo {
		t.Errorf("default level = %v, want info", l.GetLevel())
	}
	l.SetLevel(slog.LevelError)
	if l.GetLevel() != slog.LevelError {
		t.Errorf("level = %v, want error", l.GetLevel())
	}
}

func TestHTTPLoggingToggle(t *testing.T) {
	l := New()
	if l.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should start disabled")
	}
	l.EnableHTTPLogging()
	if !l.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should be enabled")
	}
	l.DisableHTTPLogging()
	if l.IsHTTPLoggingEnabled() {
		t.Error("HTTP logging should be disabled again")
	}
}
