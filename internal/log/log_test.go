package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})

	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error("error msg")

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("low levels leaked through: %q", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("missing high levels: %q", out)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelError, Output: &buf})

	logger.Info("before")
	logger.SetLevel(LevelDebug)
	logger.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("filtered message leaked: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("message missing after SetLevel: %q", out)
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf, Prefix: "keycast"})

	logger.Info("count is %d", 42)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("missing level marker: %q", out)
	}
	if !strings.Contains(out, "keycast: count is 42") {
		t.Errorf("missing formatted message: %q", out)
	}
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Level: LevelInfo, Output: &buf})
	child := base.WithComponent("matcher").WithField("seq", "gg")

	child.Info("progress")
	out := buf.String()
	if !strings.Contains(out, "component=matcher") || !strings.Contains(out, "seq=gg") {
		t.Errorf("missing fields: %q", out)
	}

	// The parent is unaffected.
	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("field leaked into parent: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNullDiscards(t *testing.T) {
	// Must not panic despite the nil output.
	Null.Error("dropped")
}
