package logger

import (
	"bytes"
	"strings"
	"testing"
)

// =============================================================================
// Logger Tests
// =============================================================================

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := New(Config{
		Level:  level,
		Pretty: false,
		Output: buf,
	})
	return l, buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message logged at info level: %q", buf.String())
	}

	l.Info("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("info message missing: %q", buf.String())
	}
}

func TestLoggerSetLevel(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.SetLevel(DebugLevel)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("debug message missing after SetLevel: %q", buf.String())
	}
}

func TestLoggerWithComponent(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.WithComponent("filter").Info("msg")
	if !strings.Contains(buf.String(), `"component":"filter"`) {
		t.Errorf("component field missing: %q", buf.String())
	}
}

func TestLoggerFormatted(t *testing.T) {
	l, buf := newBufferLogger(InfoLevel)

	l.Infof("count=%d", 7)
	if !strings.Contains(buf.String(), "count=7") {
		t.Errorf("formatted message missing: %q", buf.String())
	}
}

func TestDropAndAcceptEvents(t *testing.T) {
	l, buf := newBufferLogger(DebugLevel)

	l.DropEvent("https://x.com/app.js", "static_asset")
	if !strings.Contains(buf.String(), "static_asset") {
		t.Errorf("drop reason missing: %q", buf.String())
	}

	buf.Reset()
	l.AcceptEvent("GET", "https://api.x.com/v1/users", "api.x.com")
	out := buf.String()
	if !strings.Contains(out, "api.x.com") || !strings.Contains(out, "GET") {
		t.Errorf("accept fields missing: %q", out)
	}
}

func TestNopLogger(t *testing.T) {
	// Must not panic; output goes nowhere.
	l := Nop()
	l.Info("discarded")
	l.DropEvent("u", "r")
	l.Event(InfoLevel).Str("k", "v").Msg("discarded")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil || lvl != DebugLevel {
		t.Errorf("ParseLevel(debug) = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("nonsense"); err == nil {
		t.Error("ParseLevel(nonsense) should fail")
	}
}
