package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log lines so tests can check conversion output.
type TestLogger struct {
	*zerolog.Logger
	buf *bytes.Buffer
}

// NewTestLogger creates a trace-level logger writing JSON to memory. The
// global level is lowered for the test and restored afterwards.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &logger, buf: buf}
}

// Lines returns the recorded lines.
func (tl *TestLogger) Lines() []string {
	out := strings.TrimSpace(tl.buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// Entries decodes every recorded line. Lines that are not JSON objects
// are skipped.
func (tl *TestLogger) Entries() []map[string]any {
	var entries []map[string]any
	for _, line := range tl.Lines() {
		var e map[string]any
		if json.Unmarshal([]byte(line), &e) == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

// Find returns the first entry whose message is msg.
func (tl *TestLogger) Find(msg string) (map[string]any, bool) {
	for _, e := range tl.Entries() {
		if e[zerolog.MessageFieldName] == msg {
			return e, true
		}
	}
	return nil, false
}

// AssertContains fails the test when no recorded line contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.buf.String(), substr) {
		t.Errorf("log output does not contain %q\noutput:\n%s", substr, tl.buf.String())
	}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
