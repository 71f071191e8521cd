package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"Error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, LevelFromString(in), "input %q", in)
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)

	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w %d", 1)
	l.Errorf("e %s", "x")

	out := buf.String()
	assert.NotContains(t, out, "[DEBUG]")
	assert.NotContains(t, out, "[INFO]")
	assert.Contains(t, out, "[APP] [WARN] w 1")
	assert.Contains(t, out, "[APP] [ERROR] e x")
}

func TestLoggerWithTag(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug).With("session")

	l.Debugf("run %s", "abc")
	assert.Contains(t, buf.String(), "[SESSION] [DEBUG] run abc")
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelNone)
	l.Errorf("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(LevelError)
	assert.Equal(t, LevelError, l.Level())
	l.Errorf("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "shown"))
}

func TestLoggerColor(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.SetColor(true)
	l.Infof("hello")
	assert.Contains(t, buf.String(), colorGreen+"INFO"+colorReset)
}

func TestNilAndDiscard(t *testing.T) {
	var l *Logger
	assert.NotPanics(t, func() { l.Infof("nothing") })
	assert.NotPanics(t, func() { Discard().Errorf("nothing") })
}
