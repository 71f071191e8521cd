package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a logging severity; messages below the logger's level are dropped.
type Level int

// Levels in increasing severity. LevelNone silences the logger.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// ANSI colors used when Color is enabled.
const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name case-insensitively.
// Unknown names default to INFO.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger writes "[TAG] [LEVEL] message" lines filtered by level.
// It is safe for concurrent use.
type Logger struct {
	mu     sync.RWMutex
	logger *log.Logger
	level  Level
	tag    string
	color  bool
}

// New returns a logger tagged APP writing to out at the given level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags),
		level:  level,
		tag:    "APP",
	}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

// Default returns an INFO logger on stderr.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// With returns a logger sharing the output and level but tagged with
// component, e.g. "SESSION" or "HTTP".
func (l *Logger) With(component string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &Logger{
		logger: l.logger,
		level:  l.level,
		tag:    strings.ToUpper(component),
		color:  l.color,
	}
}

// SetColor toggles ANSI coloring of the level tag.
func (l *Logger) SetColor(on bool) {
	l.mu.Lock()
	l.color = on
	l.mu.Unlock()
}

// Debugf logs at DEBUG level.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.emit(LevelDebug, colorCyan, format, v...)
}

// Infof logs at INFO level.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.emit(LevelInfo, colorGreen, format, v...)
}

// Warnf logs at WARN level.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.emit(LevelWarn, colorYellow, format, v...)
}

// Errorf logs at ERROR level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.emit(LevelError, colorRed, format, v...)
}

// SetLevel changes the minimum level written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

// Level returns the minimum level written.
func (l *Logger) Level() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) emit(level Level, color, format string, v ...interface{}) {
	if l == nil {
		return
	}
	l.mu.RLock()
	floor, tag, colored := l.level, l.tag, l.color
	l.mu.RUnlock()
	if level < floor {
		return
	}

	name := level.String()
	if colored {
		name = color + name + colorReset
	}
	l.logger.Printf("[%s] [%s] %s", tag, name, fmt.Sprintf(format, v...))
}
