package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level controls which diagnostics are emitted.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelInfo
	LevelTrace
)

// String returns a string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelError:
		return "error"
	case LevelInfo:
		return "info"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name. Unknown names are an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return LevelNone, nil
	case "", "error":
		return LevelError, nil
	case "info":
		return LevelInfo, nil
	case "trace", "debug":
		return LevelTrace, nil
	default:
		return LevelNone, fmt.Errorf("unknown log level %q (expected none, error, info, trace)", s)
	}
}

// Logger receives diagnostics from the history engine.
type Logger interface {
	Errorf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Tracef(format string, args ...interface{})
}

// ConsoleLogger writes colored diagnostics to a writer (stderr by default).
type ConsoleLogger struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
}

// NewConsoleLogger creates a logger writing to stderr at the given level.
func NewConsoleLogger(level Level) *ConsoleLogger {
	return NewWriterLogger(os.Stderr, level)
}

// NewWriterLogger creates a logger writing to w at the given level.
func NewWriterLogger(w io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{out: w, level: level}
}

var (
	errorColor = color.New(color.FgRed)
	infoColor  = color.New(color.FgBlue)
	traceColor = color.New(color.FgCyan)
)

func (l *ConsoleLogger) write(min Level, c *color.Color, prefix, format string, args ...interface{}) {
	if l.level < min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	c.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Errorf logs an error diagnostic.
func (l *ConsoleLogger) Errorf(format string, args ...interface{}) {
	l.write(LevelError, errorColor, "error:", format, args...)
}

// Infof logs an informational message.
func (l *ConsoleLogger) Infof(format string, args ...interface{}) {
	l.write(LevelInfo, infoColor, "info:", format, args...)
}

// Tracef logs a trace message.
func (l *ConsoleLogger) Tracef(format string, args ...interface{}) {
	l.write(LevelTrace, traceColor, "trace:", format, args...)
}

type discard struct{}

func (discard) Errorf(string, ...interface{}) {}
func (discard) Infof(string, ...interface{})  {}
func (discard) Tracef(string, ...interface{}) {}

// Discard drops every message.
var Discard Logger = discard{}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}

// Compile-time interface conformance checks.
var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*Recorder)(nil)
)
