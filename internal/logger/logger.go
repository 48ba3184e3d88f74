package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// VerboseChecker reports whether debug and info output is enabled
type VerboseChecker interface {
	IsVerbose() bool
}

// Logger writes leveled, component-tagged lines. Debug and Info are gated on
// the verbose checker; Warn and Error are always written.
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	out            *output
}

// output is shared by a logger and every logger derived from it
type output struct {
	mu     sync.Mutex
	writer io.Writer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a logger writing to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return NewWithWriter(component, verboseChecker, os.Stderr)
}

// NewWithWriter creates a logger writing to w. The TUI uses this to keep log
// lines off the alternate screen.
func NewWithWriter(component string, verboseChecker VerboseChecker, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		out:            &output{writer: w},
	}
}

// NewWithCallback creates a logger whose verbosity is read from a callback
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithWriter("", nil, io.Discard)
}

// WithComponent derives a logger for another component sharing the same output
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		out:            l.out,
	}
}

// SetOutput redirects this logger and all loggers derived from it
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	l.out.mu.Lock()
	l.out.writer = w
	l.out.mu.Unlock()
}

type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", msg, nil, args...)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", msg, nil, args...)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write("WARN", msg, nil, args...)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write("ERROR", msg, nil, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", msg, fields, args...)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", msg, fields, args...)
	}
}

// WarnWithFields logs a warning with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("WARN", msg, fields, args...)
}

// ErrorWithFields logs an error with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("ERROR", msg, fields, args...)
}

func (l *Logger) write(level, msg string, fields []Field, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05.000")
	component := l.component
	if component == "" {
		component = "main"
	}

	formattedMsg := msg
	if len(args) > 0 {
		formattedMsg = fmt.Sprintf(msg, args...)
	}

	var fieldsStr string
	if len(fields) > 0 {
		fieldStrings := make([]string, 0, len(fields))
		for _, field := range fields {
			fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
		}
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(fieldStrings, " "))
	}

	logLine := fmt.Sprintf("[%s] %s [%s] %s%s\n", timestamp, level, component, formattedMsg, fieldsStr)

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	// Nowhere to report a failed log write
	_, _ = io.WriteString(l.out.writer, logLine)
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Slot(name string) Field {
	return Field{Key: "slot", Value: name}
}

func State(state fmt.Stringer) Field {
	return Field{Key: "state", Value: state}
}
