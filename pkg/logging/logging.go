package logging

import (
	"github.com/go-logr/logr"
)

const (
	LEVEL_INFO  = 0
	LEVEL_DEBUG = 1
	LEVEL_TRACE = 2
)

// NewLogger wraps log. A zero logr.Logger is replaced with one that discards everything.
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a Logger that discards all output.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// Logger is a struct that wraps the logr.Logger interface.
type Logger struct {
	log logr.Logger
}

// Log methods (minimizing footprint in the rest of the library)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}

// Enabled reports whether messages at level would be written.
func (l *Logger) Enabled(level int) bool {
	return l.log.V(level).Enabled()
}

// WithName returns a Logger whose messages are prefixed with name.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{log: l.log.WithName(name)}
}

// WithValues returns a Logger that adds keysAndValues to every message.
func (l *Logger) WithValues(keysAndValues ...interface{}) *Logger {
	return &Logger{log: l.log.WithValues(keysAndValues...)}
}
