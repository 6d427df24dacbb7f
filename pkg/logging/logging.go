// Package logging provides structured JSON logging for the pagination engine.
//
// Log lines are JSON objects written through the standard log package with a
// level tag prefix, so embedding applications keep control of the final sink
// via log.SetOutput. Correlation IDs are uuid-v4 strings and can be attached
// as a persistent field to trace one navigation session across components.
//
// Trade-offs:
//   - Structured JSON vs human-readable: JSON chosen for parsing
//   - Standard log package vs a logging framework: the engine is an embedded
//     library and must not impose a global logging setup on its host
package logging

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/O-tero/pagination-engine/pkg/codec"
)

// Level controls which entries a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// levelOff is above every real level; used by Nop.
	levelOff
)

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
	default:
		return "OFF"
	}
}

// Fields is a free-form set of structured log fields.
type Fields map[string]any

// Logger writes leveled, structured JSON log entries. The zero value is not
// usable; construct with New or Nop.
type Logger struct {
	min  Level
	base Fields
}

// New creates a logger that emits entries at or above min.
func New(min Level) *Logger {
	return &Logger{min: min}
}

// Nop returns a logger that discards everything. Components take this as
// their default so hot paths stay quiet unless the host opts in.
func Nop() *Logger {
	return &Logger{min: levelOff}
}

// With returns a child logger whose entries always carry the given fields.
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{min: l.min, base: merged}
}

// Enabled reports whether entries at the given level would be emitted.
func (l *Logger) Enabled(level Level) bool {
	return level >= l.min
}

// Debug logs a debug-level entry.
func (l *Logger) Debug(msg string, fields Fields) { l.emit(LevelDebug, msg, fields) }

// Info logs an info-level entry.
func (l *Logger) Info(msg string, fields Fields) { l.emit(LevelInfo, msg, fields) }

// Warn logs a warn-level entry.
func (l *Logger) Warn(msg string, fields Fields) { l.emit(LevelWarn, msg, fields) }

// Error logs an error-level entry.
func (l *Logger) Error(msg string, fields Fields) { l.emit(LevelError, msg, fields) }

func (l *Logger) emit(level Level, msg string, fields Fields) {
	if level < l.min {
		return
	}

	entry := make(map[string]any, len(l.base)+len(fields)+3)
	entry["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level.String()
	entry["message"] = msg
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, err := codec.Marshal(entry, codec.JSON)
	if err != nil {
		// Fallback to plain logging if a field refuses to marshal.
		log.Printf("[%s] %s (unmarshalable fields: %v)", level, msg, err)
		return
	}

	log.Printf("[%s] %s", level, data)
}

// NewCorrelationID creates a new uuid-v4 correlation ID for tracing a
// logical sequence of operations across log entries and events.
func NewCorrelationID() string {
	return uuid.New().String()
}
