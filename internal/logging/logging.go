// Package logging provides the small leveled logger used by the Reader to
// report non-fatal diagnostics (unknown subheader signatures, col_count
// mismatches, header_length surprises) without pulling in a third-party
// logging dependency for what is, at this layer, a handful of warn/debug lines.
package logging

import (
	"log"
	"os"
)

// Level selects the minimum severity that reaches the underlying logger.
type Level int

const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
	LevelSilent
)

// Logger is a minimal leveled wrapper around the standard library logger.
type Logger struct {
	level Level
	std   *log.Logger
}

// New creates a Logger writing to stderr at the given level.
func New(level Level) *Logger {
	return &Logger{
		level: level,
		std:   log.New(os.Stderr, "sas7bdat: ", log.LstdFlags),
	}
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.level <= LevelDebug {
		l.std.Printf("DEBUG "+format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	if l.level <= LevelWarn {
		l.std.Printf("WARN "+format, args...)
	}
}

func (l *Logger) Errorf(format string, args ...any) {
	if l.level <= LevelError {
		l.std.Printf("ERROR "+format, args...)
	}
}
