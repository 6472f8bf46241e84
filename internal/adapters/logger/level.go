package logger

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// Level is a minimum severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"debug", "info", "warn", "error"}

// String returns the lower-case level name.
func (lv Level) String() string {
	if lv < LevelDebug || lv > LevelError {
		return fmt.Sprintf("Level(%d)", int(lv))
	}
	return levelNames[lv]
}

// ParseLevel accepts debug, info, warn or error.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidConfig, name)
}

// LevelFilter drops records below a minimum level.
type LevelFilter struct {
	next ports.Logger
	min  Level
}

// WithLevel wraps next so that only records at minLevel or above pass through.
func WithLevel(next ports.Logger, minLevel Level) ports.Logger {
	return &LevelFilter{next: next, min: minLevel}
}

// Debug forwards a debug message when the minimum level allows it.
func (f *LevelFilter) Debug(msg string, keysAndValues ...interface{}) {
	if f.min <= LevelDebug {
		f.next.Debug(msg, keysAndValues...)
	}
}

// Info forwards an info message when the minimum level allows it.
func (f *LevelFilter) Info(msg string, keysAndValues ...interface{}) {
	if f.min <= LevelInfo {
		f.next.Info(msg, keysAndValues...)
	}
}

// Warn forwards a warning message when the minimum level allows it.
func (f *LevelFilter) Warn(msg string, keysAndValues ...interface{}) {
	if f.min <= LevelWarn {
		f.next.Warn(msg, keysAndValues...)
	}
}

// Error forwards an error message.
func (f *LevelFilter) Error(msg string, keysAndValues ...interface{}) {
	f.next.Error(msg, keysAndValues...)
}

// Close closes the wrapped logger.
func (f *LevelFilter) Close() error {
	return f.next.Close()
}
