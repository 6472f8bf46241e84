package logger

import (
	"io"
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// Options selects where and how log records are written.
type Options struct {
	Output     io.Writer
	JSON       bool
	AddSource  bool
	BufferSize int
}

// DefaultOptions returns text output to stdout with a 1 MiB async buffer.
func DefaultOptions() Options {
	return Options{
		Output:     os.Stdout,
		JSON:       false,
		AddSource:  true,
		BufferSize: 1024 * 1024,
	}
}

// StdLogger adapts l.Logger to ports.Logger.
type StdLogger struct {
	logger l.Logger
}

// New creates a logger with DefaultOptions.
func New() (ports.Logger, error) {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a logger writing to opts.Output.
func NewWithOptions(opts Options) (ports.Logger, error) {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return NewWithConfig(l.Config{
		Output:      opts.Output,
		JsonFormat:  opts.JSON,
		AsyncWrite:  true,
		BufferSize:  opts.BufferSize,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   opts.AddSource,
		Metrics:     false,
	})
}

// NewWithConfig creates a logger from a raw l.Config.
func NewWithConfig(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}
	return &StdLogger{logger: logger}, nil
}

// FromExisting wraps an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

// Debug logs a debug message.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes buffered records.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}
