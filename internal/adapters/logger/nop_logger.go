package logger

import (
	"sync"

	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// NopLogger discards every record.
type NopLogger struct{}

// NewNop returns a logger that discards everything.
func NewNop() ports.Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Close() error                 { return nil }

// Recorder keeps every record in memory. It is meant for tests.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// Record is one captured log call.
type Record struct {
	Level         string
	Message       string
	KeysAndValues []interface{}
}

func (r *Recorder) add(level, msg string, kv []interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Level: level, Message: msg, KeysAndValues: append([]interface{}(nil), kv...)})
}

func (r *Recorder) Debug(msg string, kv ...interface{}) { r.add("debug", msg, kv) }
func (r *Recorder) Info(msg string, kv ...interface{})  { r.add("info", msg, kv) }
func (r *Recorder) Warn(msg string, kv ...interface{})  { r.add("warn", msg, kv) }
func (r *Recorder) Error(msg string, kv ...interface{}) { r.add("error", msg, kv) }
func (r *Recorder) Close() error                        { return nil }

// Records returns the captured records at level, or all records when level is empty.
func (r *Recorder) Records(level string) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Record
	for _, rec := range r.records {
		if level == "" || rec.Level == level {
			out = append(out, rec)
		}
	}
	return out
}
