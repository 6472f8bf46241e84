package ports

// Logger is the structured, leveled logger used throughout the module.
// Key/value pairs follow the message, as in logger.Info("msg", "k", v).
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}
