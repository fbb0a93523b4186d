package dispatchcore

// Logger defines the interface for structured logging used throughout the
// dispatch core: every caller-error, operational, and invariant-violation
// condition in the error handling design is reported through it rather
// than by panicking.
//
// Arguments are variadic key-value pairs:
//
//	logger.Info("message", "key1", "value1", "key2", "value2")
//
// This shape is compatible with slog, zap's SugaredLogger, logrus, and
// similar structured loggers. ZapLogger wraps go.uber.org/zap; NopLogger
// is used when no logger is supplied.
type Logger interface {
	// Info logs a normal, expected event.
	Info(msg string, args ...any)

	// Error logs an operational or invariant-violation condition that the
	// dispatch loop nonetheless continues past.
	Error(msg string, args ...any)

	// Warn logs a caller-error condition: the call is rejected as a no-op
	// but the run continues.
	Warn(msg string, args ...any)

	// Debug logs low-volume diagnostic detail, e.g. idempotent no-ops.
	Debug(msg string, args ...any)
}
