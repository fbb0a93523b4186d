package dispatchcore

// LoggerDecorator wraps a Logger to add behavior without modifying the
// underlying implementation.
type LoggerDecorator interface {
	Logger

	// GetInnerLogger returns the wrapped logger.
	GetInnerLogger() Logger
}

// BaseLoggerDecorator forwards every call to the wrapped logger unchanged;
// it exists so other decorators can embed it and override only what they
// need.
type BaseLoggerDecorator struct {
	inner Logger
}

// NewBaseLoggerDecorator wraps inner with a pass-through decorator.
func NewBaseLoggerDecorator(inner Logger) *BaseLoggerDecorator {
	return &BaseLoggerDecorator{inner: inner}
}

// GetInnerLogger returns the wrapped logger.
func (d *BaseLoggerDecorator) GetInnerLogger() Logger {
	return d.inner
}

func (d *BaseLoggerDecorator) Info(msg string, args ...any) {
	d.inner.Info(msg, args...)
}

func (d *BaseLoggerDecorator) Error(msg string, args ...any) {
	d.inner.Error(msg, args...)
}

func (d *BaseLoggerDecorator) Warn(msg string, args ...any) {
	d.inner.Warn(msg, args...)
}

func (d *BaseLoggerDecorator) Debug(msg string, args ...any) {
	d.inner.Debug(msg, args...)
}

// FieldLogger injects a fixed set of key-value pairs into every log call,
// used to stamp agent id / run id onto each log line an agent emits
// without every call site having to repeat them.
type FieldLogger struct {
	*BaseLoggerDecorator
	fields []any
}

// NewFieldLogger returns a decorator that injects fields into every call
// to inner.
func NewFieldLogger(inner Logger, fields ...any) *FieldLogger {
	return &FieldLogger{
		BaseLoggerDecorator: NewBaseLoggerDecorator(inner),
		fields:              fields,
	}
}

func (d *FieldLogger) combine(args []any) []any {
	if len(d.fields) == 0 {
		return args
	}
	if len(args) == 0 {
		return d.fields
	}
	combined := make([]any, 0, len(d.fields)+len(args))
	combined = append(combined, d.fields...)
	combined = append(combined, args...)
	return combined
}

func (d *FieldLogger) Info(msg string, args ...any) {
	d.inner.Info(msg, d.combine(args)...)
}

func (d *FieldLogger) Error(msg string, args ...any) {
	d.inner.Error(msg, d.combine(args)...)
}

func (d *FieldLogger) Warn(msg string, args ...any) {
	d.inner.Warn(msg, d.combine(args)...)
}

func (d *FieldLogger) Debug(msg string, args ...any) {
	d.inner.Debug(msg, d.combine(args)...)
}
