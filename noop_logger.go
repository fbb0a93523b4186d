package dispatchcore

// NopLogger discards every log call. It is useful as a default when no
// logger is supplied, and in tests that don't assert on log output.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Debug(string, ...any) {}
