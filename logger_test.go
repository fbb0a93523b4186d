package dispatchcore

import "testing"

// testLogger is a minimal Logger used by this package's own tests. It is
// defined in a _test.go file, so other packages' tests cannot use it.
type testLogger struct {
	t        *testing.T
	infos    []logLine
	warns    []logLine
	errors   []logLine
	debugs   []logLine
}

type logLine struct {
	msg  string
	args []any
}

// NewTestLogger returns a Logger that records every call and also writes
// it to t.Log, for use in package tests that need to assert on log
// output.
func NewTestLogger(t *testing.T) *testLogger {
	return &testLogger{t: t}
}

func (l *testLogger) Info(msg string, args ...any) {
	l.infos = append(l.infos, logLine{msg, args})
	l.t.Log("INFO", msg, args)
}

func (l *testLogger) Error(msg string, args ...any) {
	l.errors = append(l.errors, logLine{msg, args})
	l.t.Log("ERROR", msg, args)
}

func (l *testLogger) Warn(msg string, args ...any) {
	l.warns = append(l.warns, logLine{msg, args})
	l.t.Log("WARN", msg, args)
}

func (l *testLogger) Debug(msg string, args ...any) {
	l.debugs = append(l.debugs, logLine{msg, args})
	l.t.Log("DEBUG", msg, args)
}
