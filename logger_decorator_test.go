package dispatchcore

import (
	"testing"
)

func TestFieldLoggerInjectsFields(t *testing.T) {
	inner := NewTestLogger(t)
	fl := NewFieldLogger(inner, "agent_id", 7)

	fl.Info("tick", "topic", "x.y")

	if len(inner.infos) != 1 {
		t.Fatalf("expected 1 info line, got %d", len(inner.infos))
	}
	got := inner.infos[0].args
	want := []any{"agent_id", 7, "topic", "x.y"}
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("args[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFieldLoggerWithNoExtraArgs(t *testing.T) {
	inner := NewTestLogger(t)
	fl := NewFieldLogger(inner, "run_id", "abc")

	fl.Warn("caller error")

	if len(inner.warns) != 1 {
		t.Fatalf("expected 1 warn line, got %d", len(inner.warns))
	}
	if len(inner.warns[0].args) != 2 {
		t.Fatalf("args = %v, want 2 elements", inner.warns[0].args)
	}
}

func TestBaseLoggerDecoratorPassesThrough(t *testing.T) {
	inner := NewTestLogger(t)
	base := NewBaseLoggerDecorator(inner)

	base.Debug("hello")

	if len(inner.debugs) != 1 {
		t.Fatalf("expected 1 debug line, got %d", len(inner.debugs))
	}
	if base.GetInnerLogger() != Logger(inner) {
		t.Fatalf("GetInnerLogger did not return the wrapped logger")
	}
}
