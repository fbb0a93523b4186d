package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketsim/dispatchcore/schedule"
)

func TestHeapOrdersByTimeThenSequence(t *testing.T) {
	h := schedule.New()
	h.Push(schedule.Event{ScheduledTime: 100, Sequence: 3})
	h.Push(schedule.Event{ScheduledTime: 50, Sequence: 1})
	h.Push(schedule.Event{ScheduledTime: 100, Sequence: 2})

	first, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, schedule.Timestamp(50), first.ScheduledTime)

	second, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, schedule.Sequence(2), second.Sequence)

	third, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, schedule.Sequence(3), third.Sequence)
}

func TestPeekDoesNotRemove(t *testing.T) {
	h := schedule.New()
	h.Push(schedule.Event{ScheduledTime: 10, Sequence: 1})

	peeked, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, schedule.Timestamp(10), peeked.ScheduledTime)
	assert.Equal(t, 1, h.Len())
}

func TestPopEmptyHeap(t *testing.T) {
	h := schedule.New()
	_, ok := h.Pop()
	assert.False(t, ok)
}

func TestNoEventViolatesHeapOrderInvariant(t *testing.T) {
	h := schedule.New()
	events := []schedule.Event{
		{ScheduledTime: 5, Sequence: 1},
		{ScheduledTime: 5, Sequence: 2},
		{ScheduledTime: 3, Sequence: 3},
		{ScheduledTime: 8, Sequence: 4},
	}
	for _, ev := range events {
		h.Push(ev)
	}

	var lastTime schedule.Timestamp
	var lastSeq schedule.Sequence
	first := true
	for h.Len() > 0 {
		ev, _ := h.Pop()
		if !first {
			less := ev.ScheduledTime > lastTime || (ev.ScheduledTime == lastTime && ev.Sequence > lastSeq)
			assert.True(t, less, "heap popped out of order")
		}
		lastTime, lastSeq, first = ev.ScheduledTime, ev.Sequence, false
	}
}
