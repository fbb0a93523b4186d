// Package schedule implements the bus's scheduler: a min-heap of scheduled
// events ordered by (scheduled_time, sequence_number), backed by
// container/heap the way a top-k result heap elsewhere in this codebase's
// ancestry is built.
package schedule

import "container/heap"

// Timestamp is a microsecond-resolution point on the bus clock.
type Timestamp int64

// Sequence is the bus-wide monotonically increasing tie-breaker assigned
// at enqueue time.
type Sequence uint64

// Event is the unit stored in the scheduler. StreamID of 0 means the
// publish carried no stream (ordering is then governed only by the heap's
// (ScheduledTime, Sequence) key).
type Event struct {
	ScheduledTime Timestamp
	TopicID       uint64
	PublisherID   uint64
	SubscriberID  uint64
	PublishTime   Timestamp
	StreamID      uint64
	Sequence      Sequence
	Payload       any // concrete event.Event, kept as any to avoid an import cycle
}

// eventHeap is a min-heap of Event ordered by (ScheduledTime, Sequence).
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].ScheduledTime != h[j].ScheduledTime {
		return h[i].ScheduledTime < h[j].ScheduledTime
	}
	return h[i].Sequence < h[j].Sequence
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Heap is the scheduler's priority queue. It is not safe for concurrent
// use; the dispatch core's single-threaded cooperative model means every
// call happens on the one active dispatch path.
type Heap struct {
	items eventHeap
}

// New returns an empty scheduler heap.
func New() *Heap {
	h := &Heap{items: make(eventHeap, 0)}
	heap.Init(&h.items)
	return h
}

// Push inserts ev into the heap.
func (s *Heap) Push(ev Event) {
	heap.Push(&s.items, ev)
}

// Pop removes and returns the earliest event. ok is false if the heap is
// empty.
func (s *Heap) Pop() (ev Event, ok bool) {
	if len(s.items) == 0 {
		return Event{}, false
	}
	return heap.Pop(&s.items).(Event), true
}

// Peek returns a copy of the earliest event without removing it. ok is
// false if the heap is empty.
func (s *Heap) Peek() (ev Event, ok bool) {
	if len(s.items) == 0 {
		return Event{}, false
	}
	return s.items[0], true
}

// Len returns the number of events currently queued.
func (s *Heap) Len() int {
	return len(s.items)
}
