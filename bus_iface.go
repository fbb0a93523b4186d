package dispatchcore

import (
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/latency"
	"github.com/marketsim/dispatchcore/schedule"
)

// Bus is the interface agents and drivers call into. Dispatcher is the
// core's only implementation; it is expressed as an interface so agents
// in the agent package can depend on it without importing the concrete
// type, and so tests can substitute a fake.
type Bus interface {
	// Register assigns the next free AgentID to a, wires a's bus
	// pointer, and returns the assigned id.
	Register(a Agent) AgentID

	// RegisterWithID registers a under a caller-chosen id, for pinning
	// well-known system agents to fixed ids. A collision with an
	// already-registered id is a caller error: the existing registration
	// is kept and ErrDuplicateAgentID is returned.
	RegisterWithID(id AgentID, a Agent) error

	// Deregister unsubscribes id from every topic and pattern it holds,
	// purges its last-scheduled-time entries, clears its bus pointer,
	// and removes it from the registry. Deregistering an unknown id is a
	// no-op.
	Deregister(id AgentID)

	// Subscribe adds an exact or wildcard subscription for id, depending
	// on whether topicStr contains a wildcard segment.
	Subscribe(id AgentID, topicStr string) error

	// Unsubscribe removes a previously added subscription.
	Unsubscribe(id AgentID, topicStr string)

	// Publish routes ev to every subscriber of topicStr (exact ∪
	// matching wildcard, deduplicated), sampling latency per subscriber
	// and respecting per-(stream, subscriber) monotonicity. topicStr must
	// be concrete (no wildcard segments). stream may be "" for no stream.
	Publish(publisher AgentID, topicStr string, ev event.Event, stream string) error

	// ScheduleAt enqueues ev directly for subscriber at (at least)
	// targetTime, bypassing latency sampling. Used for self-scheduled
	// timers.
	ScheduleAt(publisher, subscriber AgentID, topicStr string, ev event.Event, targetTime int64, stream string) error

	// EnqueueScheduled pushes a previously-computed scheduled event
	// directly onto the heap, unchanged. This is the mechanism
	// FlushReentrantQueue uses to move reentrant events back onto the
	// main heap; it is not meant to be called from ordinary agent code.
	EnqueueScheduled(se schedule.Event)

	// Step pops the earliest scheduled event, advances the clock,
	// and invokes its target's handler. ok is false if the heap is
	// empty.
	Step() (se schedule.Event, ok bool)

	// Peek returns a copy of the earliest scheduled event without
	// popping it.
	Peek() (se schedule.Event, ok bool)

	// RegisterPrePublishHook appends hook to the pre-publish chain,
	// rejecting a hook already registered (by identity) idempotently.
	RegisterPrePublishHook(hook PrePublishHook)

	// DeregisterPrePublishHook removes hook from the chain if present.
	DeregisterPrePublishHook(hook PrePublishHook)

	// SetInterAgentLatency configures the latency parameters used for
	// publishes from pub to sub, overriding the bus default.
	SetInterAgentLatency(pub, sub AgentID, params latency.Params)

	// ClearInterAgentLatency removes a previously configured override,
	// falling back to the bus default.
	ClearInterAgentLatency(pub, sub AgentID)

	// SetDefaultLatency replaces the bus-wide default latency
	// parameters used for pairs with no explicit override.
	SetDefaultLatency(params latency.Params)

	// CurrentTime returns the bus clock, in microseconds.
	CurrentTime() int64

	// QueueSize returns the number of events currently queued in the
	// scheduler.
	QueueSize() int

	// InternTopic and InternStream intern a name into their respective
	// (disjoint) id spaces.
	InternTopic(s string) TopicID
	InternStream(s string) StreamID

	// ResolveTopic and ResolveStream reverse InternTopic/InternStream.
	ResolveTopic(id TopicID) (string, bool)
	ResolveStream(id StreamID) (string, bool)
}
