package agent

import (
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/schedule"

	dispatchcore "github.com/marketsim/dispatchcore"
)

// BaseAgent is the convenience concrete base described for the dispatch
// core's agent model: it owns the reentrancy flag and per-agent reentrant
// queue, dispatches incoming events to a strongly-typed handler method,
// and provides publish/self-scheduling helpers that fill in publisher =
// self.ID(). Concrete agents embed *BaseAgent and their own EventHandlers
// overrides.
type BaseAgent struct {
	id         dispatchcore.AgentID
	bus        dispatchcore.Bus
	handlers   EventHandlers
	processing bool
	reentrant  []schedule.Event

	// rawLogger is the logger given to SetLogger, before agent_id
	// injection; Logger() wraps it fresh on every call so it always
	// reflects the agent's current id.
	rawLogger dispatchcore.Logger

	// lastProcessedTs records, per (stream, publisher), the bus time of
	// the most recently processed event — observability only, never
	// consulted for ordering decisions (the bus owns ordering).
	lastProcessedTs map[streamPublisherKey]int64

	// AfterProcess, if set, is invoked after every dispatched handler
	// call. It exists for tests that need to observe exactly what an
	// agent received without implementing every EventHandlers method.
	AfterProcess func(ev event.Event, ctx HandlerContext)
}

type streamPublisherKey struct {
	stream    dispatchcore.StreamID
	publisher dispatchcore.AgentID
}

// NewBaseAgent returns a BaseAgent that dispatches incoming events to
// handlers. handlers is typically the concrete agent itself, embedding
// NoOpHandlers and overriding the event kinds it cares about.
func NewBaseAgent(handlers EventHandlers) *BaseAgent {
	return &BaseAgent{
		handlers:        handlers,
		lastProcessedTs: make(map[streamPublisherKey]int64),
		rawLogger:       dispatchcore.NopLogger{},
	}
}

func (a *BaseAgent) ID() dispatchcore.AgentID { return a.id }

func (a *BaseAgent) SetID(id dispatchcore.AgentID) { a.id = id }

func (a *BaseAgent) SetBus(bus dispatchcore.Bus) { a.bus = bus }

// Bus returns the agent's wired bus, or nil if not (yet) registered.
func (a *BaseAgent) Bus() dispatchcore.Bus { return a.bus }

// SetLogger wires the logger a concrete agent's handlers and this base
// should use for diagnostics. A nil logger is replaced with NopLogger.
func (a *BaseAgent) SetLogger(logger dispatchcore.Logger) {
	if logger == nil {
		logger = dispatchcore.NopLogger{}
	}
	a.rawLogger = logger
}

// Logger returns this agent's logger with its current agent id injected
// into every call, the way the bus stamps its run id onto its own
// logger.
func (a *BaseAgent) Logger() dispatchcore.Logger {
	return dispatchcore.NewFieldLogger(a.rawLogger, "agent_id", uint64(a.id))
}

func (a *BaseAgent) IsProcessing() bool { return a.processing }

func (a *BaseAgent) SetProcessing(processing bool) { a.processing = processing }

func (a *BaseAgent) QueueReentrant(se schedule.Event) {
	a.reentrant = append(a.reentrant, se)
}

// FlushReentrantQueue pushes every captured reentrant event onto the bus
// heap unchanged, preserving their scheduled_time and sequence_number,
// then clears the queue. The bus calls this once immediately after
// Process returns; it is never invoked while the agent is processing.
func (a *BaseAgent) FlushReentrantQueue() {
	if len(a.reentrant) == 0 {
		return
	}
	pending := a.reentrant
	a.reentrant = nil
	a.Logger().Debug("flushing reentrant queue", "count", len(pending))
	for _, se := range pending {
		a.bus.EnqueueScheduled(se)
	}
}

// Process visits ev and invokes the matching handler method, then records
// the per-(stream, publisher) diagnostic timestamp.
func (a *BaseAgent) Process(ev event.Event, topicID dispatchcore.TopicID, publisherID dispatchcore.AgentID, now int64, streamID dispatchcore.StreamID, seq schedule.Sequence) {
	ctx := HandlerContext{
		TopicID:     topicID,
		PublisherID: publisherID,
		Now:         now,
		StreamID:    streamID,
		Seq:         seq,
	}
	dispatch(a.handlers, ev, ctx)
	a.lastProcessedTs[streamPublisherKey{streamID, publisherID}] = now
	if a.AfterProcess != nil {
		a.AfterProcess(ev, ctx)
	}
}

// LastProcessedAt returns the bus time of the most recently processed
// event for (stream, publisher), for observability only.
func (a *BaseAgent) LastProcessedAt(stream dispatchcore.StreamID, publisher dispatchcore.AgentID) (int64, bool) {
	ts, ok := a.lastProcessedTs[streamPublisherKey{stream, publisher}]
	return ts, ok
}

// --- publish helpers: thin wrappers filling publisher = self.ID() ---

// Publish routes ev to topic's subscribers through the bus, attributing
// the publish to this agent.
func (a *BaseAgent) Publish(topicStr string, ev event.Event, stream string) error {
	return a.bus.Publish(a.id, topicStr, ev, stream)
}

// PublishTo schedules ev for a specific subscriber via ScheduleAt,
// bypassing latency sampling, attributing the publish to this agent.
func (a *BaseAgent) PublishTo(subscriber dispatchcore.AgentID, topicStr string, ev event.Event, targetTime int64, stream string) error {
	return a.bus.ScheduleAt(a.id, subscriber, topicStr, ev, targetTime, stream)
}

// ScheduleForSelfAt self-schedules ev to be delivered back to this same
// agent no earlier than targetTime, bypassing latency sampling. This is
// the intended path for internal timers (e.g. expiration checks); it must
// never be used as an implicit substitute for Publish.
func (a *BaseAgent) ScheduleForSelfAt(targetTime int64, topicStr string, ev event.Event, stream string) error {
	return a.bus.ScheduleAt(a.id, a.id, topicStr, ev, targetTime, stream)
}

// Subscribe adds a subscription for this agent.
func (a *BaseAgent) Subscribe(topicStr string) error {
	return a.bus.Subscribe(a.id, topicStr)
}

// Unsubscribe removes a subscription for this agent.
func (a *BaseAgent) Unsubscribe(topicStr string) {
	a.bus.Unsubscribe(a.id, topicStr)
}

var _ dispatchcore.Agent = (*BaseAgent)(nil)
