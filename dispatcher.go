package dispatchcore

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/interner"
	"github.com/marketsim/dispatchcore/latency"
	"github.com/marketsim/dispatchcore/schedule"
	"github.com/marketsim/dispatchcore/topic"
)

// streamSubscriberKey identifies a (stream, subscriber) pair for the
// per-pair monotonicity map.
type streamSubscriberKey struct {
	stream     StreamID
	subscriber AgentID
}

// agentPairKey identifies an ordered (publisher, subscriber) pair for
// latency parameter lookups.
type agentPairKey struct {
	publisher  AgentID
	subscriber AgentID
}

// Dispatcher is the core's single-threaded, cooperative implementation of
// Bus. It owns the interner, trie, wildcard index, scheduler heap,
// sequence counter, latency table, pre-publish hook chain, and RNG; all
// of its exported methods are meant to be called from one dispatch
// thread. A Dispatcher never locks internally.
type Dispatcher struct {
	runID string

	topics  *interner.Interner
	streams *interner.Interner

	trie      *topic.Trie
	wildcards *topic.WildcardIndex

	heap *schedule.Heap

	agents      map[AgentID]Agent
	nextAgentID AgentID

	exactSubs    map[AgentID]map[string]struct{}
	wildcardSubs map[AgentID]map[string]struct{}

	currentTime     int64
	sequenceCounter uint64
	lastScheduledTs map[streamSubscriberKey]int64

	latencyParams  map[agentPairKey]latency.Params
	defaultLatency latency.Params

	rng *rand.Rand

	hooks  *hookChain
	logger Logger

	queueWarnThreshold int
	queueWarnedAt      int
}

// NewDispatcher constructs a Dispatcher from cfg. A nil logger is replaced
// with NopLogger.
func NewDispatcher(cfg BusConfig, logger Logger) *Dispatcher {
	if logger == nil {
		logger = NopLogger{}
	}
	runID := uuid.NewString()
	logger = NewFieldLogger(logger, "run_id", runID)
	return &Dispatcher{
		runID:               runID,
		topics:              interner.New(),
		streams:             interner.New(),
		trie:                topic.NewTrie(),
		wildcards:           topic.NewWildcardIndex(),
		heap:                schedule.New(),
		agents:              make(map[AgentID]Agent),
		nextAgentID:         1,
		exactSubs:           make(map[AgentID]map[string]struct{}),
		wildcardSubs:        make(map[AgentID]map[string]struct{}),
		lastScheduledTs:     make(map[streamSubscriberKey]int64),
		latencyParams:       make(map[agentPairKey]latency.Params),
		defaultLatency:      cfg.defaultLatencyParams(),
		rng:                 rand.New(rand.NewSource(cfg.Seed)),
		hooks:               newHookChain(logger),
		logger:              logger,
		queueWarnThreshold:  cfg.QueueSizeWarnThreshold,
	}
}

// RunID returns the unique identifier assigned to this Dispatcher
// instance at construction, used to correlate logs and recorded
// CloudEvents across a batch of runs.
func (b *Dispatcher) RunID() string { return b.runID }

// --- registration ---

func (b *Dispatcher) Register(a Agent) AgentID {
	id := b.nextAgentID
	b.nextAgentID++
	b.agents[id] = a
	a.SetID(id)
	a.SetBus(b)
	return id
}

func (b *Dispatcher) RegisterWithID(id AgentID, a Agent) error {
	if existing, ok := b.agents[id]; ok && existing != nil {
		b.logger.Warn("duplicate agent id on register_with_id, keeping existing", "id", id)
		return ErrDuplicateAgentID
	}
	b.agents[id] = a
	a.SetID(id)
	a.SetBus(b)
	if id >= b.nextAgentID {
		b.nextAgentID = id + 1
	}
	return nil
}

func (b *Dispatcher) Deregister(id AgentID) {
	a, ok := b.agents[id]
	if !ok {
		return
	}
	for topicStr := range b.exactSubs[id] {
		b.trie.Unsubscribe(topic.Split(topicStr), topic.SubscriberID(id))
	}
	delete(b.exactSubs, id)

	b.wildcards.RemoveAll(topic.SubscriberID(id))
	delete(b.wildcardSubs, id)

	for key := range b.lastScheduledTs {
		if key.subscriber == id {
			delete(b.lastScheduledTs, key)
		}
	}

	a.SetBus(nil)
	delete(b.agents, id)
}

// --- subscriptions ---

func (b *Dispatcher) Subscribe(id AgentID, topicStr string) error {
	if _, ok := b.agents[id]; !ok {
		b.logger.Warn("subscribe with unregistered agent id", "agent", id, "topic", topicStr)
		return ErrUnregisteredAgent
	}

	validWildcard, hasEmpty := topic.ValidatePattern(topicStr)
	if hasEmpty {
		b.logger.Warn("topic pattern contains an empty segment", "topic", topicStr)
	}

	if topic.HasWildcard(topicStr) {
		if !validWildcard {
			b.logger.Warn("multi-level wildcard not in tail, subscription rejected", "topic", topicStr)
			return ErrWildcardNotInTail
		}
		b.wildcards.Add(topic.SubscriberID(id), topicStr)
		b.rememberSub(b.wildcardSubs, id, topicStr)
		return nil
	}

	segments := topic.Split(topicStr)
	topicID := b.topics.Intern(topicStr)
	b.trie.Subscribe(segments, uint64(topicID), topic.SubscriberID(id))
	b.rememberSub(b.exactSubs, id, topicStr)
	return nil
}

func (b *Dispatcher) rememberSub(index map[AgentID]map[string]struct{}, id AgentID, topicStr string) {
	set, ok := index[id]
	if !ok {
		set = make(map[string]struct{})
		index[id] = set
	}
	set[topicStr] = struct{}{}
}

func (b *Dispatcher) Unsubscribe(id AgentID, topicStr string) {
	if topic.HasWildcard(topicStr) {
		b.wildcards.Remove(topic.SubscriberID(id), topicStr)
		if set, ok := b.wildcardSubs[id]; ok {
			delete(set, topicStr)
		}
		return
	}
	b.trie.Unsubscribe(topic.Split(topicStr), topic.SubscriberID(id))
	if set, ok := b.exactSubs[id]; ok {
		delete(set, topicStr)
	}
}

// --- publish / schedule ---

func (b *Dispatcher) Publish(publisher AgentID, topicStr string, ev event.Event, stream string) error {
	if ev == nil {
		b.logger.Warn("publish with nil event payload", "publisher", publisher, "topic", topicStr)
		return ErrNilEventPayload
	}
	if topic.HasWildcard(topicStr) {
		b.logger.Warn("publish target topic contains a wildcard segment", "publisher", publisher, "topic", topicStr)
		return ErrWildcardPublishTarget
	}
	if _, hasEmpty := topic.ValidatePattern(topicStr); hasEmpty {
		b.logger.Warn("publish topic contains an empty segment", "topic", topicStr)
	}

	segments := topic.Split(topicStr)
	topicID := TopicID(b.topics.Intern(topicStr))
	publishTime := b.currentTime

	b.hooks.invoke(PrePublishContext{
		Publisher:   publisher,
		Topic:       topicStr,
		TopicID:     uint64(topicID),
		Event:       ev,
		PublishTime: publishTime,
		Bus:         b,
	})

	subscribers := b.resolveSubscribers(segments)

	var streamID StreamID
	if stream != "" {
		streamID = StreamID(b.streams.Intern(stream))
	}

	for _, s := range subscribers {
		b.scheduleFanout(publisher, s, topicID, ev, publishTime, streamID)
	}
	return nil
}

// resolveSubscribers computes the deduplicated union of exact-terminal and
// matching-wildcard subscribers, exact matches first.
func (b *Dispatcher) resolveSubscribers(segments []string) []AgentID {
	seen := make(map[AgentID]struct{})
	var out []AgentID

	for _, sub := range b.trie.ExactSubscribers(segments) {
		id := AgentID(sub)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, sub := range b.wildcards.Match(segments) {
		id := AgentID(sub)
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func (b *Dispatcher) scheduleFanout(publisher, subscriber AgentID, topicID TopicID, ev event.Event, publishTime int64, streamID StreamID) {
	params, ok := b.latencyParams[agentPairKey{publisher, subscriber}]
	if !ok {
		params = b.defaultLatency
	}
	latencyUs := int64(latency.Sample(b.rng, params))

	key := streamSubscriberKey{stream: streamID, subscriber: subscriber}
	base := publishTime
	if streamID != 0 {
		if prior, ok := b.lastScheduledTs[key]; ok && prior > base {
			base = prior
		}
	}

	scheduled := base + latencyUs
	if floor := b.currentTime + 1; scheduled < floor {
		scheduled = floor
	}
	if streamID != 0 {
		b.lastScheduledTs[key] = scheduled
	}

	b.enqueue(publisher, subscriber, topicID, ev, publishTime, streamID, scheduled)
}

func (b *Dispatcher) ScheduleAt(publisher, subscriber AgentID, topicStr string, ev event.Event, targetTime int64, stream string) error {
	if ev == nil {
		b.logger.Warn("schedule_at with nil event payload", "publisher", publisher, "topic", topicStr)
		return ErrNilEventPayload
	}
	if topic.HasWildcard(topicStr) {
		b.logger.Warn("schedule_at target topic contains a wildcard segment", "publisher", publisher, "topic", topicStr)
		return ErrWildcardPublishTarget
	}

	topicID := TopicID(b.topics.Intern(topicStr))
	var streamID StreamID
	if stream != "" {
		streamID = StreamID(b.streams.Intern(stream))
	}

	scheduled := targetTime
	if floor := b.currentTime + 1; scheduled < floor {
		scheduled = floor
	}
	key := streamSubscriberKey{stream: streamID, subscriber: subscriber}
	if prior, ok := b.lastScheduledTs[key]; ok && prior+1 > scheduled {
		scheduled = prior + 1
	}
	if streamID != 0 {
		b.lastScheduledTs[key] = scheduled
	}

	b.enqueue(publisher, subscriber, topicID, ev, b.currentTime, streamID, scheduled)
	return nil
}

func (b *Dispatcher) enqueue(publisher, subscriber AgentID, topicID TopicID, ev event.Event, publishTime int64, streamID StreamID, scheduled int64) {
	b.sequenceCounter++
	se := schedule.Event{
		ScheduledTime: schedule.Timestamp(scheduled),
		TopicID:       uint64(topicID),
		PublisherID:   uint64(publisher),
		SubscriberID:  uint64(subscriber),
		PublishTime:   schedule.Timestamp(publishTime),
		StreamID:      uint64(streamID),
		Sequence:      schedule.Sequence(b.sequenceCounter),
		Payload:       ev,
	}

	if target, ok := b.agents[subscriber]; ok && target.IsProcessing() {
		target.QueueReentrant(se)
		return
	}
	b.heap.Push(se)
	b.warnIfQueueLarge()
}

func (b *Dispatcher) warnIfQueueLarge() {
	if b.queueWarnThreshold <= 0 {
		return
	}
	size := b.heap.Len()
	if size >= b.queueWarnThreshold && size != b.queueWarnedAt {
		b.logger.Warn("scheduler queue size exceeds warn threshold", "size", size, "threshold", b.queueWarnThreshold)
		b.queueWarnedAt = size
	}
}

func (b *Dispatcher) EnqueueScheduled(se schedule.Event) {
	b.heap.Push(se)
}

// --- dispatch loop ---

func (b *Dispatcher) Step() (schedule.Event, bool) {
	se, ok := b.heap.Pop()
	if !ok {
		return schedule.Event{}, false
	}

	if int64(se.ScheduledTime) < b.currentTime {
		b.logger.Error("popped event scheduled before current time", "scheduled", se.ScheduledTime, "current", b.currentTime)
	} else {
		b.currentTime = int64(se.ScheduledTime)
	}

	subscriber, ok := b.agents[AgentID(se.SubscriberID)]
	if !ok {
		b.logger.Info("dropping event for deregistered subscriber", "subscriber", se.SubscriberID, "topic", se.TopicID)
		return se, true
	}

	b.invoke(subscriber, se)
	return se, true
}

func (b *Dispatcher) invoke(a Agent, se schedule.Event) {
	a.SetProcessing(true)
	defer func() {
		a.SetProcessing(false)
		if r := recover(); r != nil {
			b.logger.Error("agent handler panicked", "subscriber", se.SubscriberID, "recovered", r)
		}
		a.FlushReentrantQueue()
	}()

	ev, _ := se.Payload.(event.Event)
	a.Process(ev, TopicID(se.TopicID), AgentID(se.PublisherID), b.currentTime, StreamID(se.StreamID), se.Sequence)
}

func (b *Dispatcher) Peek() (schedule.Event, bool) {
	return b.heap.Peek()
}

// --- hooks ---

func (b *Dispatcher) RegisterPrePublishHook(hook PrePublishHook) {
	b.hooks.register(hook)
}

func (b *Dispatcher) DeregisterPrePublishHook(hook PrePublishHook) {
	b.hooks.deregister(hook)
}

// --- latency configuration ---

func (b *Dispatcher) SetInterAgentLatency(pub, sub AgentID, params latency.Params) {
	b.latencyParams[agentPairKey{pub, sub}] = params
}

func (b *Dispatcher) ClearInterAgentLatency(pub, sub AgentID) {
	delete(b.latencyParams, agentPairKey{pub, sub})
}

func (b *Dispatcher) SetDefaultLatency(params latency.Params) {
	b.defaultLatency = params
}

// --- accessors ---

func (b *Dispatcher) CurrentTime() int64 { return b.currentTime }

func (b *Dispatcher) QueueSize() int { return b.heap.Len() }

func (b *Dispatcher) InternTopic(s string) TopicID { return TopicID(b.topics.Intern(s)) }

func (b *Dispatcher) InternStream(s string) StreamID { return StreamID(b.streams.Intern(s)) }

func (b *Dispatcher) ResolveTopic(id TopicID) (string, bool) {
	s, ok := b.topics.Resolve(interner.ID(id))
	if !ok {
		b.logger.Error("resolve topic: id out of range", "id", id)
	}
	return s, ok
}

func (b *Dispatcher) ResolveStream(id StreamID) (string, bool) {
	s, ok := b.streams.Resolve(interner.ID(id))
	if !ok {
		b.logger.Error("resolve stream: id out of range", "id", id)
	}
	return s, ok
}

var _ Bus = (*Dispatcher)(nil)
