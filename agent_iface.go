package dispatchcore

import (
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/schedule"
)

// Agent is implemented by every entity that can be registered with a Bus:
// trading strategies, the matching adapter, the cancellation watchdog,
// and the environment publisher all satisfy this interface rather than
// extending a common base class.
type Agent interface {
	// ID returns the id assigned at registration, or InvalidAgentID
	// before registration.
	ID() AgentID

	// SetID is called by the bus exactly once, during registration.
	SetID(id AgentID)

	// SetBus wires (or, passed nil, clears) the agent's bus pointer. The
	// bus calls this during registration and deregistration; it is not
	// meant to be called by application code directly.
	SetBus(bus Bus)

	// Process handles one scheduled event. now is the bus clock at the
	// moment of invocation; seq is the event's tie-breaking sequence
	// number. Implementations must not block indefinitely and must not
	// call back into the bus in a way that bypasses QueueReentrant's
	// reentrancy protection (the convenience base in the agent package
	// handles this automatically).
	Process(ev event.Event, topicID TopicID, publisherID AgentID, now int64, streamID StreamID, seq schedule.Sequence)

	// QueueReentrant captures a scheduled event addressed back to this
	// same agent while it is processing, rather than allowing nested
	// dispatch.
	QueueReentrant(se schedule.Event)

	// FlushReentrantQueue is called by the bus immediately after Process
	// returns; it must push every captured event onto the bus via
	// Bus.EnqueueScheduled, unchanged, then clear the queue.
	FlushReentrantQueue()

	// IsProcessing reports whether this agent's handler is currently
	// executing.
	IsProcessing() bool

	// SetProcessing is called by the bus around each Process invocation.
	SetProcessing(processing bool)
}
