package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchcore "github.com/marketsim/dispatchcore"
	"github.com/marketsim/dispatchcore/agent"
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/latency"
)

func newTestDispatcher() *dispatchcore.Dispatcher {
	return dispatchcore.NewDispatcher(dispatchcore.DefaultBusConfig(), dispatchcore.NopLogger{})
}

func TestEchoAgentRegistersAndAssignsID(t *testing.T) {
	bus := newTestDispatcher()
	a := agent.NewEchoAgent()
	id := bus.Register(a)

	assert.NotEqual(t, dispatchcore.InvalidAgentID, id)
	assert.Equal(t, id, a.ID())
}

func TestBaseAgentDeliversEventToAfterProcess(t *testing.T) {
	bus := newTestDispatcher()
	received := make(chan event.OrderAck, 1)

	type ackAgent struct {
		*agent.BaseAgent
		agent.NoOpHandlers
	}
	a := &ackAgent{}
	a.BaseAgent = agent.NewBaseAgent(a)

	// Override after construction isn't possible via struct field, so
	// instead verify dispatch through AfterProcess, which every agent
	// gets without needing a full handler override.
	a.AfterProcess = func(ev event.Event, ctx agent.HandlerContext) {
		if ack, ok := ev.(event.OrderAck); ok {
			received <- ack
		}
	}

	id := bus.Register(a)
	require.NoError(t, bus.Subscribe(id, "order.ack"))
	require.NoError(t, bus.Publish(0, "order.ack", event.OrderAck{XID: 99}, ""))

	_, ok := bus.Step()
	require.True(t, ok)

	select {
	case ack := <-received:
		assert.Equal(t, event.XID(99), ack.XID)
	default:
		t.Fatal("handler was not dispatched")
	}
}

func TestFlushReentrantQueuePushesOntoBus(t *testing.T) {
	bus := newTestDispatcher()
	bus.SetDefaultLatency(latency.Fixed(100, 100))

	a := agent.NewEchoAgent()
	reentered := make(chan struct{}, 1)
	a.AfterProcess = func(ev event.Event, ctx agent.HandlerContext) {
		if _, ok := ev.(event.Bang); ok {
			if !a.IsProcessing() {
				t.Fatal("expected IsProcessing to be true during handler execution")
			}
			_ = a.Publish("self.tick", event.Bang{Tag: "again"}, "")
			select {
			case reentered <- struct{}{}:
			default:
			}
		}
	}

	id := bus.Register(a)
	require.NoError(t, bus.Subscribe(id, "self.tick"))
	require.NoError(t, bus.Publish(id, "self.tick", event.Bang{Tag: "first"}, ""))

	_, ok := bus.Step()
	require.True(t, ok)

	select {
	case <-reentered:
	default:
		t.Fatal("handler never ran")
	}
	assert.False(t, a.IsProcessing())
	assert.Equal(t, 1, bus.QueueSize(), "reentrant publish should land on the heap after the handler returns")
}
