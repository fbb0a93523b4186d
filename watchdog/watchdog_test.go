package watchdog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dispatchcore "github.com/marketsim/dispatchcore"
	"github.com/marketsim/dispatchcore/agent"
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/latency"
	"github.com/marketsim/dispatchcore/watchdog"
)

type exchangeStub struct {
	*agent.BaseAgent
	agent.NoOpHandlers
	received []event.TriggerExpired
	reply    func(ev event.TriggerExpired) event.Event
}

func newExchangeStub() *exchangeStub {
	e := &exchangeStub{}
	e.BaseAgent = agent.NewBaseAgent(e)
	return e
}

func (e *exchangeStub) OnTriggerExpired(ev event.TriggerExpired, ctx agent.HandlerContext) {
	e.received = append(e.received, ev)
	if e.reply == nil {
		return
	}
	reply := e.reply(ev)
	switch reply.(type) {
	case event.AckTriggerExpired:
		_ = e.Publish(watchdog.TopicAckTriggerExpired, reply, "")
	case event.RejectTriggerExpired:
		_ = e.Publish(watchdog.TopicRejectTriggerExpired, reply, "")
	}
}

func setup(t *testing.T) (*dispatchcore.Dispatcher, *watchdog.CancellationWatchdog, *exchangeStub) {
	t.Helper()
	bus := dispatchcore.NewDispatcher(dispatchcore.DefaultBusConfig(), dispatchcore.NopLogger{})
	bus.SetDefaultLatency(latency.Fixed(1, 1))

	wd := watchdog.New(dispatchcore.NopLogger{})
	wdID := bus.Register(wd)
	for _, topic := range wd.Subscriptions() {
		require.NoError(t, bus.Subscribe(wdID, topic))
	}

	ex := newExchangeStub()
	exID := bus.Register(ex)
	require.NoError(t, bus.Subscribe(exID, watchdog.TopicTriggerExpired))

	return bus, wd, ex
}

func runUntilQueueEmpty(bus *dispatchcore.Dispatcher, maxSteps int) {
	for i := 0; i < maxSteps; i++ {
		if _, ok := bus.Step(); !ok {
			return
		}
	}
}

func TestExpirationWorkflowAckTerminatesTracking(t *testing.T) {
	bus, wd, ex := setup(t)
	ex.reply = func(ev event.TriggerExpired) event.Event {
		return event.AckTriggerExpired{XID: ev.XID}
	}

	require.NoError(t, bus.Publish(0, watchdog.TopicOrderAck, event.OrderAck{XID: 42, TimeoutUs: 5_000_000}, ""))

	runUntilQueueEmpty(bus, 100)

	assert.False(t, wd.IsTracking(42), "watchdog should untrack after AckTriggerExpired")
	assert.Len(t, ex.received, 1)
	assert.Equal(t, event.XID(42), ex.received[0].XID)
}

func TestExpirationWorkflowRejectAlsoTerminatesTracking(t *testing.T) {
	bus, wd, ex := setup(t)
	ex.reply = func(ev event.TriggerExpired) event.Event {
		return event.RejectTriggerExpired{XID: ev.XID, Reason: "already filled"}
	}

	require.NoError(t, bus.Publish(0, watchdog.TopicOrderAck, event.OrderAck{XID: 7, TimeoutUs: 1_000}, ""))

	runUntilQueueEmpty(bus, 100)

	assert.False(t, wd.IsTracking(7))
}

func TestNoTimeoutMeansNoTracking(t *testing.T) {
	bus, wd, _ := setup(t)

	require.NoError(t, bus.Publish(0, watchdog.TopicOrderAck, event.OrderAck{XID: 1, TimeoutUs: 0}, ""))
	runUntilQueueEmpty(bus, 10)

	assert.False(t, wd.IsTracking(1))
}

func TestUntrackedCheckExpirationDoesNotRetrigger(t *testing.T) {
	bus, wd, ex := setup(t)
	ex.reply = func(ev event.TriggerExpired) event.Event {
		return event.AckTriggerExpired{XID: ev.XID}
	}

	require.NoError(t, bus.Publish(0, watchdog.TopicOrderAck, event.OrderAck{XID: 5, TimeoutUs: 2_000}, ""))
	runUntilQueueEmpty(bus, 100)
	require.False(t, wd.IsTracking(5))
	require.Len(t, ex.received, 1)

	// Re-injecting a stale CheckExpiration after untracking must no-op.
	wdID := wd.ID()
	require.NoError(t, bus.ScheduleAt(0, wdID, watchdog.TopicCheckExpiration, event.CheckExpiration{XID: 5}, bus.CurrentTime()+1, ""))
	runUntilQueueEmpty(bus, 10)

	assert.Len(t, ex.received, 1, "no second trigger should be published for an already-untracked xid")
}
