// Package agent provides the convenience base every concrete strategy,
// matching adapter, watchdog, or environment publisher builds on: handler
// dispatch over the closed event variant, the reentrancy flag and queue,
// publish helpers, and self-scheduling.
package agent

import (
	"github.com/marketsim/dispatchcore/event"
	"github.com/marketsim/dispatchcore/schedule"

	dispatchcore "github.com/marketsim/dispatchcore"
)

// HandlerContext carries the routing metadata a handler needs alongside
// the event payload itself.
type HandlerContext struct {
	TopicID     dispatchcore.TopicID
	PublisherID dispatchcore.AgentID
	Now         int64
	StreamID    dispatchcore.StreamID
	Seq         schedule.Sequence
}

// EventHandlers is implemented, one strongly-typed method per event kind,
// by concrete agents. Embedding NoOpHandlers and overriding only the
// methods of interest satisfies this interface without boilerplate.
type EventHandlers interface {
	OnOrderPlace(ev event.OrderPlace, ctx HandlerContext)
	OnOrderAck(ev event.OrderAck, ctx HandlerContext)
	OnOrderReject(ev event.OrderReject, ctx HandlerContext)
	OnPartialFill(ev event.PartialFill, ctx HandlerContext)
	OnFullFill(ev event.FullFill, ctx HandlerContext)
	OnPartialCancel(ev event.PartialCancel, ctx HandlerContext)
	OnFullCancel(ev event.FullCancel, ctx HandlerContext)
	OnPartialCancelAck(ev event.PartialCancelAck, ctx HandlerContext)
	OnFullCancelAck(ev event.FullCancelAck, ctx HandlerContext)
	OnPartialCancelReject(ev event.PartialCancelReject, ctx HandlerContext)
	OnFullCancelReject(ev event.FullCancelReject, ctx HandlerContext)
	OnOrderExpired(ev event.OrderExpired, ctx HandlerContext)
	OnL2Snapshot(ev event.L2Snapshot, ctx HandlerContext)
	OnBang(ev event.Bang, ctx HandlerContext)
	OnCheckExpiration(ev event.CheckExpiration, ctx HandlerContext)
	OnTriggerExpired(ev event.TriggerExpired, ctx HandlerContext)
	OnAckTriggerExpired(ev event.AckTriggerExpired, ctx HandlerContext)
	OnRejectTriggerExpired(ev event.RejectTriggerExpired, ctx HandlerContext)
	OnTrade(ev event.Trade, ctx HandlerContext)
}

// NoOpHandlers implements EventHandlers with a no-op for every kind. A
// concrete agent embeds it and overrides only the handlers it cares
// about; Go's method promotion resolves the rest to these defaults.
type NoOpHandlers struct{}

func (NoOpHandlers) OnOrderPlace(event.OrderPlace, HandlerContext)                     {}
func (NoOpHandlers) OnOrderAck(event.OrderAck, HandlerContext)                         {}
func (NoOpHandlers) OnOrderReject(event.OrderReject, HandlerContext)                   {}
func (NoOpHandlers) OnPartialFill(event.PartialFill, HandlerContext)                   {}
func (NoOpHandlers) OnFullFill(event.FullFill, HandlerContext)                         {}
func (NoOpHandlers) OnPartialCancel(event.PartialCancel, HandlerContext)               {}
func (NoOpHandlers) OnFullCancel(event.FullCancel, HandlerContext)                     {}
func (NoOpHandlers) OnPartialCancelAck(event.PartialCancelAck, HandlerContext)         {}
func (NoOpHandlers) OnFullCancelAck(event.FullCancelAck, HandlerContext)               {}
func (NoOpHandlers) OnPartialCancelReject(event.PartialCancelReject, HandlerContext)   {}
func (NoOpHandlers) OnFullCancelReject(event.FullCancelReject, HandlerContext)         {}
func (NoOpHandlers) OnOrderExpired(event.OrderExpired, HandlerContext)                 {}
func (NoOpHandlers) OnL2Snapshot(event.L2Snapshot, HandlerContext)                     {}
func (NoOpHandlers) OnBang(event.Bang, HandlerContext)                                 {}
func (NoOpHandlers) OnCheckExpiration(event.CheckExpiration, HandlerContext)           {}
func (NoOpHandlers) OnTriggerExpired(event.TriggerExpired, HandlerContext)             {}
func (NoOpHandlers) OnAckTriggerExpired(event.AckTriggerExpired, HandlerContext)       {}
func (NoOpHandlers) OnRejectTriggerExpired(event.RejectTriggerExpired, HandlerContext) {}
func (NoOpHandlers) OnTrade(event.Trade, HandlerContext)                               {}

// dispatch visits ev and calls the matching method on h.
func dispatch(h EventHandlers, ev event.Event, ctx HandlerContext) {
	if ev == nil {
		return
	}
	switch v := ev.(type) {
	case event.OrderPlace:
		h.OnOrderPlace(v, ctx)
	case event.OrderAck:
		h.OnOrderAck(v, ctx)
	case event.OrderReject:
		h.OnOrderReject(v, ctx)
	case event.PartialFill:
		h.OnPartialFill(v, ctx)
	case event.FullFill:
		h.OnFullFill(v, ctx)
	case event.PartialCancel:
		h.OnPartialCancel(v, ctx)
	case event.FullCancel:
		h.OnFullCancel(v, ctx)
	case event.PartialCancelAck:
		h.OnPartialCancelAck(v, ctx)
	case event.FullCancelAck:
		h.OnFullCancelAck(v, ctx)
	case event.PartialCancelReject:
		h.OnPartialCancelReject(v, ctx)
	case event.FullCancelReject:
		h.OnFullCancelReject(v, ctx)
	case event.OrderExpired:
		h.OnOrderExpired(v, ctx)
	case event.L2Snapshot:
		h.OnL2Snapshot(v, ctx)
	case event.Bang:
		h.OnBang(v, ctx)
	case event.CheckExpiration:
		h.OnCheckExpiration(v, ctx)
	case event.TriggerExpired:
		h.OnTriggerExpired(v, ctx)
	case event.AckTriggerExpired:
		h.OnAckTriggerExpired(v, ctx)
	case event.RejectTriggerExpired:
		h.OnRejectTriggerExpired(v, ctx)
	case event.Trade:
		h.OnTrade(v, ctx)
	}
}
