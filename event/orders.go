package event

// XID is the exchange-assigned identifier for a resting order, shared
// across its whole lifecycle (ack, fills, cancels, expiration).
type XID uint64

// OrderPlace requests a new order be admitted to the book.
type OrderPlace struct {
	Base
	XID       XID
	Order     OrderKind
	Side      OrderSide
	Symbol    string
	Price     int64 // fixed-point, ScaleFactor
	Qty       int64 // fixed-point, ScaleFactor
	TimeoutUs int64 // 0 means no expiration timer requested
}

func (e OrderPlace) Kind() Kind { return KindOrderPlace }
func (e OrderPlace) Meta() Base { return e.Base }

// OrderAck confirms an order was admitted.
type OrderAck struct {
	Base
	XID       XID
	TimeoutUs int64
}

func (e OrderAck) Kind() Kind { return KindOrderAck }
func (e OrderAck) Meta() Base { return e.Base }

// OrderReject reports an order was not admitted.
type OrderReject struct {
	Base
	XID    XID
	Reason string
}

func (e OrderReject) Kind() Kind { return KindOrderReject }
func (e OrderReject) Meta() Base { return e.Base }

// PartialFill reports a partial execution against a resting order.
type PartialFill struct {
	Base
	XID       XID
	FillQty   int64
	FillPrice int64
	RemainQty int64
}

func (e PartialFill) Kind() Kind { return KindPartialFill }
func (e PartialFill) Meta() Base { return e.Base }

// FullFill reports the resting order is fully executed.
type FullFill struct {
	Base
	XID       XID
	FillQty   int64
	FillPrice int64
}

func (e FullFill) Kind() Kind { return KindFullFill }
func (e FullFill) Meta() Base { return e.Base }

// PartialCancel requests cancellation of part of a resting order's
// remaining quantity.
type PartialCancel struct {
	Base
	XID       XID
	CancelQty int64
}

func (e PartialCancel) Kind() Kind { return KindPartialCancel }
func (e PartialCancel) Meta() Base { return e.Base }

// FullCancel requests cancellation of the entire remaining quantity.
type FullCancel struct {
	Base
	XID XID
}

func (e FullCancel) Kind() Kind { return KindFullCancel }
func (e FullCancel) Meta() Base { return e.Base }

// PartialCancelAck confirms a partial cancel was applied.
type PartialCancelAck struct {
	Base
	XID          XID
	CanceledQty  int64
	RemainingQty int64
}

func (e PartialCancelAck) Kind() Kind { return KindPartialCancelAck }
func (e PartialCancelAck) Meta() Base { return e.Base }

// FullCancelAck confirms the order's remaining quantity was fully
// canceled.
type FullCancelAck struct {
	Base
	XID XID
}

func (e FullCancelAck) Kind() Kind { return KindFullCancelAck }
func (e FullCancelAck) Meta() Base { return e.Base }

// PartialCancelReject reports a partial cancel request could not be
// applied.
type PartialCancelReject struct {
	Base
	XID    XID
	Reason string
}

func (e PartialCancelReject) Kind() Kind { return KindPartialCancelReject }
func (e PartialCancelReject) Meta() Base { return e.Base }

// FullCancelReject reports a full cancel request could not be applied.
type FullCancelReject struct {
	Base
	XID    XID
	Reason string
}

func (e FullCancelReject) Kind() Kind { return KindFullCancelReject }
func (e FullCancelReject) Meta() Base { return e.Base }

// OrderExpired reports an order lapsed due to its time-in-force.
type OrderExpired struct {
	Base
	XID XID
}

func (e OrderExpired) Kind() Kind { return KindOrderExpired }
func (e OrderExpired) Meta() Base { return e.Base }

// Trade reports a completed trade between two orders.
type Trade struct {
	Base
	BuyXID  XID
	SellXID XID
	Price   int64
	Qty     int64
}

func (e Trade) Kind() Kind { return KindTrade }
func (e Trade) Meta() Base { return e.Base }
