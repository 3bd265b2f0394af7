package stream

// Event is the decoded form of one inbound text frame. The realtime feed
// carries no discriminant field, so Decode infers the variant from the key
// shape and returns it as one of the concrete types below.
type Event interface {
	event()
}

// SubscriptionAck is the feed's reply to an outbound command, covering both
// the subscribe handshake and the text-level ping ("op":"ping" requests are
// acknowledged through the same envelope).
type SubscriptionAck struct {
	Success bool
	RetMsg  string
	ConnID  string
	Request CommandRequest
}

// CommandRequest echoes the command the ack responds to. Op is the only
// field that distinguishes one command from another; Args may be absent
// (ping acks carry none).
type CommandRequest struct {
	Op   string
	Args []string
}

// LiquidationEvent is a forced-close trade pushed on the liquidation topic.
// Price and quantity travel as decimal strings on the wire and are already
// coerced to numeric types here.
type LiquidationEvent struct {
	Symbol string
	Side   string // "Buy" or "Sell"
	Price  float64
	Qty    uint32
	TimeMS uint64 // event time, milliseconds since epoch
}

func (*SubscriptionAck) event() {}

func (*LiquidationEvent) event() {}
