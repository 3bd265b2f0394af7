package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNoMatchingVariant indicates a text frame whose key shape fits none of
// the known message variants. The frame is dropped; the session keeps going.
var ErrNoMatchingVariant = errors.New("stream: payload matches no known message variant")

// FieldCoercionError indicates a frame that matched a variant structurally
// but carried a numeric string that does not parse into its target type.
// Such a frame is a hard failure of that single message only.
type FieldCoercionError struct {
	Field string
	Err   error
}

func (e *FieldCoercionError) Error() string {
	return fmt.Sprintf("stream: field %q: %v", e.Field, e.Err)
}

func (e *FieldCoercionError) Unwrap() error { return e.Err }

// Wire shapes. Required fields are pointers so that their absence is
// distinguishable from a zero value; a variant is a structural match only
// when every required pointer is set.
type ackWire struct {
	Success *bool    `json:"success"`
	RetMsg  string   `json:"ret_msg"`
	ConnID  *string  `json:"conn_id"`
	Request *reqWire `json:"request"`
}

type reqWire struct {
	Op   *string  `json:"op"`
	Args []string `json:"args"`
}

func (w *ackWire) complete() bool {
	return w.Success != nil && w.ConnID != nil && w.Request != nil && w.Request.Op != nil
}

type liquidationWire struct {
	Topic *string              `json:"topic"`
	Data  *liquidationDataWire `json:"data"`
}

type liquidationDataWire struct {
	Symbol *string `json:"symbol"`
	Side   *string `json:"side"`
	Price  *string `json:"price"`
	Qty    *string `json:"qty"`
	Time   *uint64 `json:"time"`
}

func (w *liquidationWire) complete() bool {
	if w.Topic == nil || w.Data == nil {
		return false
	}
	d := w.Data
	return d.Symbol != nil && d.Side != nil && d.Price != nil && d.Qty != nil && d.Time != nil
}

// qtyBits bounds the parsed quantity. The feed has never pushed a quantity
// beyond 32 bits (BTCUSD caps at 1,000,000 contracts); widen here if an
// instrument ever exceeds it.
const qtyBits = 32

// Decode turns a raw text payload into exactly one Event. The wire format
// is an untagged union, so candidate shapes are tried in a fixed order —
// command ack first, then the liquidation envelope — and the first variant
// whose required fields are all present wins.
func Decode(payload []byte) (Event, error) {
	var ack ackWire
	if err := json.Unmarshal(payload, &ack); err == nil && ack.complete() {
		ev := &SubscriptionAck{
			Success: *ack.Success,
			RetMsg:  ack.RetMsg,
			ConnID:  *ack.ConnID,
			Request: CommandRequest{Op: *ack.Request.Op, Args: ack.Request.Args},
		}
		return ev, nil
	}

	var liq liquidationWire
	if err := json.Unmarshal(payload, &liq); err != nil || !liq.complete() {
		return nil, ErrNoMatchingVariant
	}

	price, err := strconv.ParseFloat(*liq.Data.Price, 64)
	if err != nil {
		return nil, &FieldCoercionError{Field: "price", Err: err}
	}
	qty, err := strconv.ParseUint(*liq.Data.Qty, 10, qtyBits)
	if err != nil {
		return nil, &FieldCoercionError{Field: "qty", Err: err}
	}

	ev := &LiquidationEvent{
		Symbol: *liq.Data.Symbol,
		Side:   *liq.Data.Side,
		Price:  price,
		Qty:    uint32(qty),
		TimeMS: *liq.Data.Time,
	}
	return ev, nil
}
