package session

import (
	"context"
	"fmt"
	"time"
)

// heartbeat owns the liveness protocol: one ping round trip at a time,
// driven by a timer worker that talks to the session loop over two
// single-slot channels. pingReq is unbuffered so a request rendezvouses
// with the loop; acks holds one slot so an ack observed moments before the
// worker starts waiting is not lost.
type heartbeat struct {
	interval time.Duration
	pingReq  chan struct{}
	acks     chan struct{}
}

func newHeartbeat(interval time.Duration) *heartbeat {
	return &heartbeat{
		interval: interval,
		pingReq:  make(chan struct{}),
		acks:     make(chan struct{}, 1),
	}
}

// observeAck records an acknowledgment for the outstanding ping. Called
// from the session loop; never blocks. An unsolicited pong while no ping is
// outstanding is coalesced away.
func (h *heartbeat) observeAck() {
	select {
	case h.acks <- struct{}{}:
	default:
	}
}

// run is the timer worker. Each cycle: sleep one interval, hand a ping
// request to the session loop, then block until the ack arrives. Blocking
// before the next request enforces that at most one round trip is ever
// outstanding. No ack within one further interval is fatal to the whole
// session, not retried in place.
func (h *heartbeat) run(ctx context.Context, fail func(error)) {
	timer := time.NewTimer(h.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		select {
		case <-ctx.Done():
			return
		case h.pingReq <- struct{}{}:
		}

		ackTimer := time.NewTimer(h.interval)
		select {
		case <-ctx.Done():
			ackTimer.Stop()
			return
		case <-h.acks:
			ackTimer.Stop()
		case <-ackTimer.C:
			fail(fmt.Errorf("session: no heartbeat ack within %v", h.interval))
			return
		}

		timer.Reset(h.interval)
	}
}
