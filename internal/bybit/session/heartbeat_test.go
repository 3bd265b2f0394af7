package session

import (
	"context"
	"testing"
	"time"
)

func TestHeartbeatOneOutstandingRoundTrip(t *testing.T) {
	h := newHeartbeat(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fatal := make(chan error, 1)
	go h.run(ctx, func(err error) { fatal <- err })

	for i := 0; i < 3; i++ {
		select {
		case <-h.pingReq:
		case err := <-fatal:
			t.Fatalf("coordinator failed on round %d: %v", i, err)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for ping request %d", i)
		}

		// no second request may appear while the first ack is outstanding
		select {
		case <-h.pingReq:
			t.Fatal("second ping issued with one round trip outstanding")
		case <-time.After(20 * time.Millisecond):
		}

		h.observeAck()
	}
}

func TestHeartbeatAckTimeoutIsFatal(t *testing.T) {
	h := newHeartbeat(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fatal := make(chan error, 1)
	go h.run(ctx, func(err error) { fatal <- err })

	select {
	case <-h.pingReq:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ping request")
	}

	// never ack: the coordinator must give up within one further interval
	select {
	case err := <-fatal:
		if err == nil {
			t.Fatal("fail called with nil error")
		}
	case <-time.After(time.Second):
		t.Fatal("coordinator did not report a missing ack")
	}

	// a dead coordinator issues no further pings
	select {
	case <-h.pingReq:
		t.Fatal("ping request after fatal heartbeat timeout")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestHeartbeatUnsolicitedAckDoesNotBlock(t *testing.T) {
	h := newHeartbeat(time.Hour)
	// no coordinator running; repeated acks must coalesce, never block
	for i := 0; i < 10; i++ {
		h.observeAck()
	}
}

func TestHeartbeatStopsOnCancel(t *testing.T) {
	h := newHeartbeat(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		h.run(ctx, func(error) { t.Error("fail called after cancel") })
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("coordinator did not stop on cancel")
	}
}
