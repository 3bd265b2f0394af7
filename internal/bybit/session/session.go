package session

import (
	"context"
	"fmt"
	"sync"

	"shiprekt/config"
	"shiprekt/internal/bybit/stream"
	"shiprekt/pkg/ws"

	"go.uber.org/zap"
)

// Notifier delivers one rendered notification. A failed delivery is logged
// and skipped; it never stops the stream.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

type subscribeRequest struct {
	Op   string   `json:"op"`
	Args []string `json:"args"`
}

// keepalivePayload rides inside the ping control frame; the realtime tier
// accepts the same bytes as a text command.
var keepalivePayload = []byte(`{"op":"ping"}`)

// Session owns one websocket connection from subscribe handshake to
// teardown. Exactly one Session is alive at a time; on any fatal transport
// condition it is destroyed and fully reconstructed by the caller, never
// patched in place. The control loop is the sole writer of the transport
// and readLoop the sole reader.
type Session struct {
	cfg      config.WSConfig
	conn     *ws.Conn
	notifier Notifier
	log      *zap.Logger

	hb      *heartbeat
	frames  chan ws.Frame
	readErr chan error

	failOnce sync.Once
	fatalErr error
	fatalCh  chan struct{}
}

// Connect dials the feed and sends the subscribe request for the configured
// topics. A failure of either step kills the session being built; whether
// that ends the process or triggers a reconnect is the caller's policy.
func Connect(ctx context.Context, cfg config.WSConfig, notifier Notifier, log *zap.Logger) (*Session, error) {
	conn, err := ws.Dial(ctx, cfg.URL, cfg.HandshakeTimeout)
	if err != nil {
		return nil, fmt.Errorf("session: connect: %w", err)
	}
	log.Info("connected to bybit realtime websocket", zap.String("url", cfg.URL))

	if err := conn.WriteJSON(subscribeRequest{Op: "subscribe", Args: cfg.Topics}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session: subscribe %v: %w", cfg.Topics, err)
	}
	log.Info("subscribed", zap.Strings("topics", cfg.Topics))

	return &Session{
		cfg:      cfg,
		conn:     conn,
		notifier: notifier,
		log:      log,
		hb:       newHeartbeat(cfg.HeartbeatInterval),
		frames:   make(chan ws.Frame, 16),
		readErr:  make(chan error, 1),
		fatalCh:  make(chan struct{}),
	}, nil
}

// fail records the first fatal condition and forces the whole session down:
// closing the connection unblocks the read path, closing fatalCh unblocks
// everything else. Later calls are no-ops.
func (s *Session) fail(err error) {
	s.failOnce.Do(func() {
		s.fatalErr = err
		close(s.fatalCh)
		s.conn.Close()
	})
}

// Run drives the control loop until the session dies or ctx is cancelled,
// and returns the reason. The connection is closed on return; the Session
// cannot be reused.
func (s *Session) Run(ctx context.Context) error {
	defer s.conn.Close()

	hbCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.hb.run(hbCtx, s.fail)
	go s.readLoop()

	for {
		select {
		case <-ctx.Done():
			s.fail(ctx.Err())
			return ctx.Err()

		case <-s.fatalCh:
			return s.fatalErr

		case <-s.hb.pingReq:
			if err := s.conn.Ping(keepalivePayload, s.cfg.WriteTimeout); err != nil {
				s.fail(fmt.Errorf("session: heartbeat send: %w", err))
			}

		case <-s.conn.Pongs():
			s.hb.observeAck()

		case fr := <-s.frames:
			s.route(ctx, fr)

		case err := <-s.readErr:
			// frames already queued by the reader precede its error; handle
			// them first so a close frame never eats a pending event
			s.drainFrames(ctx)
			s.handleReadError(err)
		}
	}
}

// readLoop pumps inbound data frames into the control loop and reports the
// first read error, then exits.
func (s *Session) readLoop() {
	for {
		fr, err := s.conn.Receive()
		if err != nil {
			select {
			case s.readErr <- err:
			case <-s.fatalCh:
			}
			return
		}
		select {
		case s.frames <- fr:
		case <-s.fatalCh:
			return
		}
	}
}

func (s *Session) drainFrames(ctx context.Context) {
	for {
		select {
		case fr := <-s.frames:
			s.route(ctx, fr)
		default:
			return
		}
	}
}

// handleReadError applies the classification contract: no-data is never
// fatal, a dead peer always is, and a protocol violation keeps the session
// only as long as the transport stays usable — gorilla marks every read
// error permanent, so after logging it the session comes down too.
func (s *Session) handleReadError(err error) {
	switch ws.Classify(err) {
	case ws.KindBenign:
		s.log.Debug("transport read returned no data", zap.Error(err))
	case ws.KindProtocol:
		s.log.Warn("websocket protocol violation", zap.Error(err))
		s.fail(fmt.Errorf("session: read: %w", err))
	default:
		s.fail(fmt.Errorf("session: read: %w", err))
	}
}

func (s *Session) route(ctx context.Context, fr ws.Frame) {
	switch fr.Kind {
	case ws.FrameText:
	case ws.FrameBinary:
		s.log.Debug("binary frame received", zap.Int("bytes", len(fr.Payload)))
		return
	default:
		return
	}

	ev, err := stream.Decode(fr.Payload)
	if err != nil {
		s.log.Warn("skipping undecodable frame", zap.Error(err), zap.ByteString("payload", fr.Payload))
		return
	}

	switch m := ev.(type) {
	case *stream.SubscriptionAck:
		if m.Request.Op == "ping" {
			// text-tier keepalive answer
			s.hb.observeAck()
			return
		}
		s.log.Debug("command acknowledged",
			zap.String("op", m.Request.Op),
			zap.Bool("success", m.Success),
			zap.String("conn_id", m.ConnID))

	case *stream.LiquidationEvent:
		s.notify(ctx, m)
	}
}

func (s *Session) notify(ctx context.Context, ev *stream.LiquidationEvent) {
	text := Notification(ev)
	if err := s.notifier.Send(ctx, text); err != nil {
		s.log.Warn("notifier send failed", zap.String("symbol", ev.Symbol), zap.Error(err))
		return
	}
	s.log.Info("notified event",
		zap.String("symbol", ev.Symbol),
		zap.String("side", ev.Side),
		zap.Float64("price", ev.Price),
		zap.Uint32("qty", ev.Qty))
}
