package ws

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// FrameKind tells the session what a received frame carries.
type FrameKind int

const (
	FrameText FrameKind = iota
	FrameBinary
)

// Frame is one inbound data frame. Pong control frames are surfaced through
// Conn.Pongs instead: gorilla handles control frames inside ReadMessage, so
// they never come out of Receive.
type Frame struct {
	Kind    FrameKind
	Payload []byte
}

// Conn wraps a websocket connection with the small surface the session
// needs: JSON/text sends, ping control frames, and a receive call that
// yields data frames. Receive must only be used from one goroutine; the
// write methods from one other. Ping uses WriteControl, which gorilla
// allows concurrently with all other methods.
type Conn struct {
	conn  *websocket.Conn
	pongs chan struct{}
}

// Dial opens a websocket connection to url. The handshake is bounded by
// timeout and by ctx.
func Dial(ctx context.Context, url string, timeout time.Duration) (*Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}

	c := &Conn{conn: conn, pongs: make(chan struct{}, 1)}
	conn.SetPongHandler(func(string) error {
		select {
		case c.pongs <- struct{}{}:
		default:
		}
		return nil
	})
	return c, nil
}

// Pongs signals every pong control frame observed by the read path. The
// channel holds a single slot; an unconsumed pong is coalesced, never
// blocking the reader.
func (c *Conn) Pongs() <-chan struct{} {
	return c.pongs
}

// WriteJSON sends v as a single text frame.
func (c *Conn) WriteJSON(v any) error {
	return c.conn.WriteJSON(v)
}

// Ping sends a ping control frame carrying payload, giving the write at
// most timeout to complete.
func (c *Conn) Ping(payload []byte, timeout time.Duration) error {
	return c.conn.WriteControl(websocket.PingMessage, payload, time.Now().Add(timeout))
}

// Receive blocks until the next data frame arrives. Inbound pings are
// answered by gorilla's default handler; pongs land on Pongs. A peer close
// comes back as an error that Classify reports as KindTerminated.
func (c *Conn) Receive() (Frame, error) {
	msgType, payload, err := c.conn.ReadMessage()
	if err != nil {
		return Frame{}, err
	}
	kind := FrameText
	if msgType == websocket.BinaryMessage {
		kind = FrameBinary
	}
	return Frame{Kind: kind, Payload: payload}, nil
}

func (c *Conn) Close() error {
	return c.conn.Close()
}
