package ws

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/gorilla/websocket"
)

// ErrorKind sorts transport errors into the three reactions the session is
// allowed to have.
type ErrorKind int

const (
	// KindBenign: nothing arrived in time. Never fatal; the caller simply
	// proceeds to its next read or heartbeat opportunity.
	KindBenign ErrorKind = iota

	// KindTerminated: the peer is gone. Always fatal to the session, which
	// must be torn down and rebuilt, never patched in place.
	KindTerminated

	// KindProtocol: the frame stream was malformed. Logged; the session
	// survives only as far as the underlying connection remains usable.
	KindProtocol
)

// Classify maps a transport error onto an ErrorKind. "No data available
// right now" must never read as fatal, while a closed peer always does.
func Classify(err error) ErrorKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindBenign
	}

	var closeErr *websocket.CloseError
	switch {
	case errors.As(err, &closeErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, websocket.ErrCloseSent),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE):
		return KindTerminated
	}

	return KindProtocol
}
