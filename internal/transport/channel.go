// Package transport carries protocol frames between the board and the
// schedule server over a single shared, possibly-reconnecting channel.
package transport

import "errors"

// ErrNotConnected is returned by Send while the channel is down. Commands
// are never queued or retried; the caller surfaces the error immediately.
var ErrNotConnected = errors.New("transport: not connected")

// Channel is a bidirectional frame pipe. Responses arrive asynchronously on
// Inbound in whatever order the server produces them.
type Channel interface {
	// Send transmits one request frame. It fails with ErrNotConnected when
	// the channel is down.
	Send(frame []byte) error

	// Inbound delivers response frames. The channel closes it on Close.
	Inbound() <-chan []byte

	// Connected reports whether Send would currently be accepted.
	Connected() bool

	Close() error
}
