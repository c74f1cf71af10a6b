package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoHandler responds with the request frame prefixed by "ok:".
type echoHandler struct{}

func (echoHandler) Handle(_ context.Context, frame []byte) []byte {
	return append([]byte("ok:"), frame...)
}

func recvFrame(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case frame := <-ch:
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for inbound frame")
		return nil
	}
}

func TestLoopback_RoundTrip(t *testing.T) {
	l := NewLoopback(echoHandler{})
	defer l.Close()

	require.NoError(t, l.Send([]byte("ping")))
	assert.Equal(t, "ok:ping", string(recvFrame(t, l.Inbound())))
}

func TestLoopback_SendWhileDisconnected(t *testing.T) {
	l := NewLoopback(echoHandler{})
	defer l.Close()

	l.Disconnect()
	assert.False(t, l.Connected())
	assert.ErrorIs(t, l.Send([]byte("ping")), ErrNotConnected)

	l.Reconnect()
	assert.True(t, l.Connected())
	require.NoError(t, l.Send([]byte("ping")))
	assert.Equal(t, "ok:ping", string(recvFrame(t, l.Inbound())))
}

func TestLoopback_InFlightResponseSurvivesDisconnect(t *testing.T) {
	l := NewLoopback(echoHandler{})
	defer l.Close()

	require.NoError(t, l.Send([]byte("ping")))
	l.Disconnect()

	// The request was accepted before the drop, so its response is still
	// delivered.
	assert.Equal(t, "ok:ping", string(recvFrame(t, l.Inbound())))
}

func TestLoopback_CloseDrainsAndClosesInbound(t *testing.T) {
	l := NewLoopback(echoHandler{})
	require.NoError(t, l.Send([]byte("ping")))
	require.NoError(t, l.Close())

	assert.False(t, l.Connected())
	assert.ErrorIs(t, l.Send([]byte("after")), ErrNotConnected)

	// Inbound is closed after Close; draining it must terminate.
	for range l.Inbound() {
	}
}

func TestLoopback_CloseIdempotent(t *testing.T) {
	l := NewLoopback(echoHandler{})
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())
}

func TestLoopback_ReconnectAfterCloseStaysDown(t *testing.T) {
	l := NewLoopback(echoHandler{})
	require.NoError(t, l.Close())
	l.Reconnect()
	assert.False(t, l.Connected())
}
