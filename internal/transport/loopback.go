package transport

import (
	"context"
	"sync"
)

// Handler processes one request frame and returns the response frame. The
// schedule server implements this.
type Handler interface {
	Handle(ctx context.Context, frame []byte) []byte
}

// Loopback is an in-process Channel that hands each sent frame to a Handler
// on a worker goroutine and feeds the response back through Inbound. It
// supports disconnect/reconnect so callers can exercise the
// transport-unavailable path.
type Loopback struct {
	handler Handler
	inbound chan []byte
	done    chan struct{}

	mu        sync.Mutex
	connected bool
	closed    bool
	wg        sync.WaitGroup
}

// NewLoopback creates a connected loopback channel over handler.
func NewLoopback(handler Handler) *Loopback {
	return &Loopback{
		handler:   handler,
		inbound:   make(chan []byte, 16),
		done:      make(chan struct{}),
		connected: true,
	}
}

func (l *Loopback) Send(frame []byte) error {
	l.mu.Lock()
	if !l.connected || l.closed {
		l.mu.Unlock()
		return ErrNotConnected
	}
	l.wg.Add(1)
	l.mu.Unlock()

	go func() {
		defer l.wg.Done()
		resp := l.handler.Handle(context.Background(), frame)
		// A response to a request sent before a disconnect is still
		// delivered; correlation by code makes late delivery harmless.
		select {
		case l.inbound <- resp:
		case <-l.done:
		}
	}()
	return nil
}

func (l *Loopback) Inbound() <-chan []byte { return l.inbound }

func (l *Loopback) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected && !l.closed
}

// Disconnect simulates the channel dropping: Send starts failing until
// Reconnect.
func (l *Loopback) Disconnect() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = false
}

// Reconnect restores the channel after a Disconnect.
func (l *Loopback) Reconnect() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.closed {
		l.connected = true
	}
}

func (l *Loopback) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.connected = false
	l.mu.Unlock()

	close(l.done)
	l.wg.Wait()
	close(l.inbound)
	return nil
}
