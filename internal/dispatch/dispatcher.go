// Package dispatch serializes typed commands onto the transport channel and
// correlates asynchronous responses back to them by operation code.
//
// Correlation is strictly by code: there is no per-call token, so the
// dispatcher enforces a one-in-flight-command-per-code discipline and
// rejects overlapping dispatches of the same code. On any successful
// mutation it re-issues the current schedule fetch rather than patching
// local state, so the board converges by wholesale reload.
package dispatch

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
	"github.com/mkovach/crewboard/internal/transport"
)

// ErrNotConnected mirrors the transport error: the channel is down, the
// command was not sent, and it will not be retried.
var ErrNotConnected = transport.ErrNotConnected

// ErrInFlight means a command with the same operation code is still
// awaiting its response.
var ErrInFlight = errors.New("dispatch: command with same code already in flight")

// malformedResponseMsg is what the board shows when a response frame cannot
// be parsed.
const malformedResponseMsg = "error processing server response"

// DefaultTimeout bounds how long a dispatched command may wait for its
// response before the pending slot is reclaimed.
const DefaultTimeout = 10 * time.Second

// Dispatcher owns the request side of the protocol. All mutations of board
// data flow through here and come back as events.
type Dispatcher struct {
	ch      transport.Channel
	loc     *time.Location
	timeout time.Duration
	events  chan Event

	mu       sync.Mutex
	pending  map[protocol.OpCode]*time.Timer
	lastSeq  map[protocol.OpCode]uint64
	seq      uint64
	curFetch *protocol.FetchSchedule

	// reloadQueued marks that a mutation confirmed while a window fetch was
	// in flight. That fetch may have read pre-mutation state, so one more
	// reload goes out when it completes.
	reloadQueued bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout overrides the per-command response timeout.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// New creates a Dispatcher over ch, interpreting wire datetimes in loc, and
// starts the response reader. Close the channel to stop it; the event
// stream closes when the channel's inbound closes.
func New(ch transport.Channel, loc *time.Location, opts ...Option) *Dispatcher {
	if loc == nil {
		loc = time.Local
	}
	d := &Dispatcher{
		ch:      ch,
		loc:     loc,
		timeout: DefaultTimeout,
		events:  make(chan Event, 32),
		pending: make(map[protocol.OpCode]*time.Timer),
		lastSeq: make(map[protocol.OpCode]uint64),
	}
	for _, opt := range opts {
		opt(d)
	}
	go d.readLoop()
	return d
}

// Events delivers dispatcher outcomes in arrival order.
func (d *Dispatcher) Events() <-chan Event { return d.events }

// Dispatch encodes cmd and sends it. It fails immediately with
// ErrNotConnected while the channel is down (no queueing) and with
// ErrInFlight when the code already has an outstanding command. A fetch
// command becomes the current window and is re-issued after every
// successful mutation.
func (d *Dispatcher) Dispatch(cmd protocol.Command) error {
	if !d.ch.Connected() {
		return ErrNotConnected
	}

	frame, err := protocol.EncodeCommand(cmd)
	if err != nil {
		return err
	}

	code := cmd.Code()
	d.mu.Lock()
	if _, exists := d.pending[code]; exists {
		d.mu.Unlock()
		return ErrInFlight
	}
	d.seq++
	seq := d.seq
	d.lastSeq[code] = seq
	d.pending[code] = time.AfterFunc(d.timeout, func() { d.expire(code, seq) })
	if fetch, ok := cmd.(*protocol.FetchSchedule); ok {
		cp := *fetch
		d.curFetch = &cp
	}
	d.mu.Unlock()

	if err := d.ch.Send(frame); err != nil {
		d.clearPending(code)
		return err
	}
	return nil
}

// Fetch is a convenience for dispatching the fetch that defines the board's
// current window.
func (d *Dispatcher) Fetch(startDate, endDate, viewType string, filters protocol.Filters) error {
	return d.Dispatch(&protocol.FetchSchedule{
		StartDate: startDate,
		EndDate:   endDate,
		ViewType:  viewType,
		Filters:   filters,
	})
}

// InFlight reports whether code has an outstanding command.
func (d *Dispatcher) InFlight(code protocol.OpCode) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[code]
	return ok
}

func (d *Dispatcher) clearPending(code protocol.OpCode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.pending[code]; ok {
		t.Stop()
		delete(d.pending, code)
	}
}

// expire fires when a command's response deadline passes. The seq guard
// keeps a stale timer from clearing a newer command on the same code.
func (d *Dispatcher) expire(code protocol.OpCode, seq uint64) {
	d.mu.Lock()
	if d.lastSeq[code] != seq {
		d.mu.Unlock()
		return
	}
	if _, ok := d.pending[code]; !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, code)
	d.mu.Unlock()

	d.events <- Event{
		Kind: EventTimeout,
		Code: code,
		Err:  "no response from server for " + code.String(),
	}

	if code == protocol.OpFetchSchedule && d.takeQueuedReload() {
		d.reload()
	}
}

func (d *Dispatcher) readLoop() {
	for frame := range d.ch.Inbound() {
		d.handleFrame(frame)
	}
	close(d.events)
}

func (d *Dispatcher) handleFrame(frame []byte) {
	resp, err := protocol.DecodeResponse(frame)
	if err != nil {
		d.events <- Event{Kind: EventProtocolError, Err: malformedResponseMsg}
		return
	}

	d.clearPending(resp.RequestID)

	switch {
	case !resp.Success:
		d.events <- Event{Kind: EventRejected, Code: resp.RequestID, Err: resp.Error}
	case resp.RequestID == protocol.OpFetchSchedule:
		shifts, err := decodeShifts(resp.Data, d.loc)
		if err != nil {
			d.events <- Event{Kind: EventProtocolError, Code: resp.RequestID, Err: malformedResponseMsg}
			break
		}
		d.events <- Event{Kind: EventScheduleLoaded, Code: resp.RequestID, Shifts: shifts, Message: resp.Message}
	default:
		d.events <- Event{Kind: EventMutationApplied, Code: resp.RequestID, Message: resp.Message}
	}

	if resp.RequestID == protocol.OpFetchSchedule {
		// The fetch slot is free again; drain any reload queued behind it.
		if d.takeQueuedReload() {
			d.reload()
		}
		return
	}
	if resp.Success && resp.RequestID.Mutating() {
		d.reload()
	}
}

// reload re-issues the current fetch after a successful mutation. A fetch
// already in flight may predate the mutation, so instead of dropping the
// reload it is queued and sent when that fetch completes; mutations landing
// meanwhile coalesce into the one queued reload. A down channel means the
// next manual reload self-heals the view.
func (d *Dispatcher) reload() {
	d.mu.Lock()
	if d.curFetch == nil {
		d.mu.Unlock()
		return
	}
	if _, busy := d.pending[protocol.OpFetchSchedule]; busy {
		d.reloadQueued = true
		d.mu.Unlock()
		return
	}
	cp := *d.curFetch
	d.mu.Unlock()

	if err := d.Dispatch(&cp); err != nil && errors.Is(err, ErrInFlight) {
		d.mu.Lock()
		d.reloadQueued = true
		d.mu.Unlock()
	}
}

func (d *Dispatcher) takeQueuedReload() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	queued := d.reloadQueued
	d.reloadQueued = false
	return queued
}

func decodeShifts(data []byte, loc *time.Location) ([]domain.Shift, error) {
	var payload protocol.SchedulePayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
	}
	shifts := make([]domain.Shift, 0, len(payload.Shifts))
	for _, w := range payload.Shifts {
		shifts = append(shifts, protocol.FromWireShift(w, loc))
	}
	return shifts, nil
}
