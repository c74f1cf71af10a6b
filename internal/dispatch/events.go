package dispatch

import (
	"github.com/mkovach/crewboard/internal/domain"
	"github.com/mkovach/crewboard/internal/protocol"
)

// EventKind discriminates dispatcher events.
type EventKind int

const (
	// EventScheduleLoaded carries a fresh shift list from a successful
	// fetch. The board replaces its list wholesale.
	EventScheduleLoaded EventKind = iota

	// EventMutationApplied reports a successful mutation. A reload has
	// already been triggered when one was possible.
	EventMutationApplied

	// EventRejected reports a server-rejected command (success:false).
	// Err carries the server's error string verbatim.
	EventRejected

	// EventProtocolError reports a response frame that could not be
	// parsed. The board shows a generic message and keeps its state.
	EventProtocolError

	// EventTimeout reports a command whose response never arrived within
	// the dispatcher's timeout.
	EventTimeout
)

// Event is one asynchronous dispatcher outcome, consumed by the board.
// Every event is local to the operation named by Code; none is fatal.
type Event struct {
	Kind    EventKind
	Code    protocol.OpCode
	Shifts  []domain.Shift // EventScheduleLoaded only
	Message string
	Err     string
}
