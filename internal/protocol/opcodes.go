// Package protocol defines the command/response wire contract between the
// scheduling board and the schedule server: numeric operation codes, one
// typed command per code, and the JSON envelopes that carry them.
package protocol

import "strconv"

// OpCode is the numeric operation code carried in every envelope. It doubles
// as the correlation key: responses are matched to commands by code alone.
type OpCode int

const (
	OpFetchSchedule  OpCode = 2001
	OpAssignWorker   OpCode = 2002
	OpUnassignWorker OpCode = 2003
	OpCreateShift    OpCode = 2004
	OpUpdateShift    OpCode = 2005
	OpDeleteShift    OpCode = 2006
)

func (c OpCode) String() string {
	switch c {
	case OpFetchSchedule:
		return "fetch_schedule"
	case OpAssignWorker:
		return "assign_worker"
	case OpUnassignWorker:
		return "unassign_worker"
	case OpCreateShift:
		return "create_shift"
	case OpUpdateShift:
		return "update_shift"
	case OpDeleteShift:
		return "delete_shift"
	}
	return "op_" + strconv.Itoa(int(c))
}

// Mutating reports whether a successful response to this code changes server
// state and therefore must trigger a schedule reload.
func (c OpCode) Mutating() bool {
	switch c {
	case OpAssignWorker, OpUnassignWorker, OpCreateShift, OpUpdateShift, OpDeleteShift:
		return true
	}
	return false
}
