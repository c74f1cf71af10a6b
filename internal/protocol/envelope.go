package protocol

import (
	"encoding/json"
	"fmt"
)

// Request is the client->server envelope. RequestID carries the operation
// code; Data the command payload.
type Request struct {
	RequestID OpCode          `json:"request_id"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Response is the server->client envelope. RequestID echoes the operation
// code of the command that caused it.
type Response struct {
	RequestID OpCode          `json:"request_id"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// EncodeCommand wraps a command in a request envelope and marshals it.
func EncodeCommand(cmd Command) ([]byte, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", cmd.Code(), err)
	}
	req := Request{RequestID: cmd.Code(), Data: payload}
	frame, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s envelope: %w", cmd.Code(), err)
	}
	return frame, nil
}

// DecodeRequest parses a request envelope and its payload into the typed
// command for its operation code.
func DecodeRequest(frame []byte) (Command, error) {
	var req Request
	if err := json.Unmarshal(frame, &req); err != nil {
		return nil, fmt.Errorf("parsing request envelope: %w", err)
	}

	var cmd Command
	switch req.RequestID {
	case OpFetchSchedule:
		cmd = &FetchSchedule{}
	case OpAssignWorker:
		cmd = &AssignWorker{}
	case OpUnassignWorker:
		cmd = &UnassignWorker{}
	case OpCreateShift:
		cmd = &CreateShift{}
	case OpUpdateShift:
		cmd = &UpdateShift{}
	case OpDeleteShift:
		cmd = &DeleteShift{}
	default:
		return nil, fmt.Errorf("unknown operation code %d", req.RequestID)
	}

	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, cmd); err != nil {
			return nil, fmt.Errorf("parsing %s payload: %w", req.RequestID, err)
		}
	}
	return cmd, nil
}

// DecodeResponse parses a response envelope.
func DecodeResponse(frame []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(frame, &resp); err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}
	return &resp, nil
}

// OKResponse builds a success envelope for code with an optional payload.
func OKResponse(code OpCode, data any, message string) *Response {
	resp := &Response{RequestID: code, Success: true, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return ErrResponse(code, fmt.Sprintf("encoding response data: %v", err))
		}
		resp.Data = raw
	}
	return resp
}

// ErrResponse builds a failure envelope for code.
func ErrResponse(code OpCode, errMsg string) *Response {
	return &Response{RequestID: code, Success: false, Error: errMsg}
}

// Encode marshals a response envelope to a frame.
func (r *Response) Encode() []byte {
	frame, err := json.Marshal(r)
	if err != nil {
		// A response envelope of plain fields cannot fail to marshal;
		// fall back to a minimal failure frame if it somehow does.
		return []byte(fmt.Sprintf(`{"request_id":%d,"success":false,"error":"encoding response"}`, r.RequestID))
	}
	return frame
}
