package protocol

// Command is the closed set of client requests. Each variant maps to exactly
// one operation code; the dispatcher and server switch on the variant, never
// on raw numbers.
type Command interface {
	Code() OpCode
}

// Filters narrow a schedule fetch. Empty fields match everything.
type Filters struct {
	JobID    string `json:"job_id,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	WorkerID string `json:"worker_id,omitempty"`
	Role     string `json:"role,omitempty"`
	Status   string `json:"status,omitempty"`
}

// FetchSchedule asks for every shift overlapping [StartDate, EndDate].
type FetchSchedule struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	ViewType  string  `json:"view_type"`
	Filters   Filters `json:"filters"`
}

func (FetchSchedule) Code() OpCode { return OpFetchSchedule }

// AssignWorker puts a worker on an existing shift's roster.
type AssignWorker struct {
	ShiftID      string `json:"shift_id"`
	WorkerID     string `json:"worker_id"`
	RoleAssigned string `json:"role_assigned"`
}

func (AssignWorker) Code() OpCode { return OpAssignWorker }

// UnassignWorker removes a worker from a shift's roster.
type UnassignWorker struct {
	ShiftID      string `json:"shift_id"`
	WorkerID     string `json:"worker_id"`
	RoleAssigned string `json:"role_assigned"`
}

func (UnassignWorker) Code() OpCode { return OpUnassignWorker }

// AutoAssign embeds an assignment instruction in a create command so the new
// shift arrives already staffed (drop-to-create).
type AutoAssign struct {
	WorkerID     string `json:"worker_id"`
	RoleAssigned string `json:"role_assigned"`
}

// CreateShift creates a shift, optionally auto-assigning one worker.
type CreateShift struct {
	JobID               string         `json:"job_id,omitempty"`
	ShiftStart          string         `json:"shift_start_datetime"`
	ShiftEnd            string         `json:"shift_end_datetime"`
	RoleRequirements    map[string]int `json:"role_requirements"`
	ClientPONumber      string         `json:"client_po_number,omitempty"`
	SpecialInstructions string         `json:"special_instructions,omitempty"`
	AutoAssignWorker    *AutoAssign    `json:"auto_assign_worker,omitempty"`
}

func (CreateShift) Code() OpCode { return OpCreateShift }

// UpdateShift mutates an existing shift. Nil pointer fields are left
// untouched; a non-nil RoleRequirements replaces the whole requirement map.
type UpdateShift struct {
	ShiftID             string         `json:"shift_id"`
	JobID               *string        `json:"job_id,omitempty"`
	ShiftStart          *string        `json:"shift_start_datetime,omitempty"`
	ShiftEnd            *string        `json:"shift_end_datetime,omitempty"`
	RoleRequirements    map[string]int `json:"role_requirements,omitempty"`
	ClientPONumber      *string        `json:"client_po_number,omitempty"`
	SpecialInstructions *string        `json:"special_instructions,omitempty"`
}

func (UpdateShift) Code() OpCode { return OpUpdateShift }

// DeleteShift removes a shift and its assignments.
type DeleteShift struct {
	ShiftID string `json:"shift_id"`
}

func (DeleteShift) Code() OpCode { return OpDeleteShift }
