package domain

// Role is a worker role on a shift. The set is closed: crews are staffed
// from these four roles only.
type Role string

const (
	RoleStagehand        Role = "stagehand"
	RoleCrewChief        Role = "crew_chief"
	RoleForkliftOperator Role = "forklift_operator"
	RoleTruckDriver      Role = "truck_driver"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleStagehand, RoleCrewChief, RoleForkliftOperator, RoleTruckDriver}

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[string]bool{
	"stagehand": true, "crew_chief": true,
	"forklift_operator": true, "truck_driver": true,
}

// NormalizeRole maps an arbitrary role string to a Role, falling back to
// stagehand for empty or unknown values.
func NormalizeRole(s string) Role {
	if ValidRoles[s] {
		return Role(s)
	}
	return RoleStagehand
}

// StaffingStatus classifies a shift's fill level. It is derived from
// headcounts on every render and never stored.
type StaffingStatus string

const (
	StaffingNoWorkers    StaffingStatus = "no-workers"
	StaffingUnderstaffed StaffingStatus = "understaffed"
	StaffingFullyStaffed StaffingStatus = "fully-staffed"
	StaffingOverstaffed  StaffingStatus = "overstaffed"
)
