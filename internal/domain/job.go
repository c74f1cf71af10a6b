package domain

// Job is work for a client company. The board consumes jobs as a read-only
// directory used to populate the editor's job selector.
type Job struct {
	ID         string
	Name       string
	ClientName string
}

// Label returns the display string used in job selectors and cards.
func (j *Job) Label() string {
	if j.ClientName == "" {
		return j.Name
	}
	return j.Name + " (" + j.ClientName + ")"
}
