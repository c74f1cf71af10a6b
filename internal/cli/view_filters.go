package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/mkovach/crewboard/internal/board"
	"github.com/mkovach/crewboard/internal/domain"
)

// newFilterFormView edits the board's filter state. Clearing every field
// shows the whole window again. Changing job or client re-fetches; the
// rest filter the loaded snapshot locally.
func newFilterFormView(state *SharedState) View {
	f := state.Session.Filter
	jobID := f.JobID
	clientID := f.ClientID
	workerID := f.WorkerID
	role := string(f.Role)
	status := string(f.Status)

	jobOptions := []huh.Option[string]{huh.NewOption("(all jobs)", "")}
	clientSeen := map[string]bool{}
	clientOptions := []huh.Option[string]{huh.NewOption("(all clients)", "")}
	for i := range state.Session.Jobs {
		j := &state.Session.Jobs[i]
		jobOptions = append(jobOptions, huh.NewOption(j.Label(), j.ID))
		if j.ClientName != "" && !clientSeen[j.ClientName] {
			clientSeen[j.ClientName] = true
			clientOptions = append(clientOptions, huh.NewOption(j.ClientName, j.ClientName))
		}
	}

	workerOptions := []huh.Option[string]{huh.NewOption("(all workers)", "")}
	for i := range state.Session.Workers {
		w := &state.Session.Workers[i]
		workerOptions = append(workerOptions, huh.NewOption(w.Name, w.ID))
	}

	roleOptions := []huh.Option[string]{huh.NewOption("(all roles)", "")}
	for _, r := range domain.AllRoles {
		roleOptions = append(roleOptions, huh.NewOption(string(r), string(r)))
	}

	statusOptions := []huh.Option[string]{
		huh.NewOption("(all statuses)", ""),
		huh.NewOption("no workers", string(domain.StaffingNoWorkers)),
		huh.NewOption("understaffed", string(domain.StaffingUnderstaffed)),
		huh.NewOption("fully staffed", string(domain.StaffingFullyStaffed)),
		huh.NewOption("overstaffed", string(domain.StaffingOverstaffed)),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Job").Options(jobOptions...).Value(&jobID),
			huh.NewSelect[string]().Title("Client").Options(clientOptions...).Value(&clientID),
			huh.NewSelect[string]().Title("Worker").Options(workerOptions...).Value(&workerID),
			huh.NewSelect[string]().Title("Role").Options(roleOptions...).Value(&role),
			huh.NewSelect[string]().Title("Staffing status").Options(statusOptions...).Value(&status),
		),
	).WithTheme(crewHuhTheme()).WithShowHelp(false)

	session := state.Session
	dispatcher := state.App.Dispatcher

	done := func() tea.Cmd {
		return func() tea.Msg {
			prev := session.Filter
			session.SetFilter(board.Filters{
				JobID:    jobID,
				ClientID: clientID,
				WorkerID: workerID,
				Role:     domain.Role(role),
				Status:   domain.StaffingStatus(status),
			})
			// Server-side filters changed: the window must be re-fetched.
			if prev.JobID != jobID || prev.ClientID != clientID {
				if err := dispatcher.Dispatch(session.FetchCommand()); err != nil {
					return bannerMsg{text: err.Error(), isErr: true}
				}
			}
			return refreshViewMsg{}
		}
	}
	return newWizardView(state, "Filters", form, done)
}
