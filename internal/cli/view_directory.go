package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkovach/crewboard/internal/cli/formatter"
)

// workerListView is the read-only worker directory.
type workerListView struct {
	state  *SharedState
	cursor int
}

func newWorkerListView(state *SharedState) *workerListView {
	return &workerListView{state: state}
}

func (v *workerListView) ID() ViewID    { return ViewWorkers }
func (v *workerListView) Title() string { return "Workers" }

func (v *workerListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *workerListView) Init() tea.Cmd { return nil }

func (v *workerListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return v, popView()
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.state.Session.Workers)-1 {
				v.cursor++
			}
		}
	}
	return v, nil
}

func (v *workerListView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Bold(formatter.PadRight("Name", 24)) +
		formatter.Bold(formatter.PadRight("Role", 18)) +
		formatter.Bold(formatter.PadRight("Certs", 22)) +
		formatter.Bold("Avail  Load") + "\n")

	for i := range v.state.Session.Workers {
		w := &v.state.Session.Workers[i]
		marker := "  "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
		}
		name := formatter.PadRight(w.Name, 22)
		if !w.Available {
			name = formatter.Dim(name)
		}
		b.WriteString(marker + name +
			formatter.PadRight(string(w.DefaultRole()), 18) +
			formatter.Dim(formatter.PadRight(strings.Join(w.Certifications, ","), 22)) +
			formatter.PadRight(strconv.Itoa(w.AvailabilityScore)+"%", 7) +
			strconv.Itoa(w.CurrentShiftsCount) + "\n")
	}
	return b.String()
}

// jobListView is the read-only job/client directory.
type jobListView struct {
	state  *SharedState
	cursor int
}

func newJobListView(state *SharedState) *jobListView {
	return &jobListView{state: state}
}

func (v *jobListView) ID() ViewID    { return ViewJobs }
func (v *jobListView) Title() string { return "Jobs" }

func (v *jobListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "move")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *jobListView) Init() tea.Cmd { return nil }

func (v *jobListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return v, popView()
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.state.Session.Jobs)-1 {
				v.cursor++
			}
		}
	}
	return v, nil
}

func (v *jobListView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Bold(formatter.PadRight("Job", 30)) +
		formatter.Bold("Client") + "\n")
	for i := range v.state.Session.Jobs {
		j := &v.state.Session.Jobs[i]
		marker := "  "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("> ")
		}
		b.WriteString(marker + formatter.PadRight(j.Name, 30) + formatter.Dim(j.ClientName) + "\n")
	}
	return b.String()
}

// timesheetView is the navigation target reached from a shift card. The
// timesheet system is a separate collaborator; this view only names the
// shift being handed off.
type timesheetView struct {
	state   *SharedState
	shiftID string
}

func newTimesheetView(state *SharedState, shiftID string) *timesheetView {
	return &timesheetView{state: state, shiftID: shiftID}
}

func (v *timesheetView) ID() ViewID    { return ViewTimesheet }
func (v *timesheetView) Title() string { return "Timesheet" }

func (v *timesheetView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *timesheetView) Init() tea.Cmd { return nil }

func (v *timesheetView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		return v, popView()
	}
	return v, nil
}

func (v *timesheetView) View() string {
	return formatter.Dim("Timesheets for shift "+v.shiftID+" are managed in the timesheet module.") + "\n"
}
