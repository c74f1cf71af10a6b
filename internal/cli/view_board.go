package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/board"
	"github.com/mkovach/crewboard/internal/calendar"
	"github.com/mkovach/crewboard/internal/cli/formatter"
	"github.com/mkovach/crewboard/internal/domain"
)

// paneFocus selects which pane receives cursor keys.
type paneFocus int

const (
	focusGrid paneFocus = iota
	focusWorkers
)

// workersLoadedMsg signals that the worker directory has been loaded.
type workersLoadedMsg struct {
	workers []*domain.Worker
	err     error
}

// jobsLoadedMsg signals that the job directory has been loaded.
type jobsLoadedMsg struct {
	jobs []*domain.Job
	err  error
}

// boardView is the scheduling board: calendar pane on the left, worker
// panel on the right. All mutations flow out through the drop controller
// and editor commands; fresh state arrives via refreshViewMsg after the
// dispatcher reloads.
type boardView struct {
	state *SharedState
	focus paneFocus

	// Grid cursor. cursor indexes the current grid's buckets; hourCursor
	// selects the hour row inside a week-view day column.
	cursor     int
	hourCursor int

	// shiftCursor cycles through shifts in the cursor bucket.
	shiftCursor int

	workerCursor int
	loading      bool
}

func newBoardView(state *SharedState) *boardView {
	return &boardView{
		state:      state,
		hourCursor: 9,
		loading:    true,
	}
}

func (v *boardView) ID() ViewID { return ViewBoard }

func (v *boardView) Title() string {
	s := v.state.Session
	switch s.View {
	case calendar.ViewDay:
		return s.Anchor.Format("Mon Jan 2, 2006")
	case calendar.ViewMonth:
		return s.Anchor.Format("January 2006")
	default:
		grid := s.Grid()
		return grid[0].Date.Format("Jan 2") + " – " + grid[6].Date.Format("Jan 2, 2006")
	}
}

func (v *boardView) ShortHelp() []key.Binding {
	if v.state.Drop.Dragging() != nil {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "drop")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "day/week/month")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "workers")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab worker")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new shift")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filters")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *boardView) Init() tea.Cmd {
	return tea.Batch(v.loadDirectories(), v.fetchSchedule())
}

// fetchSchedule dispatches the fetch for the session's current window.
// Dispatch failures (not connected, in flight) surface on the banner; the
// previous render state stays.
func (v *boardView) fetchSchedule() tea.Cmd {
	cmd := v.state.Session.FetchCommand()
	dispatcher := v.state.App.Dispatcher
	return func() tea.Msg {
		if err := dispatcher.Dispatch(cmd); err != nil {
			return bannerMsg{text: err.Error(), isErr: true}
		}
		return nil
	}
}

func (v *boardView) loadDirectories() tea.Cmd {
	app := v.state.App
	return tea.Batch(
		func() tea.Msg {
			workers, err := app.Workers.List(context.Background())
			return workersLoadedMsg{workers: workers, err: err}
		},
		func() tea.Msg {
			jobs, err := app.Jobs.List(context.Background())
			return jobsLoadedMsg{jobs: jobs, err: err}
		},
	)
}

func (v *boardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workersLoadedMsg:
		if msg.err != nil {
			return v, showBanner(msg.err.Error(), true)
		}
		workers := make([]domain.Worker, 0, len(msg.workers))
		for _, w := range msg.workers {
			workers = append(workers, *w)
		}
		v.state.Session.Workers = workers
		v.clampCursors()
		return v, nil

	case jobsLoadedMsg:
		if msg.err != nil {
			return v, showBanner(msg.err.Error(), true)
		}
		jobs := make([]domain.Job, 0, len(msg.jobs))
		for _, j := range msg.jobs {
			jobs = append(jobs, *j)
		}
		v.state.Session.Jobs = jobs
		return v, nil

	case refreshViewMsg:
		v.loading = false
		v.clampCursors()
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *boardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := v.state.Session

	switch msg.String() {
	case "tab":
		session.CycleView()
		v.cursor = 0
		v.shiftCursor = 0
		return v, v.fetchSchedule()

	case "]":
		session.Next()
		return v, v.fetchSchedule()

	case "[":
		session.Prev()
		return v, v.fetchSchedule()

	case "t":
		session.Today(v.state.App.now())
		return v, v.fetchSchedule()

	case "r":
		v.loading = true
		return v, v.fetchSchedule()

	case "w":
		if v.focus == focusGrid {
			v.focus = focusWorkers
		} else {
			v.focus = focusGrid
		}
		return v, nil

	case "f":
		return v, pushView(newFilterFormView(v.state))

	case "1":
		return v, pushView(newWorkerListView(v.state))

	case "2":
		return v, pushView(newJobListView(v.state))

	case "esc":
		if v.state.Drop.Dragging() != nil {
			v.state.Drop.DragEnd()
			return v, showBanner("drag cancelled", false)
		}
		return v, nil

	case "g":
		return v, v.grabWorker()

	case "enter":
		if v.state.Drop.Dragging() != nil {
			return v, v.dropOnCursor()
		}
		if v.focus == focusWorkers {
			return v, v.grabWorker()
		}
		return v, v.editSelected()

	case "n":
		start, end := v.newShiftSpan()
		return v, pushView(newShiftFormView(v.state, board.NewCreateEditor(start, end)))

	case "e":
		return v, v.editSelected()

	case "a":
		return v, v.assignToSelected()

	case "u":
		return v, v.unassignFromSelected()

	case "d":
		return v, v.deleteSelected()

	case "T":
		if sh := v.selectedShift(); sh != nil {
			return v, pushView(newTimesheetView(v.state, sh.ID))
		}
		return v, nil

	case "s":
		if shifts := session.Index.AtBucket(v.cursorBucket()); len(shifts) > 0 {
			v.shiftCursor = (v.shiftCursor + 1) % len(shifts)
		}
		return v, nil
	}

	if v.focus == focusWorkers {
		v.moveWorkerCursor(msg)
	} else {
		v.moveGridCursor(msg)
	}
	return v, nil
}

// ── cursor movement ──────────────────────────────────────────────────────────

func (v *boardView) moveWorkerCursor(msg tea.KeyMsg) {
	n := len(v.state.Session.Workers)
	if n == 0 {
		return
	}
	switch msg.String() {
	case "up", "k":
		if v.workerCursor > 0 {
			v.workerCursor--
		}
	case "down", "j":
		if v.workerCursor < n-1 {
			v.workerCursor++
		}
	}
}

func (v *boardView) moveGridCursor(msg tea.KeyMsg) {
	session := v.state.Session
	grid := session.Grid()
	v.shiftCursor = 0

	switch session.View {
	case calendar.ViewDay:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(grid)-1 {
				v.cursor++
			}
		}

	case calendar.ViewWeek:
		switch msg.String() {
		case "left", "h":
			if v.cursor > 0 {
				v.cursor--
			}
		case "right", "l":
			if v.cursor < 6 {
				v.cursor++
			}
		case "up", "k":
			if v.hourCursor > 0 {
				v.hourCursor--
			}
		case "down", "j":
			if v.hourCursor < 23 {
				v.hourCursor++
			}
		}

	case calendar.ViewMonth:
		switch msg.String() {
		case "left", "h":
			if v.cursor > 0 {
				v.cursor--
			}
		case "right", "l":
			if v.cursor < len(grid)-1 {
				v.cursor++
			}
		case "up", "k":
			if v.cursor >= 7 {
				v.cursor -= 7
			}
		case "down", "j":
			if v.cursor+7 < len(grid) {
				v.cursor += 7
			}
		}
	}
}

func (v *boardView) clampCursors() {
	grid := v.state.Session.Grid()
	if v.cursor >= len(grid) {
		v.cursor = len(grid) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if n := len(v.state.Session.Workers); v.workerCursor >= n && n > 0 {
		v.workerCursor = n - 1
	}
	if shifts := v.state.Session.Index.AtBucket(v.cursorBucket()); v.shiftCursor >= len(shifts) {
		v.shiftCursor = 0
	}
}

// cursorBucket is the current drop/edit target. Week-view day columns
// narrow to the selected hour row so drops land on a concrete hour.
func (v *boardView) cursorBucket() calendar.Bucket {
	grid := v.state.Session.Grid()
	if len(grid) == 0 {
		return calendar.Bucket{}
	}
	i := v.cursor
	if i >= len(grid) {
		i = len(grid) - 1
	}
	b := grid[i]
	if v.state.Session.View == calendar.ViewWeek {
		b.Hour = v.hourCursor
	}
	return b
}

func (v *boardView) selectedShift() *domain.Shift {
	shifts := v.state.Session.Index.AtBucket(v.cursorBucket())
	if len(shifts) == 0 {
		return nil
	}
	i := v.shiftCursor
	if i >= len(shifts) {
		i = 0
	}
	return &shifts[i]
}

// newShiftSpan derives the editor's default window from the cursor bucket.
func (v *boardView) newShiftSpan() (time.Time, time.Time) {
	b := v.cursorBucket()
	if b.Hour < 0 {
		return b.Date.Add(9 * time.Hour), b.Date.Add(17 * time.Hour)
	}
	start := b.Start()
	return start, start.Add(4 * time.Hour)
}

// ── actions ──────────────────────────────────────────────────────────────────

func (v *boardView) grabWorker() tea.Cmd {
	workers := v.state.Session.Workers
	if v.workerCursor >= len(workers) {
		return nil
	}
	w := &workers[v.workerCursor]
	if !v.state.Drop.DragStart(w) {
		// Unavailable workers are not draggable; refuse silently.
		return nil
	}
	v.focus = focusGrid
	return showBanner("dragging "+w.Name+" — enter drops on the selected slot", false)
}

// dropOnCursor resolves the drop on the update loop so drag state is only
// ever touched there; Dispatch itself does not block.
func (v *boardView) dropOnCursor() tea.Cmd {
	cmd, err := v.state.Drop.Drop(v.cursorBucket(), v.state.Session.Index)
	if err != nil {
		return showBanner(err.Error(), true)
	}
	if cmd == nil {
		return nil
	}
	return showBanner(cmd.Code().String()+" sent", false)
}

func (v *boardView) editSelected() tea.Cmd {
	sh := v.selectedShift()
	if sh == nil {
		return nil
	}
	return pushView(newShiftFormView(v.state, board.NewEditEditor(sh)))
}

func (v *boardView) assignToSelected() tea.Cmd {
	sh := v.selectedShift()
	if sh == nil {
		return nil
	}
	return startAssignWizard(v.state, sh)
}

func (v *boardView) unassignFromSelected() tea.Cmd {
	sh := v.selectedShift()
	if sh == nil {
		return nil
	}
	return startUnassignWizard(v.state, sh)
}

func (v *boardView) deleteSelected() tea.Cmd {
	sh := v.selectedShift()
	if sh == nil {
		return nil
	}
	return startDeleteWizard(v.state, sh)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *boardView) View() string {
	session := v.state.Session

	panelWidth := 30
	gridWidth := v.state.Width - panelWidth - 1
	if gridWidth < 20 {
		gridWidth = 20
		panelWidth = 0
	}

	var gridPane string
	switch session.View {
	case calendar.ViewDay:
		gridPane = v.renderDay(gridWidth)
	case calendar.ViewMonth:
		gridPane = v.renderMonth(gridWidth)
	default:
		gridPane = v.renderWeek(gridWidth)
	}

	if v.loading {
		gridPane = formatter.Dim("loading schedule…") + "\n" + gridPane
	}

	if panelWidth == 0 {
		return gridPane
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(gridWidth).Render(gridPane),
		" ",
		v.renderWorkerPanel(panelWidth),
	)
}
