package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkovach/crewboard/internal/board"
	"github.com/mkovach/crewboard/internal/cli/formatter"
	"github.com/mkovach/crewboard/internal/dispatch"
)

// appModel is the root bubbletea Model for the board TUI.
// It manages a view stack, the inline banner, and the bridge that turns
// dispatcher events into messages.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App) appModel {
	session := board.NewSession(app.now(), app.Loc)
	state := &SharedState{
		App:     app,
		Session: session,
		Drop:    board.NewDropController(app.Dispatcher),
	}
	m := appModel{state: state}

	// Start with the board as the home view.
	m.viewStack = []View{newBoardView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.state.App.Dispatcher.Events())}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case dispatchEventMsg:
		return m.handleDispatchEvent(msg)

	case bannerMsg:
		m.state.SetBanner(msg.text, msg.isErr)
		return m, nil

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, msg.nextCmd

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views reload
		// after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit only from the board root; forms own their keys.
	if len(m.viewStack) == 1 {
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}
	} else if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// handleDispatchEvent routes one dispatcher outcome. Every failure is local:
// the banner changes, the loaded state does not.
func (m appModel) handleDispatchEvent(msg dispatchEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Event stream closed: channel is gone.
		m.state.SetBanner("connection closed", true)
		return m, nil
	}

	rearm := waitForEvent(m.state.App.Dispatcher.Events())
	ev := msg.event

	switch ev.Kind {
	case dispatch.EventScheduleLoaded:
		m.state.Session.SetShifts(ev.Shifts)
		m.state.ClearBanner()
		var cmds []tea.Cmd
		cmds = append(cmds, rearm)
		for i, v := range m.viewStack {
			updated, cmd := v.Update(refreshViewMsg{})
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case dispatch.EventMutationApplied:
		text := ev.Message
		if text == "" {
			text = ev.Code.String() + " applied"
		}
		m.state.SetBanner(text, false)
		return m, rearm

	case dispatch.EventRejected:
		m.state.SetBanner(ev.Err, true)
		return m, rearm

	case dispatch.EventProtocolError, dispatch.EventTimeout:
		m.state.SetBanner(ev.Err, true)
		return m, rearm
	}
	return m, rearm
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header: breadcrumb trail of view titles.
	crumbs := make([]string, 0, len(m.viewStack))
	for _, v := range m.viewStack {
		crumbs = append(crumbs, v.Title())
	}
	b.WriteString(formatter.StyleHeader.Render("crewboard"))
	b.WriteString(formatter.Dim(" › " + strings.Join(crumbs, " › ")))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(strings.Repeat("─", max(1, m.state.Width))))
	b.WriteString("\n")

	// Banner line.
	switch {
	case m.state.Banner == "":
		b.WriteString("\n")
	case m.state.BannerErr:
		b.WriteString(formatter.StyleRed.Render("✗ " + m.state.Banner))
		b.WriteString("\n")
	default:
		b.WriteString(formatter.StyleGreen.Render("✔ " + m.state.Banner))
		b.WriteString("\n")
	}

	if v := m.activeView(); v != nil {
		b.WriteString(v.View())
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(strings.Repeat("─", max(1, m.state.Width))))
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m appModel) renderHelp() string {
	v := m.activeView()
	if v == nil {
		return ""
	}
	hints := make([]string, 0, 8)
	for _, binding := range v.ShortHelp() {
		h := binding.Help()
		hints = append(hints, formatter.StyleBlue.Render(h.Key)+formatter.Dim(" "+h.Desc))
	}
	return lipgloss.NewStyle().MaxWidth(max(1, m.state.Width)).Render(strings.Join(hints, formatter.Dim("  ·  ")))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
