package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkovach/crewboard/internal/dispatch"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg tells views to reload their data after a mutation.
type refreshViewMsg struct{}

// bannerMsg sets or clears the inline status banner. Errors keep the
// previous render state; only the banner changes.
type bannerMsg struct {
	text  string
	isErr bool
}

// dispatchEventMsg wraps one dispatcher event for the UI. The appModel
// re-arms the event bridge after each one.
type dispatchEventMsg struct {
	event dispatch.Event
	ok    bool // false when the event stream has closed
}

// wizardCompleteMsg is sent when a wizard form completes or is cancelled.
// The appModel handles it atomically: pop the wizard view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// showBanner returns a tea.Cmd that sets the status banner.
func showBanner(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return bannerMsg{text: text, isErr: isErr} }
}

// waitForEvent blocks on the dispatcher's event stream and delivers the
// next event as a message.
func waitForEvent(events <-chan dispatch.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return dispatchEventMsg{event: ev, ok: ok}
	}
}
