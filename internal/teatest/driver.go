// Package teatest provides a synchronous test driver for bubbletea models.
//
// It replaces tea.Program in tests by calling Update() directly and
// synchronously draining returned Cmds, so tea.Model implementations can be
// tested deterministically without the bubbletea runtime goroutines.
//
// Two kinds of Cmds block: cursor blink timers, which are skipped outright,
// and the board's dispatcher event wait, which only yields once the loopback
// server has replied. Blocking Cmds are parked instead of dropped and can be
// resumed with Settle once the reply is expected to have arrived.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDrainDepth bounds command draining so a misbehaving model cannot spin
// the test forever.
const maxDrainDepth = 100

// cmdPatience is how long a Cmd may run before it is parked. Message
// factories and in-memory DB queries finish in microseconds; cursor blink
// Cmds sleep ~530ms, so 10ms cleanly separates the two.
const cmdPatience = 10 * time.Millisecond

// Driver drives any tea.Model synchronously.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set when tea.QuitMsg is seen during drain. The real
	// runtime intercepts that message, so models rarely handle it; the
	// driver detects it explicitly.
	Quitting bool

	// parked holds the result channel of the most recent Cmd that did not
	// finish within cmdPatience, typically the event-channel wait. The Cmd's
	// goroutine keeps running and delivers its message here; Settle resumes
	// waiting on it so the message is never lost.
	parked chan tea.Msg
}

// New creates a Driver for the given model and applies options.
// Call DrainInit() after construction to process the model's Init() command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize sends an initial WindowSizeMsg before any other processing.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.T.Helper()
		updated, _ := d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
		d.Model = updated
	}
}

// DrainInit executes the model's Init() command and drains everything that
// follows from it.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drainCmd(d.Model.Init(), 0)
}

// Send dispatches a message through Update and drains all resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(cmd, 0)
}

// Settle resumes the parked Cmd, if any, waiting up to timeout for it to
// yield a message. Call it after an action that round-trips through the
// dispatcher so the resulting event reaches the model.
func (d *Driver) Settle(timeout time.Duration) {
	d.T.Helper()
	ch := d.parked
	if ch == nil {
		return
	}
	d.parked = nil

	select {
	case msg := <-ch:
		if msg != nil {
			d.feed(msg, 0)
		}
	case <-time.After(timeout):
		// Still pending; park it again for a later Settle.
		d.parked = ch
	}
}

// PressKey sends a character key.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// PressEnter sends the Enter key.
func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

// PressEsc sends the Escape key.
func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

// PressCtrlC sends Ctrl+C.
func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

// PressUp sends the Up arrow key.
func (d *Driver) PressUp() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyUp})
}

// PressDown sends the Down arrow key.
func (d *Driver) PressDown() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends a string character by character as individual key events.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the full rendered output of the model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drainCmd(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil || depth >= maxDrainDepth {
		if depth >= maxDrainDepth {
			d.T.Logf("teatest.Driver: drain depth limit (%d) reached", maxDrainDepth)
		}
		return
	}

	msg, done := d.execWithPatience(cmd)
	if !done || msg == nil {
		return
	}
	d.feed(msg, depth)
}

// feed routes one message through the model, expanding batches and
// detecting quit.
func (d *Driver) feed(msg tea.Msg, depth int) {
	d.T.Helper()

	// Cursor blink messages chain into sleeping timer Cmds; drop them.
	if isCursorBlink(msg) {
		return
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			if sub == nil {
				continue
			}
			d.drainCmd(sub, depth+1)
		}
		return
	}

	if _, isQuit := msg.(tea.QuitMsg); isQuit {
		d.Quitting = true
		updated, _ := d.Model.Update(msg)
		d.Model = updated
		return
	}

	updated, nextCmd := d.Model.Update(msg)
	d.Model = updated
	d.drainCmd(nextCmd, depth+1)
}

// execWithPatience runs a Cmd, parking it if it does not finish promptly.
func (d *Driver) execWithPatience(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(cmdPatience):
		d.parked = ch
		return nil, false
	}
}

// isCursorBlink detects cursor blink messages from the bubbles/cursor
// package. Their types (initialBlinkMsg, BlinkMsg) are unexported, so they
// are matched by name.
func isCursorBlink(msg tea.Msg) bool {
	t := fmt.Sprintf("%T", msg)
	return strings.Contains(t, "Blink") || strings.Contains(t, "blink")
}
