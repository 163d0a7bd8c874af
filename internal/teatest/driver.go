// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and returned Cmds are executed inline, so a
// test can walk a full-screen model through key presses without starting
// a tea.Program.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained Cmds a single Send follows.
const maxDepth = 50

// cmdTimeout skips Cmds that block on timers (ticks, blinks).
const cmdTimeout = 10 * time.Millisecond

// Driver feeds messages to a model and tracks whether it asked to quit.
type Driver struct {
	t     *testing.T
	model tea.Model
	quit  bool
}

// New wraps model. If width and height are positive a WindowSizeMsg is
// delivered first, which full-screen readers need before they render.
func New(t *testing.T, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	d.run(model.Init(), 0)
	if width > 0 && height > 0 {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return d
}

// Model returns the current model.
func (d *Driver) Model() tea.Model { return d.model }

// Quit reports whether the model returned tea.Quit.
func (d *Driver) Quit() bool { return d.quit }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send delivers msg and drains the resulting Cmds. Messages after a quit
// are dropped, as tea.Program would.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.run(cmd, 0)
}

// Press sends a key by name: "enter", "esc", "ctrl+c", "pgdown", "pgup",
// "up", "down", or a single rune such as "q".
func (d *Driver) Press(key string) {
	d.t.Helper()
	d.Send(KeyMsg(key))
}

// KeyMsg builds the tea.KeyMsg for a key name accepted by Press.
func KeyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "pgup":
		return tea.KeyMsg{Type: tea.KeyPgUp}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: stopped after %d chained commands", maxDepth)
		return
	}

	msg := execWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.QuitMsg:
		d.quit = true
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
	default:
		next, nextCmd := d.model.Update(m)
		d.model = next
		d.run(nextCmd, depth+1)
	}
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
