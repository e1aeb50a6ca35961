package ui

import tea "github.com/charmbracelet/bubbletea"

// Harness drives the UI model programmatically for integration tests. It
// stands in for the Bubble Tea runtime: every message is followed by a
// render, and events queued on the multiplexer are drained in order.
type Harness struct {
	model *Model
	quit  bool
	frame string
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model, executes any returned commands
// and consumes the queued events.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.update(msg)
	h.drain()
}

// Press sends each key in order.
func (h *Harness) Press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.Send(k)
	}
}

// Type sends one rune key per character of text.
func (h *Harness) Type(text string) {
	for _, r := range text {
		if r == ' ' {
			h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.Send(runeKey(r))
	}
}

func (h *Harness) update(msg tea.Msg) {
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.frame = h.model.View()
	h.processCmd(cmd)
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
		h.quit = true
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	default:
		h.update(msg)
	}
}

// drain feeds queued multiplexer events until none are left.
func (h *Harness) drain() {
	mux := h.model.mux
	if mux == nil {
		return
	}
	for !h.quit {
		evt, ok := mux.TryNext()
		if !ok {
			return
		}
		h.update(muxEventMsg{event: evt})
	}
}

// Quit reports whether the model returned tea.Quit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the frame rendered after the last message.
func (h *Harness) View() string {
	return h.frame
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
