package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/kmon/internal/backend"
	"github.com/orhun/kmon/internal/logging/events"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

func waitForEvent(ctx context.Context, mux *backend.Multiplexer) tea.Cmd {
	return func() tea.Msg {
		evt, err := mux.Next(ctx)
		if err != nil {
			return muxDoneMsg{err: err}
		}
		return muxEventMsg{event: evt}
	}
}

type muxEventMsg struct {
	event backend.Event
}

type muxDoneMsg struct {
	err error
}

func (m *Model) handleMuxEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(muxEventMsg)
	if !ok {
		return nil
	}
	cmd := m.step(eventMsg.event)
	if m.listening && !m.quitting {
		waitCmd := waitForEvent(m.ctx, m.mux)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleMuxDoneMsg(msg tea.Msg) tea.Cmd {
	m.listening = false
	return nil
}

// step consumes one event of the merged stream and prepares the next frame.
func (m *Model) step(evt backend.Event) tea.Cmd {
	var cmd tea.Cmd
	switch evt.Kind {
	case backend.KindInput:
		if m.quitting {
			return nil
		}
		events.UI.Key(evt.Key.String(), m.app.Selected.String(), m.app.Mode.String())
		if evt.Key.Type == tea.KeyEnter {
			m.autoEnter = false
		}
		if m.app.Mode.IsNone() {
			cmd = m.handleDefaultKey(evt.Key)
		} else {
			cmd = m.handleInputKey(evt.Key)
		}
	case backend.KindKernelLog:
		m.kernel.Logs.SetOutput(evt.Log)
		events.Kernel.LogUpdate(m.kernel.Logs.LineCount())
	case backend.KindTick:
	}
	m.prepareFrame()
	return cmd
}

// prepareFrame applies the per-frame derivations: the visible module list
// and the automatic transition into input mode.
func (m *Model) prepareFrame() {
	if m.quitting {
		return
	}
	m.kernel.Modules.Filter(m.app.FilterQuery())
	if m.app.Selected == uistate.PanelInput && m.app.Mode.IsNone() && !m.autoEnter {
		m.autoEnter = true
		m.mux.Input(tea.KeyMsg{Type: tea.KeyEnter})
	}
}
