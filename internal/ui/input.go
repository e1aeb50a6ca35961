package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/logging/events"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

// handleInputKey edits the query while the input panel owns the keyboard.
func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	app := m.app
	modules := m.kernel.Modules
	app.ShowOptions = false

	switch {
	case key.Matches(msg, inputKeys.Quit):
		return m.quit()
	case key.Matches(msg, inputKeys.Previous):
		app.Mode = app.Mode.Previous()
		app.Query.Clear()
		events.Input.Mode(app.Mode.String())
	case key.Matches(msg, inputKeys.Next):
		app.Mode = app.Mode.Next()
		app.Query.Clear()
		events.Input.Mode(app.Mode.String())
	case key.Matches(msg, inputKeys.Copy):
		m.copyText(app.Query.String())
	case key.Matches(msg, inputKeys.Paste):
		if app.Query.Insert(m.pasteText()) {
			modules.Index = 0
			m.inputCursorDirty = true
		}
	case key.Matches(msg, inputKeys.Exit):
		m.exitInput(msg)
	case key.Matches(msg, inputKeys.Backspace):
		if app.Query.DeleteBackward() {
			modules.Index = 0
			m.inputCursorDirty = true
		}
	case key.Matches(msg, inputKeys.Clear):
		if app.Query.Clear() {
			modules.Index = 0
			m.inputCursorDirty = true
		}
	case key.Matches(msg, inputKeys.Escape):
		m.mux.Input(deleteKey)
		m.mux.Input(enterKey)
	case (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		if app.Query.Insert(text) {
			modules.Index = 0
			m.inputCursorDirty = true
			events.Input.Query(app.Mode.String(), app.Query.String())
		}
	}
	return nil
}

// exitInput leaves text entry. A Load query is staged as a load command.
func (m *Model) exitInput(msg tea.KeyMsg) {
	app := m.app
	modules := m.kernel.Modules
	switch msg.String() {
	case "left":
		app.Selected = app.Selected.Previous()
	case "enter":
		if app.Mode == uistate.InputLoad && !app.Query.Empty() {
			app.Selected = uistate.PanelModuleInfo
		} else {
			app.Selected = uistate.PanelModuleTable
		}
	case "?", "f1":
		// Help leaves the query and any staged load untouched.
		modules.ShowHelp(helpLines(keys.helpBindings()))
		app.Selected = uistate.PanelModuleTable
		events.Input.Exit(app.Mode.String(), app.Query.String())
		app.Mode = uistate.InputNone
		return
	default:
		app.Selected = uistate.PanelModuleTable
	}

	query := app.Query.String()
	switch {
	case app.Mode == uistate.InputSearch && modules.Index == 0:
		modules.Filter(app.FilterQuery())
		modules.Scroll(m.ctx, kernel.Top)
	case app.Mode == uistate.InputLoad && query != "":
		modules.Stage(kernel.CommandLoad, query)
		app.Query.Clear()
	}
	events.Input.Exit(app.Mode.String(), query)
	app.Mode = uistate.InputNone
}

// updateInputCursor keeps the blinking cursor in sync with Bubble Tea ticks.
func (m *Model) updateInputCursor(msg tea.Msg) tea.Cmd {
	if m.app.Mode.IsNone() {
		return nil
	}
	var cmd tea.Cmd
	m.inputCursor, cmd = m.inputCursor.Update(msg)
	return cmd
}
