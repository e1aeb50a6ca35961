package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/logging"
	"github.com/orhun/kmon/internal/logging/events"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

var (
	enterKey  = tea.KeyMsg{Type: tea.KeyEnter}
	deleteKey = tea.KeyMsg{Type: tea.KeyDelete}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// handleDefaultKey is the state machine step when no text is being entered.
func (m *Model) handleDefaultKey(msg tea.KeyMsg) tea.Cmd {
	app := m.app
	modules := m.kernel.Modules
	hideOptions := true
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, keys.Quit):
		if app.ShowOptions {
			app.ShowOptions = false
		} else {
			cmd = m.quit()
		}
	case key.Matches(msg, keys.Refresh):
		m.refresh()
	case key.Matches(msg, keys.Help):
		modules.ShowHelp(helpLines(keys.helpBindings()))
	case key.Matches(msg, keys.Options):
		app.ShowOptions = true
		hideOptions = false
	case key.Matches(msg, keys.Up):
		if app.ShowOptions {
			app.Options.Previous()
			hideOptions = false
			break
		}
		app.Options.Reset()
		m.scrollSelected(kernel.Up, smoothKeys[msg.String()])
	case key.Matches(msg, keys.Down):
		if app.ShowOptions {
			app.Options.Next()
			hideOptions = false
			break
		}
		app.Options.Reset()
		m.scrollSelected(kernel.Down, smoothKeys[msg.String()])
	case key.Matches(msg, keys.Previous):
		m.selectPanel(app.Selected.Previous())
	case key.Matches(msg, keys.Next):
		m.selectPanel(app.Selected.Next())
	case key.Matches(msg, keys.Grow):
		events.UI.Resize(app.Selected.String(), app.Sizes.Grow(app.Selected))
	case key.Matches(msg, keys.Shrink):
		events.UI.Resize(app.Selected.String(), app.Sizes.Shrink(app.Selected))
	case key.Matches(msg, keys.Rotate):
		app.Rotate()
	case key.Matches(msg, keys.Top):
		app.Options.Reset()
		app.Selected = uistate.PanelModuleTable
		modules.Scroll(m.ctx, kernel.Top)
	case key.Matches(msg, keys.Bottom):
		app.Options.Reset()
		app.Selected = uistate.PanelModuleTable
		modules.Scroll(m.ctx, kernel.Bottom)
	case key.Matches(msg, keys.LogUp):
		m.scrollLogs(kernel.Up)
	case key.Matches(msg, keys.LogDown):
		m.scrollLogs(kernel.Down)
	case key.Matches(msg, keys.LogLeft):
		m.scrollLogs(kernel.Left)
	case key.Matches(msg, keys.LogRight):
		m.scrollLogs(kernel.Right)
	case key.Matches(msg, keys.InfoUp):
		app.Selected = uistate.PanelModuleInfo
		modules.ScrollInfo(kernel.Up, false)
	case key.Matches(msg, keys.InfoDown):
		app.Selected = uistate.PanelModuleInfo
		modules.ScrollInfo(kernel.Down, false)
	case key.Matches(msg, keys.KernelInfo):
		m.kernel.Info.Next(m.ctx)
	case key.Matches(msg, keys.Dependents):
		modules.ShowDependents()
	case key.Matches(msg, keys.Clear):
		modules.Stage(kernel.CommandClear, "")
	case key.Matches(msg, keys.Unload):
		modules.Stage(kernel.CommandUnload, "")
	case key.Matches(msg, keys.Blacklist):
		modules.Stage(kernel.CommandBlacklist, "")
	case key.Matches(msg, keys.Reload):
		modules.Stage(kernel.CommandReload, "")
	case key.Matches(msg, keys.Confirm):
		if m.bus.Confirm(m.ctx) {
			m.mux.Input(runeKey('r'))
		}
	case key.Matches(msg, keys.Cancel):
		if m.bus.Cancel(m.ctx) {
			app.Selected = uistate.PanelModuleTable
		}
	case key.Matches(msg, keys.Copy):
		m.copyText(m.selectedText())
	case key.Matches(msg, keys.Paste):
		app.Query.Insert(m.pasteText())
		m.mux.Input(enterKey)
		modules.Index = 0
	case msg.Type == tea.KeyEnter && app.ShowOptions:
		m.applyOption()
	case key.Matches(msg, keys.Search), key.Matches(msg, keys.Load):
		m.enterInput(msg)
	case key.Matches(msg, keys.JumpToIndex):
		if len(modules.Visible()) > 0 {
			app.Selected = uistate.PanelModuleTable
			modules.JumpToDependent(m.ctx, int(msg.Runes[0]-'1'))
		}
	}

	if hideOptions && app.ShowOptions {
		app.ShowOptions = false
		events.UI.Options(false, app.Options.Index)
	} else if !hideOptions {
		events.UI.Options(true, app.Options.Index)
	}
	return cmd
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	events.UI.Quit()
	return tea.Quit
}

// refresh resets the UI state and reloads every kernel view.
func (m *Model) refresh() {
	m.app.Refresh()
	m.kernel.Modules.Filter("")
	if err := m.kernel.Refresh(m.ctx); err != nil {
		logging.Error(err)
	}
}

func (m *Model) selectPanel(panel uistate.Panel) {
	m.app.Selected = panel
	events.UI.Panel(panel.String())
}

func (m *Model) scrollSelected(dir kernel.Direction, smooth bool) {
	switch m.app.Selected {
	case uistate.PanelModuleTable:
		m.kernel.Modules.Scroll(m.ctx, dir)
	case uistate.PanelModuleInfo:
		m.kernel.Modules.ScrollInfo(dir, smooth)
	case uistate.PanelActivities:
		m.kernel.Logs.Scroll(dir, smooth)
	}
}

func (m *Model) scrollLogs(dir kernel.Direction) {
	m.app.Selected = uistate.PanelActivities
	m.kernel.Logs.Scroll(dir, false)
}

// selectedText is what the copy key places on the clipboard.
func (m *Model) selectedText() string {
	switch m.app.Selected {
	case uistate.PanelModuleTable:
		return m.kernel.Modules.CurrentName
	case uistate.PanelModuleInfo:
		return m.kernel.Modules.CurrentInfo.Raw
	case uistate.PanelActivities:
		return strings.TrimSpace(m.kernel.Logs.Selected())
	default:
		return ""
	}
}

// applyOption runs the highlighted options overlay entry.
func (m *Model) applyOption() {
	option, ok := m.app.Options.Selected()
	if !ok {
		return
	}
	modules := m.kernel.Modules
	if kind, ok := kernel.ParseCommandKind(option.ID); ok {
		if kind == kernel.CommandLoad {
			m.mux.Input(runeKey('+'))
		} else {
			modules.Stage(kind, "")
		}
		return
	}
	switch option.ID {
	case "dependent":
		modules.ShowDependents()
	case "copy":
		m.copyText(modules.CurrentName)
	}
}

// enterInput switches to text entry. Only Enter keeps the previous query.
func (m *Model) enterInput(msg tea.KeyMsg) {
	app := m.app
	app.Selected = uistate.PanelInput
	if key.Matches(msg, keys.Load) {
		app.Mode = uistate.InputLoad
	} else {
		app.Mode = uistate.InputSearch
	}
	if msg.Type != tea.KeyEnter {
		app.Query.Clear()
	}
	m.inputCursorDirty = true
	events.Input.Mode(app.Mode.String())
}
