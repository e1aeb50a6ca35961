package ui

import (
	"context"
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/kmon/internal/backend"
	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/theme"
	"github.com/orhun/kmon/internal/ui/command"
	uistate "github.com/orhun/kmon/internal/ui/state"
)

type msgHandler func(tea.Msg) tea.Cmd

// Config carries the collaborators of the model.
type Config struct {
	Context   context.Context
	Kernel    *kernel.Kernel
	Mux       *backend.Multiplexer
	Styles    *theme.Styles
	Clipboard Clipboard
	// Width and Height pin the layout size; zero follows the terminal.
	Width  int
	Height int
}

// Model implements the Bubble Tea model driving the kernel module console.
type Model struct {
	ctx       context.Context
	kernel    *kernel.Kernel
	mux       *backend.Multiplexer
	styles    *theme.Styles
	clipboard Clipboard
	bus       *command.Bus
	app       *uistate.App

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	// listening is set once Init arms the multiplexer wait loop.
	listening bool
	quitting  bool
	autoEnter bool

	inputCursor      cursor.Model
	inputCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state with the module table selected.
func NewModel(cfg Config) *Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	styles := cfg.Styles
	if styles == nil {
		styles = theme.Default()
	}
	m := &Model{
		ctx:       ctx,
		kernel:    cfg.Kernel,
		mux:       cfg.Mux,
		styles:    styles,
		clipboard: cfg.Clipboard,
		bus:       command.New(cfg.Kernel.Modules),
		app:       uistate.NewApp(uistate.PanelModuleTable),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Default != nil {
		c.TextStyle = styles.Default.Copy()
	}
	c.SetChar(" ")
	m.inputCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.listening = true
	cmds := []tea.Cmd{waitForEvent(m.ctx, m.mux)}
	if cmd := m.inputCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateInputCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(muxEventMsg{}):       m.handleMuxEventMsg,
		reflect.TypeOf(muxDoneMsg{}):        m.handleMuxDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.inputCursorDirty {
		m.inputCursorDirty = false
		if m.listening {
			m.inputCursor.Blink = false
			if cmd := m.inputCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// handleKeyMsg forwards terminal keys to the multiplexer. They come back in
// order through the event stream.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	m.mux.Input(keyMsg)
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

// Quitting reports whether a quit key was consumed.
func (m *Model) Quitting() bool {
	return m.quitting
}

// App exposes the UI state.
func (m *Model) App() *uistate.App {
	return m.app
}

// Kernel exposes the kernel engines.
func (m *Model) Kernel() *kernel.Kernel {
	return m.kernel
}
