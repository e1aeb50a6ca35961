package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/orhun/kmon/internal/backend"
	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/logging"
	"github.com/orhun/kmon/internal/logging/events"
	"github.com/orhun/kmon/internal/theme"
	"github.com/orhun/kmon/internal/ui"
)

// DefaultTickrate is the refresh interval used when none is configured.
const DefaultTickrate = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	AccentColor string
	MainColor   string
	Tickrate    time.Duration
	Reverse     bool
	Unicode     bool
	Sort        kernel.SortKey
}

// Options holds the collaborators Run builds by default. Tests replace them.
type Options struct {
	Runner     kernel.Runner
	Clipboard  ui.Clipboard
	ProgramOps []tea.ProgramOption
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	return RunWith(context.Background(), cfg, Options{})
}

// RunWith is Run with explicit collaborators.
func RunWith(ctx context.Context, cfg Config, opts Options) (err error) {
	runner := opts.Runner
	if runner == nil {
		runner = kernel.ExecRunner{}
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = ui.SystemClipboard()
	}
	tick := cfg.Tickrate
	if tick <= 0 {
		tick = DefaultTickrate
	}

	styles, err := theme.New(cfg.AccentColor, cfg.MainColor, cfg.Unicode)
	if err != nil {
		return fmt.Errorf("build theme: %w", err)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	k, err := kernel.New(ctx, runner, kernel.ListOptions{Sort: cfg.Sort, Reverse: cfg.Reverse}, styles.Glyphs)
	if err != nil {
		return fmt.Errorf("load kernel modules: %w", err)
	}

	// The poller reads through its own window so it never touches UI state.
	mux := backend.NewMultiplexer(kernel.NewLogWindow(runner), tick)
	if err := mux.Start(ctx); err != nil {
		return fmt.Errorf("start pollers: %w", err)
	}
	defer func() {
		cancel()
		mux.Stop()
		if werr := mux.Wait(); werr != nil {
			logging.Error(werr)
		}
		events.App.Exit(err)
	}()

	model := ui.NewModel(ui.Config{
		Context:   ctx,
		Kernel:    k,
		Mux:       mux,
		Styles:    styles,
		Clipboard: clip,
	})
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts.ProgramOps...)
	program := tea.NewProgram(model, programOpts...)
	defer func() {
		if r := recover(); r != nil {
			_ = program.ReleaseTerminal()
			err = fmt.Errorf("ui panicked: %v", r)
		}
	}()
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
