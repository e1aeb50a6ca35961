package kernel

import (
	"context"

	"github.com/orhun/kmon/internal/logging/events"
	"github.com/orhun/kmon/internal/theme"
)

// Kernel groups the engines that talk to the running kernel. It is owned by
// the UI goroutine.
type Kernel struct {
	Modules *Modules
	Logs    *LogWindow
	Info    *SystemInfo
}

// New builds the engines and performs the initial listing and log read.
func New(ctx context.Context, runner Runner, opts ListOptions, glyphs theme.Glyphs) (*Kernel, error) {
	k := &Kernel{
		Modules: NewModules(runner, opts, glyphs),
		Logs:    NewLogWindow(runner),
		Info:    NewSystemInfo(ctx, runner),
	}
	if err := k.Modules.Refresh(ctx); err != nil {
		return nil, err
	}
	if err := k.Logs.Reload(ctx); err != nil {
		// An unreadable ring buffer leaves the activities panel empty.
		events.Kernel.ExecError(logSourceName, err)
	}
	return k, nil
}

// Refresh reloads the module list, the log and the kernel info. Failures
// keep the previous state and the first error is returned.
func (k *Kernel) Refresh(ctx context.Context) error {
	var first error
	if err := k.Modules.Refresh(ctx); err != nil {
		first = err
	}
	if err := k.Logs.Reload(ctx); err != nil && first == nil {
		first = err
	}
	k.Info.Refresh(ctx)
	return first
}
