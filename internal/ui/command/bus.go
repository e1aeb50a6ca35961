package command

import (
	"context"

	"github.com/orhun/kmon/internal/kernel"
	"github.com/orhun/kmon/internal/logging/events"
)

// Engine is the staged-command side of the module registry.
type Engine interface {
	Pending() kernel.CommandKind
	CurrentCommand() kernel.Command
	Execute(ctx context.Context) bool
	Cancel(ctx context.Context) bool
}

// Bus resolves staged module commands while emitting trace logs.
type Bus struct {
	engine Engine
}

// New initialises a command bus over engine.
func New(engine Engine) *Bus {
	return &Bus{engine: engine}
}

// Confirm runs the staged command and reports whether it succeeded.
func (b *Bus) Confirm(ctx context.Context) bool {
	kind := b.engine.Pending()
	cmd := b.engine.CurrentCommand()
	if kind.IsNone() {
		events.Command.Skip(kind.String(), cmd.Title)
		return false
	}
	events.Command.Queue(kind.String(), cmd.Title)
	ok := b.engine.Execute(ctx)
	events.Command.Result(kind.String(), cmd.Title, ok)
	return ok
}

// Cancel discards the staged command.
func (b *Bus) Cancel(ctx context.Context) bool {
	kind := b.engine.Pending()
	cmd := b.engine.CurrentCommand()
	if !b.engine.Cancel(ctx) {
		events.Command.Skip(kind.String(), cmd.Title)
		return false
	}
	events.Command.Cancel(kind.String(), cmd.Title)
	return true
}
