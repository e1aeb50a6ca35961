package backend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/orhun/kmon/internal/logging"
	"github.com/orhun/kmon/internal/logging/events"
)

// Kind represents the type of event delivered by the multiplexer.
type Kind int

const (
	KindInput Kind = iota
	KindKernelLog
	KindTick
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindKernelLog:
		return "kernel-log"
	case KindTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Event is one item of the merged stream. Key is set for KindInput and Log
// for KindKernelLog.
type Event struct {
	Kind Kind
	Key  tea.KeyMsg
	Log  string
}

// LogSource is polled for kernel log changes. It is used only from the
// log poller goroutine.
type LogSource interface {
	Update(ctx context.Context) (bool, error)
	Output() string
}

const (
	logPoller  = "kernel-log"
	tickPoller = "tick"
	// logIntervalFactor scales the tick rate into the log poll interval.
	logIntervalFactor = 10
)

var ErrAlreadyStarted = errors.New("multiplexer already started")

// Multiplexer merges key input, kernel log polling and timer ticks into one
// ordered queue.
type Multiplexer struct {
	queue *Queue
	logs  LogSource
	tick  time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	group   *errgroup.Group
}

// NewMultiplexer creates a stopped multiplexer. A nil logs source disables
// the log poller.
func NewMultiplexer(logs LogSource, tick time.Duration) *Multiplexer {
	if tick <= 0 {
		tick = 250 * time.Millisecond
	}
	return &Multiplexer{queue: NewQueue(), logs: logs, tick: tick}
}

// Start launches the pollers. They run until ctx is done or Stop is called.
func (m *Multiplexer) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true
	ctx, m.cancel = context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	m.group = group
	if m.logs != nil {
		group.Go(m.guard(gctx, logPoller, m.tick*logIntervalFactor, m.pollLogs))
	}
	group.Go(m.guard(gctx, tickPoller, m.tick, m.pollTicks))
	return nil
}

// Input enqueues a key event. Real and synthetic keys share this entry.
func (m *Multiplexer) Input(key tea.KeyMsg) {
	m.queue.Push(Event{Kind: KindInput, Key: key})
}

// Next blocks for the next event.
func (m *Multiplexer) Next(ctx context.Context) (Event, error) {
	return m.queue.Next(ctx)
}

// TryNext returns the next event if one is queued.
func (m *Multiplexer) TryNext() (Event, bool) {
	return m.queue.TryNext()
}

// Pending returns the number of queued events.
func (m *Multiplexer) Pending() int {
	return m.queue.Len()
}

// Stop cancels every poller. Use Wait to join them.
func (m *Multiplexer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

// Wait blocks until every poller has exited and returns the first worker
// failure.
func (m *Multiplexer) Wait() error {
	m.mu.Lock()
	group := m.group
	m.mu.Unlock()
	if group == nil {
		return nil
	}
	return group.Wait()
}

func (m *Multiplexer) guard(ctx context.Context, name string, interval time.Duration, loop func(context.Context, time.Duration)) func() error {
	return func() (err error) {
		events.Poller.Start(name, interval.Milliseconds())
		defer events.Poller.Stop(name)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s poller panicked: %v", name, r)
				logging.Logger().WithField("poller", name).WithError(err).Error("poller stopped")
			}
		}()
		loop(ctx, interval)
		return nil
	}
}

func (m *Multiplexer) pollLogs(ctx context.Context, interval time.Duration) {
	poll := func() {
		changed, err := m.logs.Update(ctx)
		if err != nil {
			if ctx.Err() == nil {
				events.Poller.Error(logPoller, err)
			}
			return
		}
		if changed {
			m.queue.Push(Event{Kind: KindKernelLog, Log: m.logs.Output()})
		}
	}

	poll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

func (m *Multiplexer) pollTicks(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.queue.Push(Event{Kind: KindTick})
		}
	}
}
