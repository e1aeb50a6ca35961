package backend

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

type stubLogs struct {
	mu      sync.Mutex
	outputs []string
	current string
	head    string
	polls   int
	panic   bool
}

func (s *stubLogs) Update(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panic {
		panic("log source exploded")
	}
	s.polls++
	if len(s.outputs) > 0 {
		s.current = s.outputs[0]
		if len(s.outputs) > 1 {
			s.outputs = s.outputs[1:]
		}
	}
	head, _, _ := strings.Cut(s.current, "\n")
	if head == s.head {
		return false, nil
	}
	s.head = head
	return true, nil
}

func (s *stubLogs) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func collect(t *testing.T, m *Multiplexer, d time.Duration) []Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	var out []Event
	for {
		evt, err := m.Next(ctx)
		if err != nil {
			return out
		}
		out = append(out, evt)
	}
}

func TestMultiplexerMergesTicksAndLogs(t *testing.T) {
	defer goleak.VerifyNone(t)
	logs := &stubLogs{outputs: []string{"boot\nline"}}
	m := NewMultiplexer(logs, 5*time.Millisecond)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	m.Input(runeKey('q'))

	received := collect(t, m, 200*time.Millisecond)
	m.Stop()
	if err := m.Wait(); err != nil {
		t.Fatalf("unexpected worker error: %v", err)
	}

	var ticks, updates, keys int
	for _, evt := range received {
		switch evt.Kind {
		case KindTick:
			ticks++
		case KindKernelLog:
			updates++
			if evt.Log != "boot\nline" {
				t.Fatalf("unexpected log payload %q", evt.Log)
			}
		case KindInput:
			keys++
		}
	}
	if ticks == 0 {
		t.Fatalf("expected tick events")
	}
	if updates != 1 {
		t.Fatalf("expected one log update for an unchanged head, got %d", updates)
	}
	if keys != 1 {
		t.Fatalf("expected one key event, got %d", keys)
	}
	logs.mu.Lock()
	polls := logs.polls
	logs.mu.Unlock()
	if polls < 2 {
		t.Fatalf("expected repeated log polls, got %d", polls)
	}
}

func TestMultiplexerStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	m := NewMultiplexer(nil, time.Millisecond)
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := m.Start(ctx); err != ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	cancel()
	if err := m.Wait(); err != nil {
		t.Fatalf("unexpected worker error: %v", err)
	}
}

func TestMultiplexerSurfacesWorkerPanic(t *testing.T) {
	defer goleak.VerifyNone(t)
	m := NewMultiplexer(&stubLogs{panic: true}, time.Millisecond)
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	err := m.Wait()
	m.Stop()
	if err == nil || !strings.Contains(err.Error(), "kernel-log poller panicked") {
		t.Fatalf("expected poller panic error, got %v", err)
	}
}

func TestWaitBeforeStart(t *testing.T) {
	m := NewMultiplexer(nil, 0)
	if err := m.Wait(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	m.Stop()
	m.Input(runeKey('x'))
	if m.Pending() != 1 {
		t.Fatalf("expected queued key, got %d", m.Pending())
	}
}
