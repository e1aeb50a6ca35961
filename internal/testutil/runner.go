package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnscripted is returned for a command line the fake has no entry for.
var ErrUnscripted = errors.New("unscripted command")

type reply struct {
	out string
	err error
}

// FakeRunner answers external invocations from a script keyed by the
// space-joined command line. It is safe for concurrent use.
type FakeRunner struct {
	mu      sync.Mutex
	replies map[string][]reply
	calls   []string
}

// NewFakeRunner returns an empty script.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{replies: make(map[string][]reply)}
}

// Script queues stdout for the command line. When several replies are
// queued they are returned in order and the last one repeats.
func (f *FakeRunner) Script(line, out string) *FakeRunner {
	return f.push(line, reply{out: out})
}

// Fail queues a failure whose message is stderr.
func (f *FakeRunner) Fail(line, stderr string) *FakeRunner {
	return f.push(line, reply{err: errors.New(stderr)})
}

func (f *FakeRunner) push(line string, r reply) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[line] = append(f.replies[line], r)
	return f
}

// Run implements kernel.Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)
	queue := f.replies[line]
	if len(queue) == 0 {
		return "", fmt.Errorf("%w: %s", ErrUnscripted, line)
	}
	r := queue[0]
	if len(queue) > 1 {
		f.replies[line] = queue[1:]
	}
	return r.out, r.err
}

// Calls returns every command line run so far.
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Count returns how many times line was run.
func (f *FakeRunner) Count(line string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, call := range f.calls {
		if call == line {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls but keeps the script.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}
