package kernel

import (
	"context"
	"testing"

	"github.com/orhun/kmon/internal/testutil"
	"github.com/orhun/kmon/internal/theme"
)

func unameRunner() *testutil.FakeRunner {
	return testutil.NewFakeRunner().
		Script("uname -srm", "Linux 6.6.1 x86_64").
		Script("uname -v", "#1 SMP PREEMPT_DYNAMIC").
		Script("uname -opi", "unknown unknown GNU/Linux")
}

func TestSystemInfoCycles(t *testing.T) {
	ctx := context.Background()
	runner := unameRunner()
	info := NewSystemInfo(ctx, runner)
	want := [][2]string{
		{"Kernel Release", "Linux 6.6.1 x86_64"},
		{"Kernel Version", "#1 SMP PREEMPT_DYNAMIC"},
		{"Kernel Platform", "unknown unknown GNU/Linux"},
		{"Kernel Release", "Linux 6.6.1 x86_64"},
	}
	for i, entry := range want {
		if info.Title() != entry[0] || info.Text() != entry[1] {
			t.Fatalf("step %d: expected %v, got %q %q", i, entry, info.Title(), info.Text())
		}
		info.Next(ctx)
	}
	if n := runner.Count("uname -srm"); n != 2 {
		t.Fatalf("expected wrap to refetch, got %d calls", n)
	}
}

func TestSystemInfoFailure(t *testing.T) {
	info := NewSystemInfo(context.Background(), testutil.NewFakeRunner())
	if info.Text() != "-" {
		t.Fatalf("expected placeholder, got %q", info.Text())
	}
}

func TestNewKernel(t *testing.T) {
	runner := unameRunner().
		Script(listLine, sampleModules).
		Script("modinfo abc", "license: GPL").
		Script(dmesgLine, "[  0.0] boot")
	k, err := New(context.Background(), runner, ListOptions{}, theme.NewGlyphs(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(k.Modules.Visible()) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(k.Modules.Visible()))
	}
	if k.Logs.Output() != "[  0.0] boot" {
		t.Fatalf("unexpected log %q", k.Logs.Output())
	}
	if err := k.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
}

func TestNewKernelToleratesUnreadableLog(t *testing.T) {
	runner := unameRunner().
		Script(listLine, sampleModules).
		Fail(dmesgLine, "operation not permitted")
	k, err := New(context.Background(), runner, ListOptions{}, theme.NewGlyphs(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k.Logs.Output() != "" {
		t.Fatalf("expected empty log, got %q", k.Logs.Output())
	}
	if err := k.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh to report the log failure")
	}
}

func TestNewKernelFailsWithoutModules(t *testing.T) {
	runner := unameRunner().Fail(listLine, "no such file")
	if _, err := New(context.Background(), runner, ListOptions{}, theme.NewGlyphs(false)); err == nil {
		t.Fatalf("expected listing failure")
	}
}
