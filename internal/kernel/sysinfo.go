package kernel

import (
	"context"

	"github.com/orhun/kmon/internal/logging/events"
)

const unavailable = "-"

type infoEntry struct {
	title string
	args  []string
	text  string
}

// SystemInfo cycles through kernel identification strings from uname.
type SystemInfo struct {
	runner  Runner
	entries []infoEntry
	index   int
}

// NewSystemInfo fetches every entry once.
func NewSystemInfo(ctx context.Context, runner Runner) *SystemInfo {
	s := &SystemInfo{
		runner: runner,
		entries: []infoEntry{
			{title: "Kernel Release", args: []string{"-srm"}},
			{title: "Kernel Version", args: []string{"-v"}},
			{title: "Kernel Platform", args: []string{"-opi"}},
		},
	}
	s.Refresh(ctx)
	return s
}

// Refresh re-runs uname for every entry. Failures show as "-".
func (s *SystemInfo) Refresh(ctx context.Context) {
	for i := range s.entries {
		entry := &s.entries[i]
		out, err := s.runner.Run(ctx, "uname", entry.args...)
		if err != nil {
			events.Kernel.ExecError(CommandLine("uname", entry.args...), err)
			out = unavailable
		}
		entry.text = out
	}
}

// Next advances to the following entry. Wrapping refreshes all entries.
func (s *SystemInfo) Next(ctx context.Context) {
	s.index++
	if s.index >= len(s.entries) {
		s.index = 0
		s.Refresh(ctx)
	}
}

// Title returns the label of the current entry.
func (s *SystemInfo) Title() string {
	return s.entries[s.index].title
}

// Text returns the value of the current entry.
func (s *SystemInfo) Text() string {
	return s.entries[s.index].text
}
