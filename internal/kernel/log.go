package kernel

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
)

const (
	logSourceName = "dmesg"
	cropStep      = 10
)

var (
	logSourceArgs = []string{"--kernel", "--human", "--color=never"}
	clearLogArgs  = []string{"--clear"}
)

// LogWindow holds the captured kernel ring buffer and its viewport offsets.
type LogWindow struct {
	runner Runner

	output   string
	head     string
	selected string

	// Index is the number of lines scrolled up from the tail.
	Index int
	// Crop is the number of leading runes hidden on every line.
	Crop int
}

// NewLogWindow creates an empty window reading through runner.
func NewLogWindow(runner Runner) *LogWindow {
	return &LogWindow{runner: runner}
}

func (w *LogWindow) read(ctx context.Context) (string, error) {
	out, err := w.runner.Run(ctx, logSourceName, logSourceArgs...)
	if err != nil {
		return "", errors.Wrap(err, "read kernel log")
	}
	return out, nil
}

// Update polls the log source and reports whether the head line changed.
// The output is replaced only when it did.
func (w *LogWindow) Update(ctx context.Context) (bool, error) {
	out, err := w.read(ctx)
	if err != nil {
		return false, err
	}
	head := headLine(out)
	if head == w.head {
		return false, nil
	}
	w.head = head
	w.output = out
	return true, nil
}

// Reload replaces the output with a fresh read regardless of the head line.
func (w *LogWindow) Reload(ctx context.Context) error {
	out, err := w.read(ctx)
	if err != nil {
		return err
	}
	w.SetOutput(out)
	return nil
}

// Clear empties the kernel ring buffer.
func (w *LogWindow) Clear(ctx context.Context) error {
	if _, err := w.runner.Run(ctx, logSourceName, clearLogArgs...); err != nil {
		return errors.Wrap(err, "clear kernel log")
	}
	return nil
}

// SetOutput applies text received from a poller.
func (w *LogWindow) SetOutput(text string) {
	w.output = text
	w.head = headLine(text)
}

// Output returns the full captured text.
func (w *LogWindow) Output() string {
	return w.output
}

// LineCount returns the number of captured lines.
func (w *LogWindow) LineCount() int {
	if w.output == "" {
		return 0
	}
	return strings.Count(w.output, "\n") + 1
}

// Reset returns the viewport to the tail with no crop.
func (w *LogWindow) Reset() {
	w.Index = 0
	w.Crop = 0
}

// Scroll moves the viewport one step. Up and Down step by 1 line when smooth
// and 3 otherwise; Left and Right move the crop by 10 runes.
func (w *LogWindow) Scroll(dir Direction, smooth bool) {
	step := 3
	if smooth {
		step = 1
	}
	switch dir {
	case Up:
		if w.Index+step <= w.LineCount() {
			w.Index += step
		}
	case Down:
		w.Index -= step
		if w.Index < 0 {
			w.Index = 0
		}
	case Left:
		w.Crop -= cropStep
		if w.Crop < 0 {
			w.Crop = 0
		}
	case Right:
		if w.Crop > math.MaxInt-cropStep {
			w.Crop = 0
		} else {
			w.Crop += cropStep
		}
	}
}

// Select renders the visible slice of the log for a panel height, keeping
// reserved rows free for borders.
func (w *LogWindow) Select(height, reserved int) string {
	visible := height - reserved
	if visible <= 0 || w.output == "" {
		w.selected = ""
		return ""
	}
	lines := strings.Split(w.output, "\n")
	end := len(lines) - w.Index
	if end < 0 {
		end = 0
	}
	skip := end - visible
	if skip < 0 {
		skip = 0
	}
	last := skip + visible
	if last > len(lines) {
		last = len(lines)
	}
	out := make([]string, 0, last-skip)
	for _, line := range lines[skip:last] {
		out = append(out, CropRunes(line, w.Crop))
	}
	w.selected = strings.Join(out, "\n")
	return w.selected
}

// Selected returns the text produced by the last Select call.
func (w *LogWindow) Selected() string {
	return w.selected
}

// CropRunes drops the first n runes of line.
func CropRunes(line string, n int) string {
	if n <= 0 {
		return line
	}
	for i := range line {
		if n == 0 {
			return line[i:]
		}
		n--
	}
	return ""
}

func headLine(text string) string {
	head, _, _ := strings.Cut(text, "\n")
	return head
}
