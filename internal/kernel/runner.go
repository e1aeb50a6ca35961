package kernel

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Runner executes an external program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecError describes a failed external invocation.
type ExecError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Command
}

// Unwrap exposes the underlying error to errors.Is/As.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// Cause exposes the underlying error to errors.Cause.
func (e *ExecError) Cause() error {
	return e.Err
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run executes name with args. Trailing whitespace is trimmed from stdout;
// a non-zero exit status returns an *ExecError carrying stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	line := CommandLine(name, args...)
	if err := cmd.Run(); err != nil {
		return "", &ExecError{
			Command: line,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     errors.Wrapf(err, "%s", line),
		}
	}
	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

// CommandLine joins a program and its arguments with single spaces.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

func shell(ctx context.Context, runner Runner, script string) (string, error) {
	return runner.Run(ctx, "sh", "-c", script)
}
