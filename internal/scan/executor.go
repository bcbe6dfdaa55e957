package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// Invocation describes one child run.
type Invocation struct {
	// Dir is the absolute working directory of the child.
	Dir string

	Operation string
	Args      []string

	// Env holds KEY=VALUE pairs added on top of the parent environment.
	Env []string

	// Timeout bounds the run. Zero means no limit.
	Timeout time.Duration
}

// Outcome is how a child run ended.
type Outcome struct {
	// ExitCode is the child's exit status, or -1 if it did not exit normally.
	ExitCode int

	// Err is set when the child could not be started, was killed, or timed out.
	Err error
}

// Failed reports whether the run counts as a failure.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.ExitCode != 0
}

// Executor runs a single invocation to completion.
// Implementations must honor ctx cancellation.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) Outcome
}

// ProcessExecutor runs each invocation as a child process of Path.
type ProcessExecutor struct {
	// Path is the binary to run, normally the current envoak executable.
	Path string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewProcessExecutor returns an executor that re-invokes the running binary
// with the parent's standard streams.
func NewProcessExecutor() (*ProcessExecutor, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate envoak executable: %w", err)
	}
	return &ProcessExecutor{
		Path:   path,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Execute runs Path with the operation and its arguments in inv.Dir.
func (e *ProcessExecutor) Execute(ctx context.Context, inv Invocation) Outcome {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := make([]string, 0, 1+len(inv.Args))
	args = append(args, inv.Operation)
	args = append(args, inv.Args...)

	// #nosec G204 -- the binary is our own executable, arguments come from the user
	cmd := exec.CommandContext(ctx, e.Path, args...)
	cmd.Dir = inv.Dir
	cmd.Env = append(os.Environ(), inv.Env...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	// Do not hang on a grandchild that keeps our pipes open after a kill.
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && inv.Timeout > 0 {
			return Outcome{ExitCode: -1, Err: fmt.Errorf("timed out after %s: %w", inv.Timeout, ctxErr)}
		}
		return Outcome{ExitCode: -1, Err: ctxErr}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return Outcome{ExitCode: -1, Err: err}
		}
		return Outcome{ExitCode: code}
	}
	if err != nil {
		return Outcome{ExitCode: -1, Err: fmt.Errorf("failed to start process: %w", err)}
	}

	return Outcome{ExitCode: 0}
}
