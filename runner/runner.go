// Package runner executes read-only external commands and pseudo-file reads
// on behalf of the diagnostic readers. Arguments are always a literal list;
// nothing is ever routed through a shell.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/lexcodex/sysdiag/diag"
)

// DefaultTimeout bounds a command when the spec does not carry one.
const DefaultTimeout = 5 * time.Second

// Spec describes one external command invocation.
type Spec struct {
	Program string
	Args    []string
	Timeout time.Duration
}

// Result captures the outcome of a completed command.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Elapsed  time.Duration
}

// Run spawns the program and waits for it to finish, up to the timeout.
// Failures map onto the diagnostic error taxonomy: a missing program is
// not_found, an elapsed deadline is timeout (the process is killed and
// partial output discarded), a non-zero exit is command_failed carrying the
// exit code and stderr.
func Run(ctx context.Context, spec Spec) (Result, error) {
	if spec.Program == "" {
		return Result{}, diag.InvalidArgumentf("runner", "program name required")
	}
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := exec.LookPath(spec.Program); err != nil {
		return Result{}, diag.Wrap(diag.KindNotFound, spec.Program, err, "command not found on PATH")
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Program, spec.Args...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if runCtx.Err() == context.DeadlineExceeded {
		return Result{}, diag.Timeoutf(spec.Program, "command exceeded %s", timeout)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, &diag.Error{
				Kind: diag.KindCommandFailed,
				Op:   spec.Program,
				Msg:  exitMessage(exitErr.ExitCode(), stderr.String()),
				Err:  err,
			}
		}
		return Result{}, diag.Wrap(diag.KindCommandFailed, spec.Program, err, "command could not be started")
	}

	return Result{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elapsed:  elapsed,
	}, nil
}

func exitMessage(code int, stderr string) string {
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		return fmt.Sprintf("exit code %d", code)
	}
	return fmt.Sprintf("exit code %d: %s", code, msg)
}
