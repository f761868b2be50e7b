// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrSubprocessNonZeroExit is the sentinel error wrapped by ExitStatusError.
var ErrSubprocessNonZeroExit = errors.New("subprocess exited with non-zero status")

type (
	// Call describes a single external invocation.
	Call struct {
		// Command is the program to run. Empty means the environment's
		// interpreter.
		Command string
		// Args are passed verbatim to the program.
		Args []string
		// Dir is the working directory; empty inherits the launcher's.
		Dir string
		// Env is the execution environment threaded into the invocation.
		Env ExecutionEnv
		// Stdout and Stderr receive the process output; nil inherits the
		// launcher's own streams.
		Stdout io.Writer
		Stderr io.Writer
		// Stdin is the process input; nil inherits the launcher's stdin.
		Stdin io.Reader
	}

	// Result contains the result of an invocation.
	Result struct {
		// ExitCode is the exit code of the process.
		ExitCode ExitCode
		// Error contains any error that occurred outside the process itself
		// (e.g., the program could not be started).
		Error error
		// Output contains captured stdout (capture calls only).
		Output string
		// ErrOutput contains captured stderr (capture calls only).
		ErrOutput string
	}

	// Invoker runs external processes, blocking until they exit.
	Invoker interface {
		// Run executes the call with inherited or caller-provided streams.
		Run(ctx context.Context, call Call) *Result
		// RunCapture executes the call and captures stdout/stderr.
		RunCapture(ctx context.Context, call Call) *Result
	}

	// ProcessInvoker is the exec-backed Invoker used outside of tests.
	ProcessInvoker struct{}

	// ExitStatusError reports a process that ran to completion but exited
	// non-zero. It wraps ErrSubprocessNonZeroExit for errors.Is detection.
	ExitStatusError struct {
		Command string
		Code    ExitCode
	}
)

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Unwrap returns ErrSubprocessNonZeroExit for errors.Is compatibility.
func (e *ExitStatusError) Unwrap() error { return ErrSubprocessNonZeroExit }

// Success returns true if the invocation completed with exit code 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// Err converts a failed result into an error: the start error when the
// process never ran, or an ExitStatusError for a non-zero exit. Returns nil
// on success. The command name is used for diagnostics.
func (r *Result) Err(command string) error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return &ExitStatusError{Command: command, Code: r.ExitCode}
	}
	return nil
}

// NewProcessInvoker creates the default exec-backed invoker.
func NewProcessInvoker() *ProcessInvoker {
	return &ProcessInvoker{}
}

// Run executes the call, wiring the launcher's streams unless the call
// provides its own.
func (p *ProcessInvoker) Run(ctx context.Context, call Call) *Result {
	cmd := p.build(ctx, call)

	cmd.Stdout = call.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = call.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Stdin = call.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	return run(cmd, call)
}

// RunCapture executes the call and captures stdout and stderr.
func (p *ProcessInvoker) RunCapture(ctx context.Context, call Call) *Result {
	cmd := p.build(ctx, call)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := run(cmd, call)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func (p *ProcessInvoker) build(ctx context.Context, call Call) *exec.Cmd {
	program := call.Command
	if program == "" {
		program = call.Env.Interpreter
	}

	cmd := exec.CommandContext(ctx, program, call.Args...)
	cmd.Dir = call.Dir
	cmd.Env = call.Env.Environ(os.Environ())
	return cmd
}

func run(cmd *exec.Cmd, call Call) *Result {
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: ExitCode(exitErr.ExitCode())}
		}
		return &Result{
			ExitCode: 1,
			Error:    fmt.Errorf("failed to start %s: %w", DisplayCommand(call), err),
		}
	}
	return &Result{ExitCode: 0}
}

// DisplayCommand returns the call's command line for diagnostics.
func DisplayCommand(call Call) string {
	program := call.Command
	if program == "" {
		program = call.Env.Interpreter
	}
	if len(call.Args) == 0 {
		return program
	}
	return program + " " + strings.Join(call.Args, " ")
}
