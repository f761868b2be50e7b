// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// PreLaunchHook runs an operator-configured shell snippet in the embedded
// shell interpreter after a successful bootstrap, before the application
// starts. The snippet sees the activated environment (PATH, VIRTUAL_ENV).
type PreLaunchHook struct {
	script string
	layout *config.Layout
	logger *log.Logger

	// Stdout and Stderr receive the snippet's output; nil inherits the
	// launcher's streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewPreLaunchHook creates the hook. An empty script produces a hook whose
// Run is a no-op.
func NewPreLaunchHook(script string, layout *config.Layout, logger *log.Logger) *PreLaunchHook {
	if logger == nil {
		logger = log.Default()
	}
	return &PreLaunchHook{script: script, layout: layout, logger: logger}
}

// Enabled reports whether a snippet is configured.
func (h *PreLaunchHook) Enabled() bool {
	return strings.TrimSpace(h.script) != ""
}

// Run parses and executes the snippet. A non-zero snippet exit aborts the
// launch.
func (h *PreLaunchHook) Run(ctx context.Context, env invoke.ExecutionEnv) error {
	if !h.Enabled() {
		return nil
	}

	h.logger.Info("running pre-launch hook")

	prog, err := syntax.NewParser().Parse(strings.NewReader(h.script), "pre_launch")
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse pre-launch hook").
			WithSuggestion("Check the hooks.pre_launch snippet for shell syntax errors").
			Wrap(fmt.Errorf("%w: %w", ErrHookFailed, err)).
			BuildError()
	}

	stdout := h.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := h.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	runner, err := interp.New(
		interp.Dir(h.layout.Root),
		interp.Env(expand.ListEnviron(env.Environ(os.Environ())...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return fmt.Errorf("failed to create hook interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			err = &invoke.ExitStatusError{Command: "pre-launch hook", Code: invoke.ExitCode(exitStatus)}
		}
		return issue.NewErrorContext().
			WithOperation("run pre-launch hook").
			WithSuggestion("Check the hook output above").
			Wrap(fmt.Errorf("%w: %w", ErrHookFailed, err)).
			BuildError()
	}

	return nil
}
