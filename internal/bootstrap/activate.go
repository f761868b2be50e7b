// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// Activator switches the launch sequence onto the virtual environment.
//
// Activation does not source the activation script or mutate the launcher's
// process state; it builds an ExecutionEnv that resolves the interpreter and
// PATH against the environment, which every later step receives explicitly.
type Activator struct {
	invoker invoke.Invoker
	layout  *config.Layout
	logger  *log.Logger
}

// NewActivator creates an activator for the given layout.
func NewActivator(invoker invoke.Invoker, layout *config.Layout, logger *log.Logger) *Activator {
	if logger == nil {
		logger = log.Default()
	}
	return &Activator{invoker: invoker, layout: layout, logger: logger}
}

// Activate builds the environment-scoped ExecutionEnv and verifies it is
// usable by querying the environment's interpreter for its version.
func (a *Activator) Activate(ctx context.Context) (invoke.ExecutionEnv, error) {
	if _, err := os.Stat(a.layout.ActivateArtifact); err != nil {
		return invoke.ExecutionEnv{}, issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(a.layout.ActivateArtifact).
			WithSuggestion("Delete the environment directory and run the launcher again").
			Wrap(fmt.Errorf("%w: activation artifact not found", ErrActivationFailed)).
			BuildError()
	}

	env := invoke.ExecutionEnv{
		Interpreter: a.layout.EnvInterpreter,
		PathPrepend: []string{filepath.Dir(a.layout.EnvInterpreter)},
	}
	env = env.WithVar("VIRTUAL_ENV", a.layout.EnvDir)

	result := a.invoker.RunCapture(ctx, invoke.Call{
		Env:  env,
		Args: []string{"--version"},
	})
	if err := result.Err(a.layout.EnvInterpreter); err != nil {
		return invoke.ExecutionEnv{}, issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(a.layout.EnvDir).
			WithSuggestion("Delete the environment directory and run the launcher again").
			Wrap(fmt.Errorf("%w: %w", ErrActivationFailed, err)).
			BuildError()
	}

	a.logger.Debug("virtual environment activated", "interpreter", a.layout.EnvInterpreter)
	return env, nil
}
