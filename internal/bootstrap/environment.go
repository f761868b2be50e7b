// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// Environment state constants. Exactly one state holds at any time; the
// environment is Valid only when its activation artifact is present.
const (
	// StateAbsent means the environment directory does not exist.
	StateAbsent State = "absent"
	// StateIncomplete means the directory exists but the activation artifact
	// is missing; the environment cannot be trusted.
	StateIncomplete State = "incomplete"
	// StateValid means the activation artifact is present.
	StateValid State = "valid"
)

type (
	// State describes the virtual environment's condition.
	State string

	// EnvironmentManager inspects and repairs the virtual environment.
	// A stale or incomplete environment is deleted and recreated; partial
	// environments are never kept.
	EnvironmentManager struct {
		invoker invoke.Invoker
		sysEnv  invoke.ExecutionEnv
		layout  *config.Layout
		logger  *log.Logger
	}
)

// String returns the state name.
func (s State) String() string { return string(s) }

// NewEnvironmentManager creates a manager using the system runtime for
// environment creation.
func NewEnvironmentManager(invoker invoke.Invoker, sysEnv invoke.ExecutionEnv, layout *config.Layout, logger *log.Logger) *EnvironmentManager {
	if logger == nil {
		logger = log.Default()
	}
	return &EnvironmentManager{invoker: invoker, sysEnv: sysEnv, layout: layout, logger: logger}
}

// Inspect derives the environment state from the filesystem.
func (m *EnvironmentManager) Inspect() State {
	if _, err := os.Stat(m.layout.EnvDir); os.IsNotExist(err) {
		return StateAbsent
	}
	if _, err := os.Stat(m.layout.ActivateArtifact); err != nil {
		return StateIncomplete
	}
	return StateValid
}

// EnsureValid makes the environment Valid: a no-op when it already is,
// otherwise a delete-and-recreate. On successful return the activation
// artifact exists.
func (m *EnvironmentManager) EnsureValid(ctx context.Context) error {
	state := m.Inspect()
	if state == StateValid {
		m.logger.Debug("virtual environment already valid", "dir", m.layout.EnvDir)
		return nil
	}

	if state == StateIncomplete {
		m.logger.Info("virtual environment incomplete, recreating", "dir", m.layout.EnvDir)
		m.bestEffortCleanup()
	} else {
		m.logger.Info("creating virtual environment", "dir", m.layout.EnvDir)
	}

	result := m.invoker.Run(ctx, invoke.Call{
		Env:  m.sysEnv,
		Args: []string{"-m", "venv", m.layout.EnvDir},
	})
	if err := result.Err("venv creation"); err != nil {
		return issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(m.layout.EnvDir).
			WithSuggestion("Check the interpreter's output above").
			WithSuggestion("Make sure the venv module is installed (e.g. python3-venv)").
			Wrap(fmt.Errorf("%w: %w", ErrEnvironmentCreateFailed, err)).
			BuildError()
	}

	if m.Inspect() != StateValid {
		return issue.NewErrorContext().
			WithOperation("verify virtual environment").
			WithResource(m.layout.ActivateArtifact).
			WithSuggestion("Delete the environment directory and run the launcher again").
			Wrap(fmt.Errorf("%w: activation artifact not found", ErrEnvironmentIncompleteAfterCreate)).
			BuildError()
	}

	return nil
}

// removeAll is swappable in tests.
var removeAll = os.RemoveAll

// bestEffortCleanup removes a stale environment directory. Deletion failure
// is a warning, not an abort: creation is attempted regardless, and either
// succeeds over the remnants or fails on its own clearer terms.
func (m *EnvironmentManager) bestEffortCleanup() {
	if err := removeAll(m.layout.EnvDir); err != nil {
		m.logger.Warn("could not delete stale environment, attempting recreation anyway",
			"dir", m.layout.EnvDir, "err", err)
	}
}
