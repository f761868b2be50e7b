// SPDX-License-Identifier: MPL-2.0

package client

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// Fixed client invocation contract: the client accepts exactly this flag
// pair and nothing else.
const (
	flagTaskSourceType = "--taskSourceType"
	taskSourceJSON     = "json"
	flagLocalTaskFile  = "--localTaskFile"
)

// Sentinel errors for the client orchestration failure kinds.
var (
	// ErrClientBinaryMissing reports that the client script or its
	// interpreter is not installed at the expected path.
	ErrClientBinaryMissing = errors.New("generation client missing")

	// ErrTaskFileMissing reports that no task descriptor exists; the
	// operator has to export one from the application first.
	ErrTaskFileMissing = errors.New("task file missing")

	// ErrDirectoryChangeFailed reports that the client directory could not
	// be entered.
	ErrDirectoryChangeFailed = errors.New("could not enter client directory")
)

// Orchestrator validates and runs the generation client. All checks happen
// before any working-directory change; no partially validated invocation is
// ever attempted.
type Orchestrator struct {
	invoker invoke.Invoker
	layout  *config.Layout
	logger  *log.Logger
}

// NewOrchestrator creates a client orchestrator for the given layout.
func NewOrchestrator(invoker invoke.Invoker, layout *config.Layout, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{invoker: invoker, layout: layout, logger: logger}
}

// Run executes the client sequence: check client binary, check task file,
// enter the client directory, invoke the client, restore the directory.
// The client's exit code propagates as an invoke.ExitStatusError.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.checkClientBinary(); err != nil {
		return err
	}
	if err := o.checkTaskFile(); err != nil {
		return err
	}

	guard, err := AcquireWorkdir()
	if err != nil {
		return err
	}
	// Restoration is guaranteed on every exit path, including a failed
	// invocation.
	defer func() {
		if err := guard.Restore(); err != nil {
			o.logger.Warn("could not restore working directory", "err", err)
		}
	}()

	if err := guard.Change(o.layout.ClientDir); err != nil {
		return issue.NewErrorContext().
			WithOperation("enter client directory").
			WithResource(o.layout.ClientDir).
			WithSuggestion("Check that the client directory exists and is accessible").
			Wrap(fmt.Errorf("%w: %w", ErrDirectoryChangeFailed, err)).
			BuildError()
	}

	o.logger.Info("starting generation client",
		"script", o.layout.ClientScript, "tasks", o.layout.TaskFile)

	result := o.invoker.Run(ctx, invoke.Call{
		Command: o.layout.ClientInterpreter,
		Args: []string{
			o.layout.ClientScript,
			flagTaskSourceType, taskSourceJSON,
			flagLocalTaskFile, o.layout.TaskFile,
		},
	})
	return result.Err("generation client")
}

// checkClientBinary validates the client's interpreter and entry script.
func (o *Orchestrator) checkClientBinary() error {
	for _, path := range []string{o.layout.ClientInterpreter, o.layout.ClientScript} {
		if fileExists(path) {
			continue
		}
		return issue.NewErrorContext().
			WithOperation("locate generation client").
			WithResource(path).
			WithSuggestion("Install the client under the client directory").
			WithSuggestion("Make sure the client's own virtual environment is set up").
			Wrap(fmt.Errorf("%w: %s", ErrClientBinaryMissing, path)).
			BuildError()
	}
	return nil
}

// checkTaskFile validates the task descriptor the client will consume. Its
// contents are opaque to the launcher.
func (o *Orchestrator) checkTaskFile() error {
	if fileExists(o.layout.TaskFile) {
		return nil
	}
	return issue.NewErrorContext().
		WithOperation("locate task file").
		WithResource(o.layout.TaskFile).
		WithSuggestion("Export your batch from Prompt Studio first; the export action writes the task file").
		WithSuggestion("Then run 'studiolaunch client' again").
		Wrap(fmt.Errorf("%w: %s", ErrTaskFileMissing, o.layout.TaskFile)).
		BuildError()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
