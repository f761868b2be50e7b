// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
)

// ApplicationLauncher hands execution off to the application process. This is
// the terminal stage of the bootstrap sequence: a single blocking invocation
// with no retries, whose exit code becomes the launcher's own.
type ApplicationLauncher struct {
	invoker invoke.Invoker
	layout  *config.Layout
	logger  *log.Logger
}

// NewApplicationLauncher creates a launcher for the given layout.
func NewApplicationLauncher(invoker invoke.Invoker, layout *config.Layout, logger *log.Logger) *ApplicationLauncher {
	if logger == nil {
		logger = log.Default()
	}
	return &ApplicationLauncher{invoker: invoker, layout: layout, logger: logger}
}

// Launch starts the application inside the activated environment and blocks
// until it exits. A non-zero exit is returned as an invoke.ExitStatusError
// for the caller to propagate.
func (l *ApplicationLauncher) Launch(ctx context.Context, env invoke.ExecutionEnv) error {
	l.logger.Info("starting application", "entry", l.layout.AppEntry)

	result := l.invoker.Run(ctx, invoke.Call{
		Env:  env,
		Args: []string{l.layout.AppEntry},
		Dir:  l.layout.Root,
	})
	return result.Err("application")
}
