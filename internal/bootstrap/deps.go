// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// DependencyInstaller installs the declared dependency manifest into the
// active environment. Safe to re-run: pip itself only installs what is
// missing or outdated.
type DependencyInstaller struct {
	invoker invoke.Invoker
	layout  *config.Layout
	logger  *log.Logger
}

// NewDependencyInstaller creates an installer for the given layout.
func NewDependencyInstaller(invoker invoke.Invoker, layout *config.Layout, logger *log.Logger) *DependencyInstaller {
	if logger == nil {
		logger = log.Default()
	}
	return &DependencyInstaller{invoker: invoker, layout: layout, logger: logger}
}

// Install runs pip against the manifest inside the activated environment.
func (d *DependencyInstaller) Install(ctx context.Context, env invoke.ExecutionEnv) error {
	d.logger.Info("installing dependencies", "manifest", d.layout.ManifestFile)

	result := d.invoker.Run(ctx, invoke.Call{
		Env:  env,
		Args: []string{"-m", "pip", "install", "-r", d.layout.ManifestFile},
		Dir:  d.layout.Root,
	})
	if err := result.Err("pip install"); err != nil {
		return issue.NewErrorContext().
			WithOperation("install dependencies").
			WithResource(d.layout.ManifestFile).
			WithSuggestion("Check the pip output above for the failing package").
			WithSuggestion("Check your network connection, then re-run the launcher").
			Wrap(fmt.Errorf("%w: %w", ErrDependencyInstallFailed, err)).
			BuildError()
	}

	return nil
}
