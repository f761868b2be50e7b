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

// storeInitSnippet delegates to the application's own database module; the
// launcher treats it as an opaque external command and only observes the
// store file before and after.
const storeInitSnippet = "from src import database; database.initialize_db()"

// StoreInitializer ensures the application's data store exists before launch.
type StoreInitializer struct {
	invoker invoke.Invoker
	layout  *config.Layout
	logger  *log.Logger
}

// NewStoreInitializer creates an initializer for the given layout.
func NewStoreInitializer(invoker invoke.Invoker, layout *config.Layout, logger *log.Logger) *StoreInitializer {
	if logger == nil {
		logger = log.Default()
	}
	return &StoreInitializer{invoker: invoker, layout: layout, logger: logger}
}

// StoreExists reports whether the store file exists and is non-empty.
func (s *StoreInitializer) StoreExists() bool {
	info, err := os.Stat(s.layout.StoreFile)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// EnsureStore checks for the data store and, when absent, runs the
// application's initializer inside the activated environment, then re-checks.
// PYTHONPATH is extended with the project root for that single invocation so
// the initializer can import the application package; the extension does not
// outlive the call.
func (s *StoreInitializer) EnsureStore(ctx context.Context, env invoke.ExecutionEnv) error {
	if s.StoreExists() {
		s.logger.Debug("data store present", "file", s.layout.StoreFile)
		return nil
	}

	s.logger.Info("initializing data store", "file", s.layout.StoreFile)

	initEnv := env.WithVar("PYTHONPATH",
		invoke.ExtendPathList(os.Getenv("PYTHONPATH"), s.layout.Root))

	result := s.invoker.Run(ctx, invoke.Call{
		Env:  initEnv,
		Args: []string{"-c", storeInitSnippet},
		Dir:  s.layout.Root,
	})
	if err := result.Err("store initializer"); err != nil {
		return issue.NewErrorContext().
			WithOperation("initialize data store").
			WithResource(s.layout.StoreFile).
			WithSuggestion("Check the initializer output above").
			WithSuggestion("Make sure the data directory is writable").
			Wrap(fmt.Errorf("%w: %w", ErrStoreInitFailed, err)).
			BuildError()
	}

	// The initializer claimed success; hold it to its postcondition.
	if !s.StoreExists() {
		return issue.NewErrorContext().
			WithOperation("verify data store").
			WithResource(s.layout.StoreFile).
			WithSuggestion("Check free disk space and permissions on the data directory").
			Wrap(fmt.Errorf("%w", ErrStoreInitIncomplete)).
			BuildError()
	}

	return nil
}
