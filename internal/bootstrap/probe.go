// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// RuntimeProbe checks that the system Python runtime is invocable.
type RuntimeProbe struct {
	invoker invoke.Invoker
	env     invoke.ExecutionEnv
	logger  *log.Logger
}

// NewRuntimeProbe creates a probe for the given system environment.
func NewRuntimeProbe(invoker invoke.Invoker, env invoke.ExecutionEnv, logger *log.Logger) *RuntimeProbe {
	if logger == nil {
		logger = log.Default()
	}
	return &RuntimeProbe{invoker: invoker, env: env, logger: logger}
}

// Probe invokes the runtime's version query. It has no filesystem side
// effects. On success the detected version is reported to the operator; a
// failed invocation means the runtime is missing.
func (p *RuntimeProbe) Probe(ctx context.Context) error {
	result := p.invoker.RunCapture(ctx, invoke.Call{
		Env:  p.env,
		Args: []string{"--version"},
	})

	if err := result.Err(p.env.Interpreter); err != nil {
		return issue.NewErrorContext().
			WithOperation("probe python runtime").
			WithResource(p.env.Interpreter).
			WithSuggestion("Install Python 3 and make sure it is on your PATH").
			WithSuggestion("Or set runtime.command in the launcher config").
			Wrap(fmt.Errorf("%w: %w", ErrRuntimeMissing, err)).
			BuildError()
	}

	// Some Python builds print the version on stderr.
	version := strings.TrimSpace(result.Output)
	if version == "" {
		version = strings.TrimSpace(result.ErrOutput)
	}
	p.logger.Info("python runtime found", "version", version)

	return nil
}
