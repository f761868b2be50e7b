// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/invoke"
)

// Bootstrap wires the launch sequence together. The activated environment
// flows from the activation step into every later step as an explicit value.
type Bootstrap struct {
	probe     *RuntimeProbe
	envMgr    *EnvironmentManager
	activator *Activator
	installer *DependencyInstaller
	store     *StoreInitializer
	hook      *PreLaunchHook
	launcher  *ApplicationLauncher
	logger    *log.Logger

	// activeEnv is set by the activation step and consumed by the steps
	// after it.
	activeEnv invoke.ExecutionEnv
}

// New assembles a bootstrap sequence from the loaded configuration.
func New(cfg *config.Config, layout *config.Layout, invoker invoke.Invoker, logger *log.Logger) *Bootstrap {
	if logger == nil {
		logger = log.Default()
	}

	sysEnv := invoke.SystemEnv(string(cfg.Runtime.Command))

	return &Bootstrap{
		probe:     NewRuntimeProbe(invoker, sysEnv, logger),
		envMgr:    NewEnvironmentManager(invoker, sysEnv, layout, logger),
		activator: NewActivator(invoker, layout, logger),
		installer: NewDependencyInstaller(invoker, layout, logger),
		store:     NewStoreInitializer(invoker, layout, logger),
		hook:      NewPreLaunchHook(cfg.Hooks.PreLaunch, layout, logger),
		launcher:  NewApplicationLauncher(invoker, layout, logger),
		logger:    logger,
	}
}

// Steps returns the ordered launch sequence. The order is fixed; a failing
// step prevents every later one from running.
func (b *Bootstrap) Steps() []Step {
	steps := []Step{
		{Name: "probe runtime", Run: b.probe.Probe},
		{Name: "ensure environment", Run: b.envMgr.EnsureValid},
		{Name: "activate environment", Run: b.runActivate},
		{Name: "install dependencies", Run: b.runInstall},
		{Name: "ensure data store", Run: b.runStore},
	}
	if b.hook.Enabled() {
		steps = append(steps, Step{Name: "pre-launch hook", Run: b.runHook})
	}
	return append(steps, Step{Name: "launch application", Run: b.runLaunch})
}

// Run executes the whole sequence, stopping at the first failure.
func (b *Bootstrap) Run(ctx context.Context) error {
	return NewSequence(b.logger, b.Steps()...).Run(ctx)
}

func (b *Bootstrap) runActivate(ctx context.Context) error {
	env, err := b.activator.Activate(ctx)
	if err != nil {
		return err
	}
	b.activeEnv = env
	return nil
}

func (b *Bootstrap) runInstall(ctx context.Context) error {
	return b.installer.Install(ctx, b.activeEnv)
}

func (b *Bootstrap) runStore(ctx context.Context) error {
	return b.store.EnsureStore(ctx, b.activeEnv)
}

func (b *Bootstrap) runHook(ctx context.Context) error {
	return b.hook.Run(ctx, b.activeEnv)
}

func (b *Bootstrap) runLaunch(ctx context.Context) error {
	return b.launcher.Launch(ctx, b.activeEnv)
}
