// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for studiolaunch.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/promptstudio/studiolaunch/internal/config"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "studiolaunch",
		Short: "Launch Prompt Studio from a ready environment",
		Long: TitleStyle.Render("studiolaunch") + SubtitleStyle.Render(" - Prompt Studio launch orchestrator") + `

studiolaunch brings the Prompt Studio desktop application from a cold
checkout to a running process: it probes the Python runtime, provisions
the virtual environment, installs dependencies, initializes the data
store, and starts the application.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'studiolaunch' from the project directory
  2. Export a batch from the application when you want images generated
  3. Run 'studiolaunch client' to hand the batch to the generation client

` + SubtitleStyle.Render("Examples:") + `
  studiolaunch                 Provision the environment and start the app
  studiolaunch client          Run the image generation client
  studiolaunch config show     Show current configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLaunch,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/studiolaunch/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig applies the --config flag before any command loads
// configuration.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
}

// loadConfig loads configuration and applies UI settings that flags did not
// set explicitly.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.Load()
	if err != nil {
		rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		if renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return nil, err
	}
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	return cfg, nil
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
