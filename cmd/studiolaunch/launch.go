// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/promptstudio/studiolaunch/internal/bootstrap"
	"github.com/promptstudio/studiolaunch/internal/client"
	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/issue"
)

// runLaunch drives the full bootstrap sequence and starts the application.
func runLaunch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportFailure(err, false)
	}

	layout, err := cfg.Layout()
	if err != nil {
		return reportFailure(err, cfg.UI.PauseOnError)
	}

	boot := bootstrap.New(cfg, layout, invoke.NewProcessInvoker(), newLogger())
	if err := boot.Run(cmd.Context()); err != nil {
		return reportFailure(err, cfg.UI.PauseOnError)
	}
	return nil
}

// newLogger builds the CLI logger; --verbose lowers the level to debug.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "studiolaunch",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// reportFailure renders the issue card for the failure kind, prints the
// actionable error, optionally waits for operator acknowledgment, and wraps
// the error in an ExitError carrying the subprocess exit code when one is
// known.
func reportFailure(err error, pause bool) error {
	if id, ok := issueIdFor(err); ok {
		if rendered, renderErr := issue.Get(id).Render("dark"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))

	if pause {
		waitForAcknowledgment()
	}

	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// issueIdFor maps a failure to the issue card describing it.
func issueIdFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, bootstrap.ErrRuntimeMissing):
		return issue.RuntimeMissingId, true
	case errors.Is(err, bootstrap.ErrEnvironmentIncompleteAfterCreate):
		return issue.EnvironmentIncompleteAfterCreateId, true
	case errors.Is(err, bootstrap.ErrEnvironmentCreateFailed):
		return issue.EnvironmentCreateFailedId, true
	case errors.Is(err, bootstrap.ErrActivationFailed):
		return issue.ActivationFailedId, true
	case errors.Is(err, bootstrap.ErrDependencyInstallFailed):
		return issue.DependencyInstallFailedId, true
	case errors.Is(err, bootstrap.ErrStoreInitIncomplete):
		return issue.StoreInitIncompleteId, true
	case errors.Is(err, bootstrap.ErrStoreInitFailed):
		return issue.StoreInitFailedId, true
	case errors.Is(err, client.ErrClientBinaryMissing):
		return issue.ClientBinaryMissingId, true
	case errors.Is(err, client.ErrTaskFileMissing):
		return issue.TaskFileMissingId, true
	case errors.Is(err, client.ErrDirectoryChangeFailed):
		return issue.DirectoryChangeFailedId, true
	case errors.Is(err, invoke.ErrSubprocessNonZeroExit):
		return issue.SubprocessNonZeroExitId, true
	}
	return 0, false
}

// exitCodeFor extracts the subprocess exit code when the failure carries
// one; every other failure exits with 1.
func exitCodeFor(err error) invoke.ExitCode {
	var ese *invoke.ExitStatusError
	if errors.As(err, &ese) && !ese.Code.IsSuccess() {
		return ese.Code
	}
	return 1
}

// waitForAcknowledgment keeps the terminal open so the operator can read the
// failure before the window closes. Launchers started from a double-click
// would otherwise lose the output.
func waitForAcknowledgment() {
	fmt.Fprint(os.Stderr, SubtitleStyle.Render("Press Enter to close..."))
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
