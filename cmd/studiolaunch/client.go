// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptstudio/studiolaunch/internal/client"
	"github.com/promptstudio/studiolaunch/internal/invoke"
)

// clientCmd hands the exported batch to the image generation client. It is
// independent of the bootstrap sequence: the client ships its own
// environment and the launcher only validates and invokes it.
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Run the image generation client on the exported batch",
	Long: `Run the image generation client on the exported batch.

The client is expected under the project's client directory with its own
bundled environment. Export a batch from Prompt Studio first; the export
writes the task file the client consumes.`,
	RunE: runClient,
}

func runClient(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return reportFailure(err, false)
	}

	layout, err := cfg.Layout()
	if err != nil {
		return reportFailure(err, false)
	}

	o := client.NewOrchestrator(invoke.NewProcessInvoker(), layout, newLogger())
	if err := o.Run(cmd.Context()); err != nil {
		// The client runs from an interactive terminal; no pause needed.
		return reportFailure(err, false)
	}
	return nil
}
