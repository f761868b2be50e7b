// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/promptstudio/studiolaunch/internal/config"
)

// configCmd manages the launcher configuration file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage studiolaunch configuration",
	Long: `Manage studiolaunch configuration.

Configuration is stored in:
  - Linux: ~/.config/studiolaunch/config.cue
  - macOS: ~/Library/Application Support/studiolaunch/config.cue
  - Windows: %APPDATA%\studiolaunch\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

// showConfig prints the fully resolved configuration, defaults included, so
// the operator sees exactly what the launcher will act on.
func showConfig() error {
	cfg, resolvedPath, err := config.Load()
	if err != nil {
		return reportFailure(err, false)
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if resolvedPath != "" {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), resolvedPath)
	} else {
		fmt.Printf("%s: %s\n", CmdStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	rendered, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Print(string(rendered))

	return nil
}

func initConfig() error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(cfgPath); statErr == nil {
		fmt.Printf("%s Configuration already exists at %s\n", WarningStyle.Render("!"), cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgPath, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	fmt.Println(cfgPath)
	return nil
}
