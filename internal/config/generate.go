// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateDefaultConfig creates a default config file if it doesn't exist.
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	cueContent := GenerateCUE(DefaultConfig())

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Prompt Studio launcher configuration file.\n\n")

	if cfg.ProjectRoot != "" {
		sb.WriteString(fmt.Sprintf("project_root: %q\n\n", cfg.ProjectRoot))
	}

	sb.WriteString("runtime: {\n")
	sb.WriteString(fmt.Sprintf("\tcommand: %q\n", cfg.Runtime.Command))
	sb.WriteString("}\n")

	sb.WriteString("\npaths: {\n")
	sb.WriteString(fmt.Sprintf("\tenv_dir: %q\n", cfg.Paths.EnvDir))
	sb.WriteString(fmt.Sprintf("\tmanifest: %q\n", cfg.Paths.Manifest))
	sb.WriteString(fmt.Sprintf("\tdata_dir: %q\n", cfg.Paths.DataDir))
	sb.WriteString(fmt.Sprintf("\tstore_file: %q\n", cfg.Paths.StoreFile))
	sb.WriteString(fmt.Sprintf("\tapp_entry: %q\n", cfg.Paths.AppEntry))
	sb.WriteString("}\n")

	sb.WriteString("\nclient: {\n")
	sb.WriteString(fmt.Sprintf("\tdir: %q\n", cfg.Client.Dir))
	sb.WriteString(fmt.Sprintf("\tenv_dir: %q\n", cfg.Client.EnvDir))
	sb.WriteString(fmt.Sprintf("\tscript: %q\n", cfg.Client.Script))
	sb.WriteString(fmt.Sprintf("\ttask_file: %q\n", cfg.Client.TaskFile))
	sb.WriteString("}\n")

	if cfg.Hooks.PreLaunch != "" {
		sb.WriteString("\nhooks: {\n")
		sb.WriteString(fmt.Sprintf("\tpre_launch: %q\n", cfg.Hooks.PreLaunch))
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString(fmt.Sprintf("\tpause_on_error: %v\n", cfg.UI.PauseOnError))
	sb.WriteString("}\n")

	return sb.String()
}
