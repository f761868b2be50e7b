// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/promptstudio/studiolaunch/internal/issue"
	"github.com/promptstudio/studiolaunch/internal/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "studiolaunch"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the launcher configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the default location of the config file.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the launcher configuration: defaults, overlaid with the config
// file when one exists. The resolved file path is returned for diagnostics
// (empty when running purely on defaults).
func Load() (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("project_root", defaults.ProjectRoot)
	v.SetDefault("runtime.command", string(defaults.Runtime.Command))
	v.SetDefault("paths.env_dir", string(defaults.Paths.EnvDir))
	v.SetDefault("paths.manifest", string(defaults.Paths.Manifest))
	v.SetDefault("paths.data_dir", string(defaults.Paths.DataDir))
	v.SetDefault("paths.store_file", string(defaults.Paths.StoreFile))
	v.SetDefault("paths.app_entry", string(defaults.Paths.AppEntry))
	v.SetDefault("client.dir", string(defaults.Client.Dir))
	v.SetDefault("client.env_dir", string(defaults.Client.EnvDir))
	v.SetDefault("client.script", string(defaults.Client.Script))
	v.SetDefault("client.task_file", string(defaults.Client.TaskFile))
	v.SetDefault("hooks.pre_launch", defaults.Hooks.PreLaunch)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.pause_on_error", defaults.UI.PauseOnError)

	resolvedPath := ""

	// An explicit --config path is used exclusively and must exist.
	if configFilePathOverride != "" {
		if !fileExists(configFilePathOverride) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFilePathOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'studiolaunch config init' to create a config file").
				Wrap(fmt.Errorf("config file not found: %s", configFilePathOverride)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFilePathOverride); err != nil {
			return nil, "", wrapConfigParseError(err, configFilePathOverride)
		}
		resolvedPath = configFilePathOverride
	} else {
		path, err := ConfigFilePath()
		if err != nil {
			return nil, "", err
		}
		if fileExists(path) {
			if err := loadCUEIntoViper(v, path); err != nil {
				return nil, "", wrapConfigParseError(err, path)
			}
			resolvedPath = path
		}
		// No config file found: run on defaults, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Compare your settings against 'studiolaunch config show'").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func wrapConfigParseError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("Run 'studiolaunch config show' to see the resolved configuration").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("failed to parse config file: %w", userValue.Err())
	}

	// Unify with the schema to validate against the #Config definition.
	// Concrete(false) because all fields are optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("config file does not match schema: %w", err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	// Merge into Viper (preserves defaults for unset fields).
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
