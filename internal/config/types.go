// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptstudio/studiolaunch/internal/platform"
)

var (
	// ErrInvalidInterpreterCommand is the sentinel error wrapped by InvalidInterpreterCommandError.
	ErrInvalidInterpreterCommand = errors.New("invalid interpreter command")
	// ErrInvalidRelativePath is the sentinel error wrapped by InvalidRelativePathError.
	ErrInvalidRelativePath = errors.New("invalid relative path")
)

type (
	// InterpreterCommand is the command used to invoke the Python runtime.
	// A valid command is non-empty and not whitespace-only.
	InterpreterCommand string

	// InvalidInterpreterCommandError is returned when an InterpreterCommand
	// is empty or whitespace-only. It wraps ErrInvalidInterpreterCommand.
	InvalidInterpreterCommandError struct {
		Value InterpreterCommand
	}

	// RelativePath is a path interpreted relative to the project root.
	// A valid value is non-empty, not whitespace-only, and not absolute.
	RelativePath string

	// InvalidRelativePathError is returned when a RelativePath value is
	// empty, whitespace-only, or absolute. It wraps ErrInvalidRelativePath.
	InvalidRelativePathError struct {
		Field string
		Value RelativePath
	}

	// Config is the launcher configuration, loaded by Load.
	Config struct {
		// ProjectRoot is the directory all relative paths resolve against.
		// Empty means the launcher's working directory.
		ProjectRoot string `mapstructure:"project_root" toml:"project_root"`

		Runtime RuntimeConfig `mapstructure:"runtime" toml:"runtime"`
		Paths   PathsConfig   `mapstructure:"paths" toml:"paths"`
		Client  ClientConfig  `mapstructure:"client" toml:"client"`
		Hooks   HooksConfig   `mapstructure:"hooks" toml:"hooks"`
		UI      UIConfig      `mapstructure:"ui" toml:"ui"`
	}

	// RuntimeConfig selects the system Python used for probing and for
	// creating the virtual environment.
	RuntimeConfig struct {
		Command InterpreterCommand `mapstructure:"command" toml:"command"`
	}

	// PathsConfig holds the bootstrap sequence's project-relative paths.
	PathsConfig struct {
		// EnvDir is the virtual environment directory.
		EnvDir RelativePath `mapstructure:"env_dir" toml:"env_dir"`
		// Manifest is the dependency manifest consumed by pip.
		Manifest RelativePath `mapstructure:"manifest" toml:"manifest"`
		// DataDir holds the application's mutable data.
		DataDir RelativePath `mapstructure:"data_dir" toml:"data_dir"`
		// StoreFile is the data store, relative to DataDir.
		StoreFile RelativePath `mapstructure:"store_file" toml:"store_file"`
		// AppEntry is the application entry point script.
		AppEntry RelativePath `mapstructure:"app_entry" toml:"app_entry"`
	}

	// ClientConfig holds the generation client's layout.
	ClientConfig struct {
		// Dir is the client's directory, relative to the project root.
		Dir RelativePath `mapstructure:"dir" toml:"dir"`
		// EnvDir is the client's own virtual environment, relative to Dir.
		EnvDir RelativePath `mapstructure:"env_dir" toml:"env_dir"`
		// Script is the client entry point, relative to Dir.
		Script RelativePath `mapstructure:"script" toml:"script"`
		// TaskFile is the task descriptor, relative to DataDir.
		TaskFile RelativePath `mapstructure:"task_file" toml:"task_file"`
	}

	// HooksConfig holds optional shell snippets run by the embedded
	// interpreter at defined points of the sequence.
	HooksConfig struct {
		// PreLaunch runs after a successful bootstrap, before the
		// application starts. Empty disables the hook.
		PreLaunch string `mapstructure:"pre_launch" toml:"pre_launch"`
	}

	// UIConfig holds operator-facing behavior toggles.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
		// PauseOnError keeps the terminal open for acknowledgment before a
		// failed bootstrap run exits.
		PauseOnError bool `mapstructure:"pause_on_error" toml:"pause_on_error"`
	}

	// Layout is the fully resolved, absolute filesystem layout the
	// orchestrators operate on.
	Layout struct {
		Root string

		EnvDir           string
		ActivateArtifact string
		EnvInterpreter   string
		ManifestFile     string
		DataDir          string
		StoreFile        string
		AppEntry         string

		ClientDir         string
		ClientInterpreter string
		ClientScript      string
		TaskFile          string
	}
)

// Error implements the error interface.
func (e *InvalidInterpreterCommandError) Error() string {
	return fmt.Sprintf("invalid interpreter command %q (must not be empty)", string(e.Value))
}

// Unwrap returns ErrInvalidInterpreterCommand for errors.Is compatibility.
func (e *InvalidInterpreterCommandError) Unwrap() error { return ErrInvalidInterpreterCommand }

// IsValid returns whether the command is usable, and validation errors if not.
func (c InterpreterCommand) IsValid() (bool, []error) {
	if strings.TrimSpace(string(c)) == "" {
		return false, []error{&InvalidInterpreterCommandError{Value: c}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidRelativePathError) Error() string {
	return fmt.Sprintf("invalid %s %q (must be a non-empty relative path)", e.Field, string(e.Value))
}

// Unwrap returns ErrInvalidRelativePath for errors.Is compatibility.
func (e *InvalidRelativePathError) Unwrap() error { return ErrInvalidRelativePath }

// isValidField validates the path and names the offending field in the error.
func (p RelativePath) isValidField(field string) (bool, []error) {
	if strings.TrimSpace(string(p)) == "" || filepath.IsAbs(string(p)) {
		return false, []error{&InvalidRelativePathError{Field: field, Value: p}}
	}
	return true, nil
}

// DefaultConfig returns the configuration matching the Prompt Studio project
// layout. These values mirror the application's own path constants.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Command: InterpreterCommand(platform.DefaultInterpreter()),
		},
		Paths: PathsConfig{
			EnvDir:    "venv",
			Manifest:  "requirements.txt",
			DataDir:   "data",
			StoreFile: "prompt_data.db",
			AppEntry:  "main.py",
		},
		Client: ClientConfig{
			Dir:      "StableDiffusionClient",
			EnvDir:   RelativePath(filepath.Join("stable-diffusion-webui-forge", "venv")),
			Script:   "GenImage.py",
			TaskFile: "tasks.json",
		},
		UI: UIConfig{
			PauseOnError: true,
		},
	}
}

// Validate checks every field constraint that the CUE schema cannot express
// on already-decoded values.
func (c *Config) Validate() error {
	var errs []error

	if ok, verrs := c.Runtime.Command.IsValid(); !ok {
		errs = append(errs, verrs...)
	}

	relFields := []struct {
		field string
		value RelativePath
	}{
		{"paths.env_dir", c.Paths.EnvDir},
		{"paths.manifest", c.Paths.Manifest},
		{"paths.data_dir", c.Paths.DataDir},
		{"paths.store_file", c.Paths.StoreFile},
		{"paths.app_entry", c.Paths.AppEntry},
		{"client.dir", c.Client.Dir},
		{"client.env_dir", c.Client.EnvDir},
		{"client.script", c.Client.Script},
		{"client.task_file", c.Client.TaskFile},
	}
	for _, f := range relFields {
		if ok, verrs := f.value.isValidField(f.field); !ok {
			errs = append(errs, verrs...)
		}
	}

	return errors.Join(errs...)
}

// Layout resolves the configuration into absolute paths. The project root
// defaults to the launcher's working directory.
func (c *Config) Layout() (*Layout, error) {
	root := c.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine project root: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	envDir := filepath.Join(root, string(c.Paths.EnvDir))
	dataDir := filepath.Join(root, string(c.Paths.DataDir))
	clientDir := filepath.Join(root, string(c.Client.Dir))
	clientEnvDir := filepath.Join(clientDir, string(c.Client.EnvDir))

	return &Layout{
		Root: root,

		EnvDir:           envDir,
		ActivateArtifact: platform.VenvActivatePath(envDir),
		EnvInterpreter:   platform.VenvPythonPath(envDir),
		ManifestFile:     filepath.Join(root, string(c.Paths.Manifest)),
		DataDir:          dataDir,
		StoreFile:        filepath.Join(dataDir, string(c.Paths.StoreFile)),
		AppEntry:         filepath.Join(root, string(c.Paths.AppEntry)),

		ClientDir:         clientDir,
		ClientInterpreter: platform.VenvPythonPath(clientEnvDir),
		ClientScript:      filepath.Join(clientDir, string(c.Client.Script)),
		TaskFile:          filepath.Join(dataDir, string(c.Client.TaskFile)),
	}, nil
}
