// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes the platform-specific pieces of a Python virtual
// environment's layout (bin vs Scripts, executable suffixes) so the rest of
// the launcher never branches on runtime.GOOS directly.
package platform

import (
	"path/filepath"
	"runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// VenvBinDirName returns the name of the executables directory inside a
// virtual environment ("Scripts" on Windows, "bin" elsewhere).
func VenvBinDirName() string {
	if runtime.GOOS == Windows {
		return "Scripts"
	}
	return "bin"
}

// VenvActivatePath returns the path of the activation artifact inside the
// given virtual environment directory. The artifact's presence is what marks
// the environment as usable.
func VenvActivatePath(envDir string) string {
	return filepath.Join(envDir, VenvBinDirName(), "activate")
}

// VenvPythonPath returns the path of the Python interpreter inside the given
// virtual environment directory.
func VenvPythonPath(envDir string) string {
	return filepath.Join(envDir, VenvBinDirName(), "python"+ExeSuffix())
}

// ExeSuffix returns the executable filename suffix for the current platform.
func ExeSuffix() string {
	if runtime.GOOS == Windows {
		return ".exe"
	}
	return ""
}

// DefaultInterpreter returns the system Python command to probe for when no
// interpreter is configured. Windows installs typically only ship "python";
// most Unix distributions ship "python3".
func DefaultInterpreter() string {
	if runtime.GOOS == Windows {
		return "python"
	}
	return "python3"
}
