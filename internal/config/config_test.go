// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/promptstudio/studiolaunch/internal/platform"
	"github.com/promptstudio/studiolaunch/internal/testutil"
)

func TestLoad_DefaultsWithoutConfigFile(t *testing.T) {
	SetConfigDirOverride(t.TempDir())
	defer Reset()

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path != "" {
		t.Errorf("Load() resolved path = %q, want empty (defaults)", path)
	}
	if got, want := string(cfg.Paths.EnvDir), "venv"; got != want {
		t.Errorf("Paths.EnvDir = %q, want %q", got, want)
	}
	if got, want := string(cfg.Client.Script), "GenImage.py"; got != want {
		t.Errorf("Client.Script = %q, want %q", got, want)
	}
	if !cfg.UI.PauseOnError {
		t.Errorf("UI.PauseOnError = false, want true by default")
	}
}

func TestLoad_MergesConfigFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	content := `
paths: {
	env_dir: ".venv"
}
ui: {
	pause_on_error: false
}
`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, path, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if path == "" {
		t.Errorf("Load() resolved path empty, want config file path")
	}
	if got, want := string(cfg.Paths.EnvDir), ".venv"; got != want {
		t.Errorf("Paths.EnvDir = %q, want %q", got, want)
	}
	if cfg.UI.PauseOnError {
		t.Errorf("UI.PauseOnError = true, want false from config file")
	}
	// Untouched fields keep their defaults.
	if got, want := string(cfg.Paths.Manifest), "requirements.txt"; got != want {
		t.Errorf("Paths.Manifest = %q, want default %q", got, want)
	}
}

func TestLoad_RejectsSchemaViolation(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	// pause_on_error must be a bool.
	content := `ui: pause_on_error: "yes"`
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, _, err := Load(); err == nil {
		t.Errorf("Load() = nil error, want schema violation")
	}
}

func TestLoad_ExplicitConfigFileMustExist(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))
	defer Reset()

	if _, _, err := Load(); err == nil {
		t.Errorf("Load() = nil error, want missing explicit config file error")
	}
}

func TestConfigDir_RespectsXDGConfigHome(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG_CONFIG_HOME applies to Linux and friends only")
	}
	Reset()

	dir := t.TempDir()
	restore := testutil.MustSetenv(t, "XDG_CONFIG_HOME", dir)
	defer restore()

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestConfigDir_WindowsAppData(t *testing.T) {
	if runtime.GOOS != platform.Windows {
		t.Skip("APPDATA applies to Windows only")
	}
	Reset()

	dir := t.TempDir()
	restore := testutil.MustSetenv(t, "APPDATA", dir)
	defer restore()

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(dir, AppName); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
}

func TestGenerateCUE_RoundTripsThroughLoad(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	want := DefaultConfig()
	want.Paths.EnvDir = ".venv"
	want.UI.Verbose = true

	content := GenerateCUE(want)
	if err := os.WriteFile(filepath.Join(dir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	got, _, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Paths.EnvDir != want.Paths.EnvDir {
		t.Errorf("Paths.EnvDir = %q, want %q", got.Paths.EnvDir, want.Paths.EnvDir)
	}
	if got.UI.Verbose != want.UI.Verbose {
		t.Errorf("UI.Verbose = %v, want %v", got.UI.Verbose, want.UI.Verbose)
	}
	if got.Runtime.Command != want.Runtime.Command {
		t.Errorf("Runtime.Command = %q, want %q", got.Runtime.Command, want.Runtime.Command)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	defer Reset()

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	cfgPath := filepath.Join(dir, "config.cue")
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Existing files are left untouched.
	if err := os.WriteFile(cfgPath, []byte("ui: verbose: true\n"), 0o644); err != nil {
		t.Fatalf("failed to overwrite config file: %v", err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second run error = %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	if string(data) != "ui: verbose: true\n" {
		t.Errorf("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestValidate_RejectsAbsolutePaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Paths.EnvDir = RelativePath(filepath.Join(string(filepath.Separator), "abs", "venv"))

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidRelativePath) {
		t.Errorf("Validate() = %v, want ErrInvalidRelativePath", err)
	}
}

func TestValidate_RejectsEmptyInterpreter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Runtime.Command = "  "

	err := cfg.Validate()
	if !errors.Is(err, ErrInvalidInterpreterCommand) {
		t.Errorf("Validate() = %v, want ErrInvalidInterpreterCommand", err)
	}
}

func TestLayout_ResolvesUnderRoot(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.ProjectRoot = root

	layout, err := cfg.Layout()
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	if layout.EnvDir != filepath.Join(root, "venv") {
		t.Errorf("EnvDir = %q, want under root", layout.EnvDir)
	}
	if layout.StoreFile != filepath.Join(root, "data", "prompt_data.db") {
		t.Errorf("StoreFile = %q, want data/prompt_data.db under root", layout.StoreFile)
	}
	if layout.TaskFile != filepath.Join(root, "data", "tasks.json") {
		t.Errorf("TaskFile = %q, want data/tasks.json under root", layout.TaskFile)
	}
	if layout.ClientScript != filepath.Join(root, "StableDiffusionClient", "GenImage.py") {
		t.Errorf("ClientScript = %q, want client script under client dir", layout.ClientScript)
	}
	if !filepath.IsAbs(layout.ActivateArtifact) {
		t.Errorf("ActivateArtifact = %q, want absolute", layout.ActivateArtifact)
	}
}
