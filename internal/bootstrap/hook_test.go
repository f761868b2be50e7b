// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/promptstudio/studiolaunch/internal/invoke"
)

func TestPreLaunchHook_Disabled(t *testing.T) {
	_, layout := testSetup(t)

	h := NewPreLaunchHook("", layout, quietLogger())
	if h.Enabled() {
		t.Errorf("Enabled() = true for empty snippet, want false")
	}
	if err := h.Run(context.Background(), invoke.ExecutionEnv{}); err != nil {
		t.Errorf("Run() on disabled hook = %v, want nil", err)
	}
}

func TestPreLaunchHook_RunsInProjectRoot(t *testing.T) {
	_, layout := testSetup(t)

	var stdout bytes.Buffer
	h := NewPreLaunchHook("pwd", layout, quietLogger())
	h.Stdout = &stdout

	if err := h.Run(context.Background(), invoke.ExecutionEnv{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(stdout.String()); got != layout.Root {
		t.Errorf("hook working directory = %q, want %q", got, layout.Root)
	}
}

func TestPreLaunchHook_SeesActivatedEnvironment(t *testing.T) {
	_, layout := testSetup(t)

	var stdout bytes.Buffer
	h := NewPreLaunchHook(`printf %s "$VIRTUAL_ENV"`, layout, quietLogger())
	h.Stdout = &stdout

	env := invoke.ExecutionEnv{}.WithVar("VIRTUAL_ENV", layout.EnvDir)
	if err := h.Run(context.Background(), env); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := stdout.String(); got != layout.EnvDir {
		t.Errorf("hook VIRTUAL_ENV = %q, want %q", got, layout.EnvDir)
	}
}

func TestPreLaunchHook_NonZeroExit(t *testing.T) {
	_, layout := testSetup(t)

	h := NewPreLaunchHook("exit 3", layout, quietLogger())
	h.Stdout = &bytes.Buffer{}
	h.Stderr = &bytes.Buffer{}

	err := h.Run(context.Background(), invoke.ExecutionEnv{})
	if !errors.Is(err, ErrHookFailed) {
		t.Fatalf("Run() = %v, want ErrHookFailed", err)
	}
	var ese *invoke.ExitStatusError
	if !errors.As(err, &ese) {
		t.Fatalf("Run() = %v, want wrapped ExitStatusError", err)
	}
	if ese.Code != 3 {
		t.Errorf("hook exit code = %d, want 3", ese.Code)
	}
}

func TestPreLaunchHook_SyntaxError(t *testing.T) {
	_, layout := testSetup(t)

	h := NewPreLaunchHook("if then fi", layout, quietLogger())
	err := h.Run(context.Background(), invoke.ExecutionEnv{})
	if !errors.Is(err, ErrHookFailed) {
		t.Errorf("Run() = %v, want ErrHookFailed for syntax error", err)
	}
}
