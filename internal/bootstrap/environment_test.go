// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/testutil"
)

func TestEnvironmentManager_Inspect(t *testing.T) {
	_, layout := testSetup(t)
	m := NewEnvironmentManager(&fakeInvoker{}, invoke.SystemEnv("python3"), layout, quietLogger())

	if got := m.Inspect(); got != StateAbsent {
		t.Errorf("Inspect() = %v, want %v", got, StateAbsent)
	}

	testutil.MustMkdirAll(t, layout.EnvDir)
	if got := m.Inspect(); got != StateIncomplete {
		t.Errorf("Inspect() = %v, want %v", got, StateIncomplete)
	}

	testutil.MustWriteFile(t, layout.ActivateArtifact, "# activate")
	if got := m.Inspect(); got != StateValid {
		t.Errorf("Inspect() = %v, want %v", got, StateValid)
	}
}

func TestEnsureValid_Idempotent(t *testing.T) {
	_, layout := testSetup(t)
	testutil.MustWriteFile(t, layout.ActivateArtifact, "# activate")

	inv := &fakeInvoker{}
	m := NewEnvironmentManager(inv, invoke.SystemEnv("python3"), layout, quietLogger())

	for i := 0; i < 2; i++ {
		if err := m.EnsureValid(context.Background()); err != nil {
			t.Fatalf("EnsureValid() call %d error = %v", i+1, err)
		}
		if got := m.Inspect(); got != StateValid {
			t.Errorf("state after call %d = %v, want %v", i+1, got, StateValid)
		}
	}

	// No creation was ever attempted against a valid environment.
	if len(inv.calls) != 0 {
		t.Errorf("EnsureValid() on valid environment made %d calls, want 0", len(inv.calls))
	}
}

func TestEnsureValid_RecreatesIncompleteEnvironment(t *testing.T) {
	_, layout := testSetup(t)
	// A stale directory without the activation artifact.
	staleMarker := filepath.Join(layout.EnvDir, "stale.txt")
	testutil.MustWriteFile(t, staleMarker, "leftover")

	inv := &fakeInvoker{}
	inv.handler = func(call invoke.Call) *invoke.Result {
		if isVenvCreate(call) {
			testutil.MustWriteFile(t, layout.ActivateArtifact, "# activate")
		}
		return &invoke.Result{ExitCode: 0}
	}

	m := NewEnvironmentManager(inv, invoke.SystemEnv("python3"), layout, quietLogger())
	if err := m.EnsureValid(context.Background()); err != nil {
		t.Fatalf("EnsureValid() error = %v", err)
	}

	if got := m.Inspect(); got != StateValid {
		t.Errorf("state = %v, want %v", got, StateValid)
	}
	// The stale content was deleted before recreation.
	if fileExistsForTest(staleMarker) {
		t.Errorf("stale marker survived recreation")
	}
	if got := inv.countCalls("venv"); got != 1 {
		t.Errorf("creation invocations = %d, want 1", got)
	}
}

func TestEnsureValid_CleanupFailureIsNonFatal(t *testing.T) {
	_, layout := testSetup(t)
	// A stale directory without the activation artifact.
	testutil.MustWriteFile(t, filepath.Join(layout.EnvDir, "stale.txt"), "leftover")

	origRemoveAll := removeAll
	removeAll = func(string) error { return errors.New("directory busy") }
	t.Cleanup(func() { removeAll = origRemoveAll })

	inv := &fakeInvoker{}
	inv.handler = func(call invoke.Call) *invoke.Result {
		if isVenvCreate(call) {
			testutil.MustWriteFile(t, layout.ActivateArtifact, "# activate")
		}
		return &invoke.Result{ExitCode: 0}
	}

	var logged bytes.Buffer
	m := NewEnvironmentManager(inv, invoke.SystemEnv("python3"), layout, log.New(&logged))
	if err := m.EnsureValid(context.Background()); err != nil {
		t.Fatalf("EnsureValid() error = %v", err)
	}

	// The failed deletion was warned about, not fatal.
	if !strings.Contains(logged.String(), "could not delete stale environment") {
		t.Errorf("deletion failure warning missing from log output: %q", logged.String())
	}
	// Creation was still attempted.
	if got := inv.countCalls("venv"); got != 1 {
		t.Errorf("creation invocations = %d, want 1", got)
	}
}

func TestEnsureValid_CreateFailure(t *testing.T) {
	_, layout := testSetup(t)

	inv := &fakeInvoker{handler: func(invoke.Call) *invoke.Result {
		return &invoke.Result{ExitCode: 1}
	}}

	m := NewEnvironmentManager(inv, invoke.SystemEnv("python3"), layout, quietLogger())
	err := m.EnsureValid(context.Background())
	if !errors.Is(err, ErrEnvironmentCreateFailed) {
		t.Errorf("EnsureValid() = %v, want ErrEnvironmentCreateFailed", err)
	}
}

func TestEnsureValid_IncompleteAfterCreate(t *testing.T) {
	_, layout := testSetup(t)

	// Creation claims success but never produces the artifact.
	inv := &fakeInvoker{}

	m := NewEnvironmentManager(inv, invoke.SystemEnv("python3"), layout, quietLogger())
	err := m.EnsureValid(context.Background())
	if !errors.Is(err, ErrEnvironmentIncompleteAfterCreate) {
		t.Errorf("EnsureValid() = %v, want ErrEnvironmentIncompleteAfterCreate", err)
	}
}

func fileExistsForTest(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
