// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/promptstudio/studiolaunch/internal/invoke"
	"github.com/promptstudio/studiolaunch/internal/testutil"
)

func TestEnsureStore_PresentIsNoOp(t *testing.T) {
	_, layout := testSetup(t)
	testutil.MustWriteFile(t, layout.StoreFile, "sqlite")

	inv := &fakeInvoker{}
	s := NewStoreInitializer(inv, layout, quietLogger())

	if err := s.EnsureStore(context.Background(), invoke.ExecutionEnv{}); err != nil {
		t.Fatalf("EnsureStore() error = %v", err)
	}
	if len(inv.calls) != 0 {
		t.Errorf("initializer invoked although store exists, calls = %d", len(inv.calls))
	}
}

func TestEnsureStore_InitializerCreatesStore(t *testing.T) {
	_, layout := testSetup(t)

	inv := &fakeInvoker{}
	inv.handler = func(call invoke.Call) *invoke.Result {
		if isStoreInit(call) {
			testutil.MustWriteFile(t, layout.StoreFile, "sqlite")
		}
		return &invoke.Result{ExitCode: 0}
	}

	s := NewStoreInitializer(inv, layout, quietLogger())
	if err := s.EnsureStore(context.Background(), invoke.ExecutionEnv{}); err != nil {
		t.Fatalf("EnsureStore() error = %v", err)
	}
	if !s.StoreExists() {
		t.Errorf("store missing after successful initialization")
	}
}

func TestEnsureStore_InitializerFailure(t *testing.T) {
	_, layout := testSetup(t)

	inv := &fakeInvoker{handler: func(invoke.Call) *invoke.Result {
		return &invoke.Result{ExitCode: 1}
	}}

	s := NewStoreInitializer(inv, layout, quietLogger())
	err := s.EnsureStore(context.Background(), invoke.ExecutionEnv{})
	if !errors.Is(err, ErrStoreInitFailed) {
		t.Errorf("EnsureStore() = %v, want ErrStoreInitFailed", err)
	}
}

func TestEnsureStore_IncompleteIsDistinctFromFailure(t *testing.T) {
	_, layout := testSetup(t)

	// Initializer reports success but never creates the file.
	inv := &fakeInvoker{}

	s := NewStoreInitializer(inv, layout, quietLogger())
	err := s.EnsureStore(context.Background(), invoke.ExecutionEnv{})
	if !errors.Is(err, ErrStoreInitIncomplete) {
		t.Errorf("EnsureStore() = %v, want ErrStoreInitIncomplete", err)
	}
	if errors.Is(err, ErrStoreInitFailed) {
		t.Errorf("EnsureStore() reported ErrStoreInitFailed for a lying initializer")
	}
}

func TestEnsureStore_EmptyFileCountsAsAbsent(t *testing.T) {
	_, layout := testSetup(t)
	testutil.MustWriteFile(t, layout.StoreFile, "")

	s := NewStoreInitializer(&fakeInvoker{}, layout, quietLogger())
	if s.StoreExists() {
		t.Errorf("StoreExists() = true for empty file, want false")
	}
}

func TestEnsureStore_ExtendsModuleSearchPathForInitializerOnly(t *testing.T) {
	_, layout := testSetup(t)

	inv := &fakeInvoker{}
	env := invoke.ExecutionEnv{Interpreter: "python"}

	s := NewStoreInitializer(inv, layout, quietLogger())
	_ = s.EnsureStore(context.Background(), env) // incomplete, irrelevant here

	if len(inv.calls) != 1 {
		t.Fatalf("initializer calls = %d, want 1", len(inv.calls))
	}
	got := inv.calls[0].Env.Vars["PYTHONPATH"]
	if !strings.Contains(got, layout.Root) {
		t.Errorf("initializer PYTHONPATH = %q, want project root included", got)
	}
	// The caller's environment value was not mutated.
	if _, ok := env.Vars["PYTHONPATH"]; ok {
		t.Errorf("PYTHONPATH extension leaked into the shared environment")
	}
}
