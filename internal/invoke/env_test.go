// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"os"
	"strings"
	"testing"
)

func TestEnviron_VarOverridesBase(t *testing.T) {
	env := ExecutionEnv{}.WithVar("STUDIO_MODE", "launch")

	got := env.Environ([]string{"STUDIO_MODE=old", "HOME=/home/u"})

	if !containsEntry(got, "STUDIO_MODE=launch") {
		t.Errorf("Environ() = %v, want STUDIO_MODE=launch", got)
	}
	if containsEntry(got, "STUDIO_MODE=old") {
		t.Errorf("Environ() still contains overridden value: %v", got)
	}
	if !containsEntry(got, "HOME=/home/u") {
		t.Errorf("Environ() dropped untouched base entry: %v", got)
	}
}

func TestEnviron_PathPrepend(t *testing.T) {
	env := ExecutionEnv{PathPrepend: []string{"/proj/venv/bin"}}

	got := env.Environ([]string{"PATH=/usr/bin"})

	want := "PATH=/proj/venv/bin" + string(os.PathListSeparator) + "/usr/bin"
	if !containsEntry(got, want) {
		t.Errorf("Environ() = %v, want entry %q", got, want)
	}
}

func TestEnviron_PathPrependWithoutBasePath(t *testing.T) {
	env := ExecutionEnv{PathPrepend: []string{"/proj/venv/bin"}}

	got := env.Environ([]string{"HOME=/home/u"})

	if !containsEntry(got, "PATH=/proj/venv/bin") {
		t.Errorf("Environ() = %v, want PATH created from prepend", got)
	}
}

func TestWithVar_DoesNotMutateReceiver(t *testing.T) {
	base := ExecutionEnv{Vars: map[string]string{"A": "1"}}
	derived := base.WithVar("B", "2")

	if _, ok := base.Vars["B"]; ok {
		t.Errorf("WithVar() mutated receiver: %v", base.Vars)
	}
	if derived.Vars["A"] != "1" || derived.Vars["B"] != "2" {
		t.Errorf("WithVar() result = %v, want A=1 B=2", derived.Vars)
	}
}

func TestExtendPathList(t *testing.T) {
	got := ExtendPathList("", "/proj")
	if !strings.HasSuffix(got, "proj") {
		t.Errorf("ExtendPathList(empty) = %q, want absolute /proj", got)
	}

	got = ExtendPathList("/other", "/proj")
	if !strings.Contains(got, string(os.PathListSeparator)) {
		t.Errorf("ExtendPathList() = %q, want joined list", got)
	}
	if !strings.HasSuffix(got, "/other") {
		t.Errorf("ExtendPathList() = %q, want existing entries preserved after the new dir", got)
	}
}

func containsEntry(env []string, entry string) bool {
	for _, e := range env {
		if e == entry {
			return true
		}
	}
	return false
}
