// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet_KnownIds(t *testing.T) {
	for _, id := range Ids() {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) = nil, want issue", id)
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d, want %d", id, iss.Id(), id)
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("issue %d has empty guidance", id)
		}
	}
}

func TestGet_UnknownId(t *testing.T) {
	if iss := Get(Id(0)); iss != nil {
		t.Errorf("Get(0) = %v, want nil", iss)
	}
}

func TestRender_UsesRenderer(t *testing.T) {
	original := render
	defer func() { render = original }()

	var got string
	render = func(in, stylePath string) (string, error) {
		got = in
		return "rendered", nil
	}

	out, err := Get(TaskFileMissingId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" {
		t.Errorf("Render() = %q, want %q", out, "rendered")
	}
	if !strings.Contains(got, "tasks.json") {
		t.Errorf("task file guidance should mention tasks.json, got: %q", got)
	}
}

func TestValues_CoversAllIds(t *testing.T) {
	if got, want := len(Values()), len(Ids()); got != want {
		t.Errorf("len(Values()) = %d, want %d", got, want)
	}
}
