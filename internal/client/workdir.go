// SPDX-License-Identifier: MPL-2.0

package client

import (
	"fmt"
	"os"
)

// WorkdirGuard scopes a working-directory change. The original directory is
// captured on acquisition and restored by Restore, which is safe to defer and
// to call more than once. The working directory is shared mutable process
// state, so the guard must be restored on every exit path, including errors.
type WorkdirGuard struct {
	original string
	restored bool
}

// AcquireWorkdir captures the current working directory.
func AcquireWorkdir() (*WorkdirGuard, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to capture working directory: %w", err)
	}
	return &WorkdirGuard{original: wd}, nil
}

// Original returns the directory captured at acquisition.
func (g *WorkdirGuard) Original() string {
	return g.original
}

// Change switches the process to dir.
func (g *WorkdirGuard) Change(dir string) error {
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", dir, err)
	}
	return nil
}

// Restore returns the process to the original directory. Subsequent calls
// are no-ops.
func (g *WorkdirGuard) Restore() error {
	if g.restored {
		return nil
	}
	if err := os.Chdir(g.original); err != nil {
		return fmt.Errorf("failed to restore working directory to %s: %w", g.original, err)
	}
	g.restored = true
	return nil
}
