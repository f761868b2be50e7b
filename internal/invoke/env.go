// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExecutionEnv describes the execution context for external invocations:
// which interpreter to run and how the process environment is adjusted.
// It is a value, built once by activation and passed explicitly into every
// subsequent call, never applied to the launcher's own process.
type ExecutionEnv struct {
	// Interpreter is the command used for runtime invocations. Before
	// activation this is the system interpreter; after activation it is the
	// interpreter inside the virtual environment.
	Interpreter string

	// PathPrepend lists directories prepended to PATH for the invocation,
	// highest precedence first.
	PathPrepend []string

	// Vars holds extra environment variables set for the invocation.
	Vars map[string]string
}

// SystemEnv returns an ExecutionEnv that resolves against the system-wide
// installation of the given interpreter command.
func SystemEnv(interpreter string) ExecutionEnv {
	return ExecutionEnv{Interpreter: interpreter}
}

// WithVar returns a copy of the environment with an extra variable set.
// The receiver is not modified.
func (e ExecutionEnv) WithVar(key, value string) ExecutionEnv {
	vars := make(map[string]string, len(e.Vars)+1)
	for k, v := range e.Vars {
		vars[k] = v
	}
	vars[key] = value
	e.Vars = vars
	return e
}

// Environ merges the execution environment into base (typically os.Environ())
// and returns the resulting environment slice. Extra vars override base
// entries; PathPrepend directories are joined in front of any existing PATH.
func (e ExecutionEnv) Environ(base []string) []string {
	merged := make(map[string]string, len(base)+len(e.Vars))
	var order []string
	for _, kv := range base {
		idx := strings.IndexByte(kv, '=')
		if idx < 0 {
			continue
		}
		key := kv[:idx]
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] = kv[idx+1:]
	}

	extra := make([]string, 0, len(e.Vars))
	for k := range e.Vars {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = e.Vars[k]
	}

	if len(e.PathPrepend) > 0 {
		key := pathKey(order)
		prefix := strings.Join(e.PathPrepend, string(os.PathListSeparator))
		if existing, ok := merged[key]; ok && existing != "" {
			merged[key] = prefix + string(os.PathListSeparator) + existing
		} else {
			if _, seen := merged[key]; !seen {
				order = append(order, key)
			}
			merged[key] = prefix
		}
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+merged[k])
	}
	return result
}

// pathKey returns the name of the PATH variable as it appears in the base
// environment. Windows environments commonly carry "Path".
func pathKey(keys []string) string {
	for _, k := range keys {
		if strings.EqualFold(k, "PATH") {
			return k
		}
	}
	return "PATH"
}

// ExtendPathList appends dir to an existing PATH-style list value, handling
// the empty case. Used for scoped extensions like PYTHONPATH during store
// initialization.
func ExtendPathList(existing, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if existing == "" {
		return abs
	}
	return abs + string(os.PathListSeparator) + existing
}
