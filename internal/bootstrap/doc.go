// SPDX-License-Identifier: MPL-2.0

// Package bootstrap implements the launch sequence for the Prompt Studio
// application: probe the Python runtime, ensure the virtual environment,
// activate it, install dependencies, ensure the data store, then hand off to
// the application process.
//
// The sequence is strictly ordered and fail-fast: each step is idempotent,
// has its own failure kind, and a failing step prevents every later one from
// running. The activated environment is an explicit invoke.ExecutionEnv value
// passed into each subsequent invocation; the launcher's own process
// environment is never mutated.
package bootstrap
