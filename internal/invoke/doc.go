// SPDX-License-Identifier: MPL-2.0

// Package invoke runs external processes for the launcher.
//
// Every external step (runtime probe, environment creation, dependency
// install, store initialization, application and client handoff) goes through
// the Invoker interface so orchestration logic can be tested against a double.
// The execution environment is an explicit value (ExecutionEnv) threaded into
// each call rather than ambient process state.
package invoke
