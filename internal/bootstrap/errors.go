// SPDX-License-Identifier: MPL-2.0

package bootstrap

import "errors"

// Sentinel errors for the bootstrap failure kinds. Failure sites wrap these
// into issue.ActionableError values; callers detect the kind with errors.Is.
var (
	// ErrRuntimeMissing reports that the Python runtime could not be invoked.
	ErrRuntimeMissing = errors.New("python runtime missing")

	// ErrEnvironmentCreateFailed reports that virtual environment creation
	// exited with an error.
	ErrEnvironmentCreateFailed = errors.New("virtual environment creation failed")

	// ErrEnvironmentIncompleteAfterCreate reports that creation claimed
	// success but the activation artifact is still missing.
	ErrEnvironmentIncompleteAfterCreate = errors.New("virtual environment incomplete after creation")

	// ErrActivationFailed reports that the environment's interpreter did not
	// answer a version query.
	ErrActivationFailed = errors.New("virtual environment activation failed")

	// ErrDependencyInstallFailed reports a failed pip install run.
	ErrDependencyInstallFailed = errors.New("dependency installation failed")

	// ErrStoreInitFailed reports that the database initializer exited with
	// an error.
	ErrStoreInitFailed = errors.New("data store initialization failed")

	// ErrStoreInitIncomplete reports that the initializer claimed success
	// but the store file still does not exist. Kept distinct from
	// ErrStoreInitFailed: the external command lied about its postcondition.
	ErrStoreInitIncomplete = errors.New("data store missing after initialization")

	// ErrHookFailed reports a failed pre-launch hook run.
	ErrHookFailed = errors.New("pre-launch hook failed")
)
