// SPDX-License-Identifier: MPL-2.0

// Package client orchestrates the Stable Diffusion batch client: it
// validates the client installation and the task descriptor, enters the
// client's directory, invokes the client against the task file, and restores
// the original working directory on every exit path.
//
// The sequence is independent of the bootstrap chain and shares no state
// with it.
package client
