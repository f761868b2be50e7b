// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Two tiers live here: ActionableError carries structured operation/resource
// context plus remediation suggestions for inline display, while Issue cards
// hold Markdown-formatted guidance for the launcher's failure kinds, rendered
// to the terminal when a bootstrap or client run aborts.
package issue
