// SPDX-License-Identifier: MPL-2.0

// Command studiolaunch provisions the Prompt Studio environment and starts
// the application.
package main

import cmd "github.com/promptstudio/studiolaunch/cmd/studiolaunch"

func main() {
	cmd.Execute()
}
