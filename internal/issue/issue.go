// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known launcher failure kind with rendered guidance.
type Id int

const (
	RuntimeMissingId Id = iota + 1
	EnvironmentCreateFailedId
	EnvironmentIncompleteAfterCreateId
	ActivationFailedId
	DependencyInstallFailedId
	StoreInitFailedId
	StoreInitIncompleteId
	ClientBinaryMissingId
	TaskFileMissingId
	DirectoryChangeFailedId
	SubprocessNonZeroExitId
	ConfigLoadFailedId
)

// MarkdownMsg is Markdown text that will be rendered to the terminal.
type MarkdownMsg string

// Issue pairs a failure kind with operator guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render returns the issue guidance rendered for the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	// render is swappable in tests.
	render = glamour.Render

	runtimeMissingIssue = &Issue{
		id: RuntimeMissingId,
		mdMsg: `
# Python was not found!

Prompt Studio needs a working Python installation to run, and the launcher
could not invoke one.

## Things you can try:
- Install Python 3 from your package manager or https://www.python.org/downloads/
- Make sure the interpreter is on your PATH:
~~~
$ python3 --version
~~~
- Point the launcher at a specific interpreter in your config file:
~~~
runtime: command: "/usr/local/bin/python3.12"
~~~`,
	}

	environmentCreateFailedIssue = &Issue{
		id: EnvironmentCreateFailedId,
		mdMsg: `
# Could not create the virtual environment!

The launcher tried to create an isolated dependency environment and the
creation command exited with an error.

## Things you can try:
- Check the output above for the interpreter's own error message
- Make sure the 'venv' module is available (some distributions package it
  separately, e.g. 'apt install python3-venv')
- Delete any leftover environment directory and run the launcher again`,
	}

	environmentIncompleteAfterCreateIssue = &Issue{
		id: EnvironmentIncompleteAfterCreateId,
		mdMsg: `
# The virtual environment came up incomplete!

Environment creation reported success but the activation artifact is still
missing, so the environment cannot be trusted.

## Things you can try:
- Delete the environment directory entirely and run the launcher again
- Check free disk space and directory permissions
- Verify your Python installation is not broken:
~~~
$ python3 -m venv /tmp/venv-check
~~~`,
	}

	activationFailedIssue = &Issue{
		id: ActivationFailedId,
		mdMsg: `
# Could not activate the virtual environment!

The environment exists but its interpreter did not respond to a version
query, so it cannot be used for the remaining steps.

## Things you can try:
- Delete the environment directory and run the launcher again to recreate it
- Check that the interpreter inside the environment is executable`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency installation failed!

pip could not install the dependencies declared in the manifest.

## Things you can try:
- Check the pip output above for the failing package
- Check your network connection and any proxy settings
- Re-run the launcher; installation is safe to repeat`,
	}

	storeInitFailedIssue = &Issue{
		id: StoreInitFailedId,
		mdMsg: `
# Data store initialization failed!

The application's database initializer exited with an error before the data
store could be created.

## Things you can try:
- Check the initializer output above for the underlying error
- Make sure the 'data' directory is writable
- Re-run the launcher once the cause is fixed`,
	}

	storeInitIncompleteIssue = &Issue{
		id: StoreInitIncompleteId,
		mdMsg: `
# The data store is still missing!

The database initializer reported success, but the data store file does not
exist afterwards. The launcher refuses to start the application without it.

## Things you can try:
- Check free disk space and permissions on the 'data' directory
- Remove a possibly corrupt, empty store file and re-run the launcher`,
	}

	clientBinaryMissingIssue = &Issue{
		id: ClientBinaryMissingId,
		mdMsg: `
# The generation client was not found!

The Stable Diffusion client (or its interpreter) is not at the expected
location, so no generation run was started.

## Things you can try:
- Install the client under the 'StableDiffusionClient' directory next to
  the application
- Make sure the client's own virtual environment has been set up
- Check the expected path printed above`,
	}

	taskFileMissingIssue = &Issue{
		id: TaskFileMissingId,
		mdMsg: `
# No task file to process!

The client needs a task descriptor, and none exists at the expected path.

## Things you can try:
- Open Prompt Studio and export your batch first; the export action writes
  'data/tasks.json'
- Then run the client again:
~~~
$ studiolaunch client
~~~`,
	}

	directoryChangeFailedIssue = &Issue{
		id: DirectoryChangeFailedId,
		mdMsg: `
# Could not enter the client directory!

The client must be invoked from its own directory, and changing into it
failed.

## Things you can try:
- Check that the client directory exists and is actually a directory
- Check its permissions`,
	}

	subprocessNonZeroExitIssue = &Issue{
		id: SubprocessNonZeroExitId,
		mdMsg: `
# The launched process reported a failure!

The external process the launcher handed off to exited with a non-zero
status. The launcher exits with the same status.

## Things you can try:
- Check the process output above for the actual failure
- Re-run with --verbose for more detail`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded!

The launcher config file exists but could not be parsed or validated.

## Things you can try:
- Check the file for CUE syntax errors
- Compare your settings against the defaults:
~~~
$ studiolaunch config show
~~~
- Regenerate a fresh config file:
~~~
$ studiolaunch config init
~~~`,
	}

	issues = map[Id]*Issue{
		runtimeMissingIssue.Id():                   runtimeMissingIssue,
		environmentCreateFailedIssue.Id():          environmentCreateFailedIssue,
		environmentIncompleteAfterCreateIssue.Id(): environmentIncompleteAfterCreateIssue,
		activationFailedIssue.Id():                 activationFailedIssue,
		dependencyInstallFailedIssue.Id():          dependencyInstallFailedIssue,
		storeInitFailedIssue.Id():                  storeInitFailedIssue,
		storeInitIncompleteIssue.Id():              storeInitIncompleteIssue,
		clientBinaryMissingIssue.Id():              clientBinaryMissingIssue,
		taskFileMissingIssue.Id():                  taskFileMissingIssue,
		directoryChangeFailedIssue.Id():            directoryChangeFailedIssue,
		subprocessNonZeroExitIssue.Id():            subprocessNonZeroExitIssue,
		configLoadFailedIssue.Id():                 configLoadFailedIssue,
	}
)

// Values returns all registered issues in unspecified order.
func Values() []*Issue {
	return maps.Values(issues)
}

// Get returns the issue registered for id, or nil for unknown ids.
func Get(id Id) *Issue {
	return issues[id]
}

// Ids returns all registered ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	return ids
}
