package domain

import "strconv"

// Command is an external program invocation with a structured argument list.
type Command struct {
	// Path is the program to run. Bare names are looked up in PATH.
	Path string
	// Args are the arguments after the program name.
	Args []string
	// Env overrides the environment of the child when non-nil.
	Env []string
	// Dir is the working directory, empty for the current one.
	Dir string
}

// CommandResult is the captured outcome of a finished command.
type CommandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// ExitCodeError reports that a launched program exited unsuccessfully.
// Its code is the exit status appenv itself terminates with.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return "program exited with code " + strconv.Itoa(e.Code)
}
