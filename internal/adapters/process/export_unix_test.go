//go:build unix

package process

// SetExecve replaces the exec system call and returns a function restoring it.
func SetExecve(fn func(path string, argv, env []string) error) func() {
	prev := execve
	execve = fn
	return func() { execve = prev }
}
