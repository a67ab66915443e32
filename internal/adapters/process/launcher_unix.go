//go:build unix

package process

import (
	"context"
	"os"

	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

var execve = unix.Exec

// execProgram replaces the current process image. It only returns on failure.
func execProgram(_ context.Context, path string, argv, env []string, dir string) error {
	if dir != "" {
		if err := os.Chdir(dir); err != nil {
			return zerr.Wrap(err, "failed to change directory")
		}
	}
	return zerr.Wrap(execve(path, argv, env), "failed to exec program")
}
