//go:build !unix

package process

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// execProgram emulates exec with a child process sharing the standard
// streams. A non-zero exit status is returned as *domain.ExitCodeError.
func execProgram(ctx context.Context, path string, argv, env []string, dir string) error {
	cmd := exec.CommandContext(ctx, path, argv[1:]...) //nolint:gosec // program comes from the managed environment
	cmd.Args = argv
	cmd.Env = env
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &domain.ExitCodeError{Code: exitErr.ExitCode()}
	}
	return zerr.Wrap(err, "failed to run program")
}
