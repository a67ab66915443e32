// Package process launches the target program of an environment.
package process

import (
	"context"
	"os"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Launcher = (*Launcher)(nil)

// Launcher implements ports.Launcher.
type Launcher struct{}

// NewLauncher creates a new Launcher.
func NewLauncher() *Launcher {
	return &Launcher{}
}

// Exec hands the process over to the program described by spec.
// A nil spec.Env inherits the current environment.
func (l *Launcher) Exec(ctx context.Context, spec domain.LaunchSpec) error {
	info, err := os.Stat(spec.Path)
	if err != nil || info.IsDir() {
		return zerr.With(domain.ErrProgramNotFound, "path", spec.Path)
	}

	env := spec.Env
	if env == nil {
		env = os.Environ()
	}
	argv := append([]string{spec.Path}, spec.Args...)

	return zerr.With(execProgram(ctx, spec.Path, argv, env, spec.Dir), "path", spec.Path)
}
