// Package pip drives the pip package installer inside an environment.
package pip

import (
	"context"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Installer = (*Installer)(nil)

// Installer implements ports.Installer by running "python -m pip" with the
// interpreter of the target environment.
type Installer struct {
	runner ports.CommandRunner
}

// NewInstaller creates a new Installer.
func NewInstaller(runner ports.CommandRunner) *Installer {
	return &Installer{runner: runner}
}

// InstallPinned installs exactly the specs in lockPath. --no-deps keeps pip
// from resolving or substituting anything the lock does not list.
func (i *Installer) InstallPinned(ctx context.Context, envDir, lockPath string) error {
	_, err := i.pip(ctx, envDir, "install", "--no-deps", "-r", lockPath)
	return zerr.Wrap(err, "failed to install pinned dependencies")
}

// InstallUpgrade installs the constraints in reqPath with upgrade semantics.
func (i *Installer) InstallUpgrade(ctx context.Context, envDir, reqPath string) error {
	_, err := i.pip(ctx, envDir, "install", "-r", reqPath, "--upgrade")
	return zerr.Wrap(err, "failed to install requirements")
}

// InstallResolved installs the constraints in reqPath with full resolution.
func (i *Installer) InstallResolved(ctx context.Context, envDir, reqPath string) error {
	_, err := i.pip(ctx, envDir, "install", "-r", reqPath)
	return zerr.Wrap(err, "failed to resolve requirements")
}

// Freeze returns the installed set as pip reports it. Only stdout is used,
// pip writes warnings to stderr.
func (i *Installer) Freeze(ctx context.Context, envDir string) ([]byte, error) {
	result, err := i.pip(ctx, envDir, "freeze")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list installed packages")
	}
	return result.Stdout, nil
}

// Check runs "pip check" over the installed set.
func (i *Installer) Check(ctx context.Context, envDir string) error {
	_, err := i.pip(ctx, envDir, "check")
	return zerr.Wrap(err, "environment consistency check failed")
}

func (i *Installer) pip(ctx context.Context, envDir string, args ...string) (domain.CommandResult, error) {
	result, err := i.runner.Run(ctx, domain.Command{
		Path: domain.EnvInterpreter(envDir),
		Args: append([]string{"-m", "pip"}, args...),
	})
	if err != nil {
		return result, zerr.With(err, "env", envDir)
	}
	return result, nil
}
