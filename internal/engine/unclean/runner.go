// Package unclean maintains the uncached environment used when no lock
// document is available or unclean mode is requested.
package unclean

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner installs requirements straight into the reserved unclean entry.
// It never reads or writes a lock document and never hashes anything.
type Runner struct {
	base        string
	runtime     domain.Runtime
	provisioner ports.RuntimeProvisioner
	installer   ports.Installer
	telemetry   ports.Telemetry
	logger      ports.Logger
}

// New creates a Runner whose environment lives below base.
func New(
	base string,
	runtime domain.Runtime,
	provisioner ports.RuntimeProvisioner,
	installer ports.Installer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Runner {
	return &Runner{
		base:        base,
		runtime:     runtime,
		provisioner: provisioner,
		installer:   installer,
		telemetry:   telemetry,
		logger:      logger,
	}
}

// Path returns the directory of the unclean environment.
func (r *Runner) Path() string {
	return filepath.Join(r.base, domain.UncleanDirName)
}

// Run brings the unclean environment up to date with requirements, upgrading
// what is already installed, and returns its directory.
func (r *Runner) Run(ctx context.Context, requirements []byte) (dir string, err error) {
	r.logger.Info("running unclean installation from requirements")
	ctx, vertex := r.telemetry.Record(ctx, "environment "+domain.UncleanDirName)
	defer func() { vertex.Complete(err) }()

	dir = r.Path()
	if err := r.provisioner.EnsureRuntime(ctx, r.runtime, dir); err != nil {
		return "", err
	}

	reqPath := filepath.Join(dir, domain.RequirementsFileName)
	if err := os.WriteFile(reqPath, requirements, domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to write requirements"), "path", reqPath)
	}

	if err := r.installer.InstallUpgrade(ctx, dir, reqPath); err != nil {
		return "", err
	}
	return dir, nil
}
