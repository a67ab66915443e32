// Package lockupdate regenerates the lock document from the requirements.
package lockupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/appenv/internal/adapters/fs"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// Updater resolves requirements in a scratch environment and writes the
// merged lock document.
type Updater struct {
	base        string
	runtime     domain.Runtime
	provisioner ports.RuntimeProvisioner
	installer   ports.Installer
	telemetry   ports.Telemetry
	logger      ports.Logger
}

// New creates an Updater whose scratch environment lives below base.
func New(
	base string,
	runtime domain.Runtime,
	provisioner ports.RuntimeProvisioner,
	installer ports.Installer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Updater {
	return &Updater{
		base:        base,
		runtime:     runtime,
		provisioner: provisioner,
		installer:   installer,
		telemetry:   telemetry,
		logger:      logger,
	}
}

// Update installs requirements with full resolution in a scratch
// environment, merges what got installed with what was requested and writes
// the result to lockPath.
//
// Requested specs pinned to a URL always win over the installer's report of
// the same dependency. Nothing is written when the requirements do not
// parse. The scratch environment is removed whenever it was created.
func (u *Updater) Update(ctx context.Context, requirements []byte, lockPath string) (doc domain.LockDocument, err error) {
	requested, err := domain.ParseRequirements(requirements)
	if err != nil {
		return domain.LockDocument{}, zerr.Wrap(err, "failed to parse requirements")
	}

	u.logger.Info("updating lockfile")
	ctx, vertex := u.telemetry.Record(ctx, "update lockfile")
	defer func() { vertex.Complete(err) }()

	scratch := filepath.Join(u.base, domain.UpdateLockDirName)
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			err = errors.Join(err, zerr.With(zerr.Wrap(rmErr, "failed to remove scratch environment"), "path", scratch))
		}
	}()

	resolved, err := u.resolve(ctx, scratch, requirements)
	if err != nil {
		return domain.LockDocument{}, err
	}

	doc = domain.MergeLock(requested, resolved)
	if err := fs.WriteFileAtomic(lockPath, doc.Bytes(), domain.FilePerm); err != nil {
		return doc, zerr.Wrap(err, "failed to write lock document")
	}
	u.logger.Info("wrote " + lockPath)
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("locked %d dependencies", doc.Len()))
	return doc, nil
}

// resolve returns the specs the installer reports after a fully resolved
// install of requirements.
func (u *Updater) resolve(ctx context.Context, scratch string, requirements []byte) ([]domain.DependencySpec, error) {
	if err := u.provisioner.EnsureRuntime(ctx, u.runtime, scratch); err != nil {
		return nil, err
	}

	reqPath := filepath.Join(scratch, domain.RequirementsFileName)
	if err := os.WriteFile(reqPath, requirements, domain.FilePerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to write requirements"), "path", reqPath)
	}

	u.logger.Info("installing packages")
	if err := u.installer.InstallResolved(ctx, scratch, reqPath); err != nil {
		return nil, err
	}

	frozen, err := u.installer.Freeze(ctx, scratch)
	if err != nil {
		return nil, err
	}

	resolved, err := domain.ParseRequirements(frozen)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse installed packages")
	}
	return resolved, nil
}
