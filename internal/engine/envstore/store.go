// Package envstore implements the content-addressed environment store.
package envstore

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/appenv/internal/adapters/fs"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// pruneParallelism bounds the number of concurrent removals.
const pruneParallelism = 4

// Store manages the environments below one appenv directory.
type Store struct {
	base        string
	runtime     domain.Runtime
	provisioner ports.RuntimeProvisioner
	installer   ports.Installer
	telemetry   ports.Telemetry
	logger      ports.Logger
}

// New creates a Store rooted at base.
func New(
	base string,
	runtime domain.Runtime,
	provisioner ports.RuntimeProvisioner,
	installer ports.Installer,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Store {
	return &Store{
		base:        base,
		runtime:     runtime,
		provisioner: provisioner,
		installer:   installer,
		telemetry:   telemetry,
		logger:      logger,
	}
}

// Base returns the store directory.
func (s *Store) Base() string {
	return s.base
}

// Path returns the directory of the environment with the given identity.
func (s *Store) Path(id domain.Identity) string {
	return filepath.Join(s.base, id.String())
}

// Ensure returns the directory of a Ready environment for id, building it
// from lock when needed.
//
// An environment is Ready only once its marker exists, and the marker is
// written last. A directory without a marker is left over from an
// interrupted or failed build and is rebuilt from scratch. When the
// consistency check fails, the directory is kept for inspection and the
// error is returned.
func (s *Store) Ensure(ctx context.Context, id domain.Identity, lock []byte) (path string, err error) {
	if !id.Valid() {
		return "", zerr.With(zerr.New("invalid environment identity"), "identity", id.String())
	}

	dir := s.Path(id)
	ctx, vertex := s.telemetry.Record(ctx, "environment "+id.String())
	defer func() { vertex.Complete(err) }()

	if _, err := os.Stat(filepath.Join(dir, domain.ReadyMarkerName)); err == nil {
		vertex.Cached()
		return dir, nil
	}

	if _, err := os.Stat(dir); err == nil {
		s.logger.Warn("removing unclean environment " + dir)
		vertex.Log(domain.LogLevelWarn, "rebuilding environment left without a ready marker")
		if err := os.RemoveAll(dir); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to remove unclean environment"), "path", dir)
		}
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return "", zerr.With(zerr.Wrap(err, "failed to inspect environment"), "path", dir)
	}

	s.logger.Info("installing environment " + id.String())
	if err := s.build(ctx, dir, lock); err != nil {
		return "", zerr.With(err, "identity", id.String())
	}

	if err := fs.WriteFileAtomic(filepath.Join(dir, domain.ReadyMarkerName), []byte(id.String()+"\n"), domain.FilePerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to mark environment ready"), "path", dir)
	}
	return dir, nil
}

func (s *Store) build(ctx context.Context, dir string, lock []byte) error {
	if err := s.provisioner.EnsureRuntime(ctx, s.runtime, dir); err != nil {
		return err
	}

	lockPath := filepath.Join(dir, domain.LockFileName)
	if err := os.WriteFile(lockPath, lock, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lock copy"), "path", lockPath)
	}

	if err := s.installer.InstallPinned(ctx, dir, lockPath); err != nil {
		return err
	}

	if err := s.installer.Check(ctx, dir); err != nil {
		s.logger.Warn("environment " + dir + " failed its consistency check and was kept for inspection")
		return err
	}
	return nil
}

// Prune removes every entry of the store except those named in keep and the
// reserved entries. It returns the removed names in sorted order. A missing
// store is not an error; any failed removal is.
func (s *Store) Prune(ctx context.Context, keep ...string) ([]string, error) {
	children, err := os.ReadDir(s.base)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list environment store"), "path", s.base)
	}

	var (
		mu      sync.Mutex
		removed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pruneParallelism)

	for _, child := range children {
		name := child.Name()
		if domain.IsReservedEntry(name) || slices.Contains(keep, name) {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(s.base, name)
			s.logger.Info("removing expired path " + path)
			if err := os.RemoveAll(path); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove expired path"), "path", path)
			}
			mu.Lock()
			removed = append(removed, name)
			mu.Unlock()
			return nil
		})
	}

	err = g.Wait()
	slices.Sort(removed)
	return removed, err
}

// Entries lists the children of the store with their observed state.
func (s *Store) Entries() ([]domain.EnvironmentEntry, error) {
	children, err := os.ReadDir(s.base)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list environment store"), "path", s.base)
	}

	building, err := s.lockedElsewhere()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.EnvironmentEntry, 0, len(children))
	for _, child := range children {
		if !child.IsDir() {
			continue
		}
		dir := filepath.Join(s.base, child.Name())
		entry := domain.EnvironmentEntry{
			Identity: domain.Identity(child.Name()),
			Path:     dir,
			State:    entryState(dir, child.Name(), building),
		}
		if fp, err := fs.Fingerprint(filepath.Join(dir, domain.LockFileName)); err == nil {
			entry.LockFingerprint = fp
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Reset removes the whole store.
func (s *Store) Reset(_ context.Context) error {
	s.logger.Info("resetting " + s.base)
	if err := os.RemoveAll(s.base); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to reset environment store"), "path", s.base)
	}
	return nil
}

func entryState(dir, name string, building bool) domain.EnvState {
	readiness := filepath.Join(dir, domain.ReadyMarkerName)
	if name == domain.UncleanDirName || name == domain.UpdateLockDirName {
		readiness = domain.EnvPip(dir)
	}
	if _, err := os.Stat(readiness); err == nil {
		return domain.EnvReady
	}
	if building {
		return domain.EnvBuilding
	}
	return domain.EnvCorrupt
}
