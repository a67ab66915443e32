package envstore

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// lockPollInterval is how often a contended store lock is retried.
const lockPollInterval = 100 * time.Millisecond

// Lock takes the exclusive store lock, waiting until it is free or ctx is
// done. The returned function releases it.
func (s *Store) Lock(ctx context.Context) (func() error, error) {
	if err := os.MkdirAll(s.base, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create environment store"), "path", s.base)
	}

	path := s.lockPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open store lock"), "path", path)
	}

	waiting := false
	for {
		ok, err := tryLock(f)
		if err != nil {
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(err, "failed to acquire store lock"), "path", path)
		}
		if ok {
			return func() error {
				unlockErr := unlock(f)
				closeErr := f.Close()
				if unlockErr != nil {
					return zerr.Wrap(unlockErr, "failed to release store lock")
				}
				return zerr.Wrap(closeErr, "failed to release store lock")
			}, nil
		}

		if !waiting {
			waiting = true
			s.logger.Info("waiting for another appenv process to release " + path)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrStoreLocked.Error()), "path", path)
		case <-time.After(lockPollInterval):
		}
	}
}

// lockedElsewhere reports whether another process holds the store lock.
func (s *Store) lockedElsewhere() (bool, error) {
	f, err := os.OpenFile(s.lockPath(), os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, "failed to open store lock")
	}
	defer func() { _ = f.Close() }()

	ok, err := tryLock(f)
	if err != nil {
		return false, zerr.Wrap(err, "failed to probe store lock")
	}
	if ok {
		_ = unlock(f)
	}
	return !ok, nil
}

func (s *Store) lockPath() string {
	return filepath.Join(s.base, domain.StoreLockFileName)
}
