// Package app implements the application layer for appenv.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/appenv/internal/engine/envstore"
	"go.trai.ch/appenv/internal/engine/lockupdate"
	"go.trai.ch/appenv/internal/engine/unclean"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	provisioner  ports.RuntimeProvisioner
	installer    ports.Installer
	launcher     ports.Launcher
	telemetry    ports.Telemetry
	logger       ports.Logger

	selfPath func() (string, error)
	lookPath func(string) (string, error)
	environ  func() []string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	provisioner ports.RuntimeProvisioner,
	installer ports.Installer,
	launcher ports.Launcher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		provisioner:  provisioner,
		installer:    installer,
		launcher:     launcher,
		telemetry:    telemetry,
		logger:       logger,
		selfPath:     os.Executable,
		lookPath:     exec.LookPath,
		environ:      os.Environ,
	}
}

// WithSelfPath overrides the program whose bytes take part in the
// environment identity. It defaults to the running executable.
func (a *App) WithSelfPath(path string) *App {
	a.selfPath = func() (string, error) { return path, nil }
	return a
}

// WithEnviron overrides the environment the launch environment is derived from.
func (a *App) WithEnviron(environ []string) *App {
	a.environ = func() []string { return environ }
	return a
}

// Prepare makes sure an environment matching the current lock file exists
// and returns its directory.
//
// Without a lock file, or in unclean mode, the requirements are installed
// into the reserved unclean environment instead.
func (a *App) Prepare(ctx context.Context, opts Options) (string, error) {
	s, err := a.resolve(opts)
	if err != nil {
		return "", err
	}
	return a.prepare(ctx, s)
}

func (a *App) prepare(ctx context.Context, s *settings) (dir string, err error) {
	release, err := a.store(s).Lock(ctx)
	if err != nil {
		return "", err
	}
	defer func() { err = errors.Join(err, release()) }()

	var lock []byte
	if !s.unclean {
		if lock, err = readLock(s.lockFile); err != nil {
			return "", err
		}
	}

	if lock == nil {
		requirements, err := readRequirements(s.requirements)
		if err != nil {
			return "", err
		}
		return a.uncleanRunner(s).Run(ctx, requirements)
	}

	if _, err := domain.ParseLockDocument(lock); err != nil {
		return "", zerr.With(zerr.Wrap(err, "invalid lock file"), "path", s.lockFile)
	}

	id, err := a.identity(s, lock)
	if err != nil {
		return "", err
	}

	store := a.store(s)
	if _, err := store.Prune(ctx, id.String()); err != nil {
		return "", zerr.Wrap(err, "failed to prune expired environments")
	}
	return store.Ensure(ctx, id, lock)
}

// RunApp prepares the environment and hands over to the application entry point.
func (a *App) RunApp(ctx context.Context, opts Options, args []string) error {
	s, err := a.resolve(opts)
	if err != nil {
		return err
	}
	dir, err := a.prepare(ctx, s)
	if err != nil {
		return err
	}
	return a.launch(ctx, s, domain.EnvExecutable(dir, s.appName), args)
}

// RunCommand prepares the environment and hands over to one of its executables.
func (a *App) RunCommand(ctx context.Context, opts Options, command string, args []string) error {
	if command == "" || strings.ContainsAny(command, `/\`) {
		return zerr.With(zerr.New("invalid command name"), "command", command)
	}
	s, err := a.resolve(opts)
	if err != nil {
		return err
	}
	dir, err := a.prepare(ctx, s)
	if err != nil {
		return err
	}
	return a.launch(ctx, s, domain.EnvExecutable(dir, command), args)
}

// Python prepares the environment and hands over to its interpreter.
func (a *App) Python(ctx context.Context, opts Options, args []string) error {
	s, err := a.resolve(opts)
	if err != nil {
		return err
	}
	dir, err := a.prepare(ctx, s)
	if err != nil {
		return err
	}
	return a.launch(ctx, s, domain.EnvInterpreter(dir), args)
}

// UpdateLockfile regenerates the lock file from the requirements.
func (a *App) UpdateLockfile(ctx context.Context, opts Options) (doc domain.LockDocument, err error) {
	s, err := a.resolve(opts)
	if err != nil {
		return domain.LockDocument{}, err
	}
	requirements, err := readRequirements(s.requirements)
	if err != nil {
		return domain.LockDocument{}, err
	}

	release, err := a.store(s).Lock(ctx)
	if err != nil {
		return domain.LockDocument{}, err
	}
	defer func() { err = errors.Join(err, release()) }()

	updater := lockupdate.New(s.appEnvDir, s.runtime, a.provisioner, a.installer, a.telemetry, a.logger)
	return updater.Update(ctx, requirements, s.lockFile)
}

// Reset removes every environment of the application.
func (a *App) Reset(ctx context.Context, opts Options) (err error) {
	s, err := a.resolve(opts)
	if err != nil {
		return err
	}
	store := a.store(s)
	release, err := store.Lock(ctx)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, release()) }()

	return store.Reset(ctx)
}

// Prune removes every environment except the one matching the current lock
// file and the reserved entries. It returns the removed entry names.
func (a *App) Prune(ctx context.Context, opts Options) (removed []string, err error) {
	s, err := a.resolve(opts)
	if err != nil {
		return nil, err
	}
	store := a.store(s)
	release, err := store.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, release()) }()

	var keep []string
	lock, err := readLock(s.lockFile)
	if err != nil {
		return nil, err
	}
	if lock != nil {
		id, err := a.identity(s, lock)
		if err != nil {
			return nil, err
		}
		keep = append(keep, id.String())
	}
	return store.Prune(ctx, keep...)
}

// Status writes one line per store entry with its state and lock fingerprint.
// The entry matching the current lock file is marked.
func (a *App) Status(_ context.Context, opts Options, w io.Writer) error {
	s, err := a.resolve(opts)
	if err != nil {
		return err
	}
	entries, err := a.store(s).Entries()
	if err != nil {
		return err
	}

	var current domain.Identity
	if lock, err := readLock(s.lockFile); err == nil && lock != nil {
		if id, err := a.identity(s, lock); err == nil {
			current = id
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ENVIRONMENT\tSTATE\tLOCK\t")
	for _, e := range entries {
		mark := ""
		if e.Identity == current {
			mark = "current"
		}
		fingerprint := e.LockFingerprint
		if fingerprint == "" {
			fingerprint = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Identity, e.State, fingerprint, mark)
	}
	return zerr.Wrap(tw.Flush(), "failed to write status")
}

func (a *App) launch(ctx context.Context, s *settings, program string, args []string) error {
	return a.launcher.Exec(ctx, domain.LaunchSpec{
		Path: program,
		Args: args,
		Env:  launchEnvironment(a.environ(), s.base),
		Dir:  s.base,
	})
}

// identity derives the environment identity from the resolved interpreter,
// the lock document and the running program.
func (a *App) identity(s *settings, lock []byte) (domain.Identity, error) {
	interpreter, err := a.lookPath(s.runtime.Interpreter)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRuntimeUnavailable.Error()), "interpreter", s.runtime.Interpreter)
	}
	interpreter, err = filepath.EvalSymlinks(interpreter)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve interpreter"), "interpreter", s.runtime.Interpreter)
	}

	self, err := a.selfPath()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate appenv executable")
	}
	selfBytes, err := os.ReadFile(self) //nolint:gosec // path of the running executable
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read appenv executable"), "path", self)
	}

	return domain.ComputeIdentity(interpreter, lock, selfBytes), nil
}

func (a *App) store(s *settings) *envstore.Store {
	return envstore.New(s.appEnvDir, s.runtime, a.provisioner, a.installer, a.telemetry, a.logger)
}

func (a *App) uncleanRunner(s *settings) *unclean.Runner {
	return unclean.New(s.appEnvDir, s.runtime, a.provisioner, a.installer, a.telemetry, a.logger)
}

// readLock returns the lock file content, or nil when there is no lock file.
func readLock(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read lock file"), "path", path)
	}
	return data, nil
}

func readRequirements(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, zerr.With(domain.ErrRequirementsNotFound, "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read requirements"), "path", path)
	}
	return data, nil
}
