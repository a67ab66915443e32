// Package venv provisions isolated runtimes with "python -m venv".
package venv

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// versionScript prints the numeric version on the first line and the
	// release name used by source distributions on the second.
	versionScript = "import sys, platform; print('%d.%d.%d' % sys.version_info[:3]); print(platform.python_version())"

	downloadTimeout = 5 * time.Minute
)

var (
	// distutils left the standard library in 3.12.
	hasDistutils = mustConstraint("< 3.12")
	// pip 19.1 is the last release supporting 3.4.
	legacyPip = mustConstraint("~3.4")
)

var _ ports.RuntimeProvisioner = (*Provisioner)(nil)

// Provisioner implements ports.RuntimeProvisioner.
type Provisioner struct {
	runner ports.CommandRunner
	logger ports.Logger
	client *http.Client
}

// NewProvisioner creates a new Provisioner.
func NewProvisioner(runner ports.CommandRunner, logger ports.Logger) *Provisioner {
	return &Provisioner{
		runner: runner,
		logger: logger,
		client: &http.Client{Timeout: downloadTimeout},
	}
}

// interpreterVersion is what the runtime reports about itself.
type interpreterVersion struct {
	version *semver.Version
	release string
}

// EnsureRuntime creates a runtime in dir unless one with a package installer
// is already there. Runtimes missing ensurepip or distutils are repaired from
// the matching source distribution before pip is installed.
func (p *Provisioner) EnsureRuntime(ctx context.Context, rt domain.Runtime, dir string) error {
	if rt.Interpreter == "" {
		return zerr.With(domain.ErrRuntimeUnavailable, "reason", "no interpreter configured")
	}

	if _, err := os.Stat(domain.EnvPip(dir)); err == nil {
		return nil
	}

	if _, err := os.Stat(dir); err == nil {
		p.logger.Warn("removing incomplete runtime " + dir)
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove incomplete runtime"), "path", dir)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to inspect runtime"), "path", dir)
	}

	p.logger.Info("creating runtime in " + dir)
	if _, err := p.runner.Run(ctx, domain.Command{
		Path: rt.Interpreter,
		Args: []string{"-m", "venv", "--without-pip", dir},
	}); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRuntimeUnavailable.Error()), "interpreter", rt.Interpreter)
	}

	python := domain.EnvInterpreter(dir)
	version, err := p.probeVersion(ctx, python)
	if err != nil {
		return err
	}

	if !p.healthy(ctx, python, version) {
		p.logger.Warn("runtime lacks ensurepip or distutils, repairing from source distribution " + version.release)
		if err := p.repair(ctx, rt.DistributionURL, dir, version); err != nil {
			return zerr.With(err, "path", dir)
		}
	}

	return p.ensurePip(ctx, python, version)
}

func (p *Provisioner) probeVersion(ctx context.Context, python string) (interpreterVersion, error) {
	result, err := p.runner.Run(ctx, domain.Command{Path: python, Args: []string{"-c", versionScript}})
	if err != nil {
		return interpreterVersion{}, zerr.Wrap(err, "failed to query interpreter version")
	}

	lines := strings.Fields(string(result.Stdout))
	if len(lines) != 2 {
		return interpreterVersion{}, zerr.With(zerr.New("unexpected interpreter version output"), "output", string(result.Stdout))
	}

	v, err := semver.NewVersion(lines[0])
	if err != nil {
		return interpreterVersion{}, zerr.With(zerr.Wrap(err, "invalid interpreter version"), "version", lines[0])
	}
	return interpreterVersion{version: v, release: lines[1]}, nil
}

// healthy reports whether the modules needed to bootstrap pip import cleanly.
func (p *Provisioner) healthy(ctx context.Context, python string, v interpreterVersion) bool {
	script := "import ensurepip"
	if hasDistutils.Check(v.version) {
		script += "; import distutils.util"
	}
	_, err := p.runner.Run(ctx, domain.Command{Path: python, Args: []string{"-c", script}})
	return err == nil
}

func (p *Provisioner) ensurePip(ctx context.Context, python string, v interpreterVersion) error {
	if _, err := p.runner.Run(ctx, domain.Command{
		Path: python,
		Args: []string{"-m", "ensurepip", "--default-pip"},
	}); err != nil {
		return zerr.Wrap(err, "failed to bootstrap pip")
	}

	pip := "pip"
	if legacyPip.Check(v.version) {
		pip = "pip<19.2"
	}
	if _, err := p.runner.Run(ctx, domain.Command{
		Path: python,
		Args: []string{"-m", "pip", "install", "--upgrade", pip},
	}); err != nil {
		return zerr.Wrap(err, "failed to upgrade pip")
	}
	return nil
}

// repairModules returns the standard library packages restored by repair.
func repairModules(v interpreterVersion) []string {
	if hasDistutils.Check(v.version) {
		return []string{"ensurepip", "distutils"}
	}
	return []string{"ensurepip"}
}

func mustConstraint(c string) *semver.Constraints {
	constraint, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return constraint
}
