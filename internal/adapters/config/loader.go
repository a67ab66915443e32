// Package config provides the configuration loader for appenv.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using an optional YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader reading appenv.yaml.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: domain.ConfigFileName}
}

// Load reads the configuration from the given base directory.
func (l *FileConfigLoader) Load(base string) (*domain.Config, error) {
	path := filepath.Join(base, l.Filename)
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	return cfg, err
}

// Load reads a configuration file from the given path. Fields missing from
// the file keep their defaults.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg := domain.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	if err := validate(cfg); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func validate(cfg *domain.Config) error {
	if strings.ContainsAny(cfg.AppName, `/\`) {
		return zerr.With(zerr.New("appname must not contain path separators"), "appname", cfg.AppName)
	}
	if strings.TrimSpace(cfg.Python) == "" {
		return zerr.New("python must not be empty")
	}
	if cfg.Requirements == "" {
		return zerr.New("requirements must not be empty")
	}
	if cfg.LockFile == "" {
		return zerr.New("lockfile must not be empty")
	}
	if cfg.DistributionURL != "" && !strings.HasPrefix(cfg.DistributionURL, "http://") && !strings.HasPrefix(cfg.DistributionURL, "https://") {
		return zerr.With(zerr.New("distribution_url must be an http(s) url"), "distribution_url", cfg.DistributionURL)
	}
	return nil
}
