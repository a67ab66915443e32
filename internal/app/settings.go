package app

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options are the per-invocation settings given on the command line.
// Non-empty values override the configuration file.
type Options struct {
	// Base is the application directory. Defaults to the working directory.
	Base string
	// AppName is the entry point launched by RunApp.
	AppName string
	// AppEnvDir is the environment store, relative to Base unless absolute.
	AppEnvDir string
	// Python is the interpreter environments are created from.
	Python string
	// Unclean selects the uncached environment even when a lock file exists.
	Unclean bool
}

// settings are Options merged with the configuration, with every path absolute.
type settings struct {
	base         string
	appName      string
	appEnvDir    string
	requirements string
	lockFile     string
	runtime      domain.Runtime
	unclean      bool
}

func (a *App) resolve(opts Options) (*settings, error) {
	base := opts.Base
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve base directory"), "path", opts.Base)
	}

	cfg, err := a.configLoader.Load(base)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.AppName != "" {
		cfg.AppName = opts.AppName
	}
	if opts.AppEnvDir != "" {
		cfg.AppEnvDir = opts.AppEnvDir
	}
	if opts.Python != "" {
		cfg.Python = opts.Python
	}

	if cfg.AppName == "" {
		cfg.AppName = filepath.Base(base)
	}
	if strings.ContainsAny(cfg.AppName, `/\`) {
		return nil, zerr.With(zerr.New("application name must not contain path separators"), "appname", cfg.AppName)
	}
	if cfg.AppEnvDir == "" {
		cfg.AppEnvDir = "." + cfg.AppName
	}
	appEnvDir := inBase(base, cfg.AppEnvDir)
	if containsDir(appEnvDir, base) {
		return nil, zerr.With(domain.ErrStoreContainsBase, "appenvdir", appEnvDir)
	}

	return &settings{
		base:         base,
		appName:      cfg.AppName,
		appEnvDir:    appEnvDir,
		requirements: inBase(base, cfg.Requirements),
		lockFile:     inBase(base, cfg.LockFile),
		runtime:      cfg.Runtime(),
		unclean:      opts.Unclean,
	}, nil
}

func inBase(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// containsDir reports whether path is dir or lies below it.
func containsDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || filepath.IsLocal(rel)
}

// launchEnvironment returns environ without PYTHONPATH and with the base
// directory exported to the launched program.
func launchEnvironment(environ []string, base string) []string {
	env := make([]string, 0, len(environ)+1)
	for _, kv := range environ {
		key, _, _ := strings.Cut(kv, "=")
		if key == domain.PythonPathEnvVar || key == domain.BaseDirEnvVar {
			continue
		}
		env = append(env, kv)
	}
	return append(env, domain.BaseDirEnvVar+"="+base)
}
