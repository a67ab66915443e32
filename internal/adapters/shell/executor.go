// Package shell provides the command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// outputTailLines bounds the captured output attached to a failure.
const outputTailLines = 40

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes cmd with a structured argument list.
//
// The environment is cmd.Env when set, os.Environ() otherwise, and never
// contains PYTHONPATH. Output is captured and, when ctx carries a vertex,
// streamed into it as well.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if cmd.Path == "" {
		return domain.CommandResult{}, zerr.New("empty command")
	}

	base := cmd.Env
	if base == nil {
		base = os.Environ()
	}
	cmdEnv := resolveEnvironment(base, nil, domain.PythonPathEnvVar)

	// Resolve the executable path using the new environment's PATH
	executable := cmd.Path
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // arguments are passed as a list
	c.Args[0] = cmd.Path
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	var stdout, stderr, combined bytes.Buffer
	outW := io.MultiWriter(&stdout, &combined)
	errW := io.MultiWriter(&stderr, &combined)
	if v, ok := ports.VertexFromContext(ctx); ok {
		outW = io.MultiWriter(outW, v.Stdout())
		errW = io.MultiWriter(errW, v.Stderr())
	}
	c.Stdout = outW
	c.Stderr = errW

	err := c.Run()
	result := domain.CommandResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err == nil {
		return result, nil
	}

	// Capture exit code if possible
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1 // Unknown or signal
	}
	if result.ExitCode == -1 {
		r.logger.Warn("command terminated: " + commandLine(cmd))
	}

	wrapped := zerr.With(zerr.Wrap(err, "command failed"), "command", commandLine(cmd))
	wrapped = zerr.With(wrapped, "exit_code", result.ExitCode)
	if out := tail(combined.String(), outputTailLines); out != "" {
		wrapped = zerr.With(wrapped, "output", out)
	}
	return result, wrapped
}

// resolveEnvironment merges overrides into the base environment and removes
// the dropped keys. Later entries win. The result is sorted by key.
func resolveEnvironment(base, overrides []string, drop ...string) []string {
	envMap := make(map[string]string, len(base)+len(overrides))
	for _, entry := range slices.Concat(base, overrides) {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for _, k := range drop {
		delete(envMap, k)
	}

	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}

func commandLine(cmd domain.Command) string {
	return strings.Join(append([]string{cmd.Path}, cmd.Args...), " ")
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
