package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/appenv/cmd/appenv/commands"
	"go.trai.ch/appenv/internal/adapters/telemetry"
	"go.trai.ch/appenv/internal/app"
	"go.trai.ch/appenv/internal/build"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	base        string
	loader      *mocks.MockConfigLoader
	provisioner *mocks.MockRuntimeProvisioner
	installer   *mocks.MockInstaller
	launcher    *mocks.MockLauncher
	out         bytes.Buffer
	cli         *commands.CLI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		base:        t.TempDir(),
		loader:      mocks.NewMockConfigLoader(ctrl),
		provisioner: mocks.NewMockRuntimeProvisioner(ctrl),
		installer:   mocks.NewMockInstaller(ctrl),
		launcher:    mocks.NewMockLauncher(ctrl),
	}
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	f.loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.Config, error) {
		return domain.DefaultConfig(), nil
	}).AnyTimes()

	a := app.New(f.loader, f.provisioner, f.installer, f.launcher, telemetry.NewNoOp(), log).
		WithEnviron([]string{"PATH=/usr/bin", "PYTHONPATH=/tmp/leak"})
	f.cli = commands.New(a)
	f.cli.SetOut(&f.out)
	return f
}

func (f *fixture) execute(args ...string) error {
	f.cli.SetArgs(args)
	return f.cli.Execute(context.Background())
}

func (f *fixture) expectUncleanEnv(t *testing.T) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(f.base, domain.RequirementsFileName), []byte("alpha\n"), domain.FilePerm))
	f.provisioner.EXPECT().EnsureRuntime(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.Runtime, dir string) error {
			return os.MkdirAll(dir, domain.DirPerm)
		})
	f.installer.EXPECT().InstallUpgrade(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	return filepath.Join(f.base, ".myapp", domain.UncleanDirName)
}

func TestCLI_Version(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.execute("version"))
	assert.Contains(t, f.out.String(), "appenv version "+build.Version)
}

func TestCLI_RootRunsApplication(t *testing.T) {
	f := newFixture(t)
	env := f.expectUncleanEnv(t)

	var got domain.LaunchSpec
	f.launcher.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.LaunchSpec) error {
			got = spec
			return nil
		})

	err := f.execute("--base", f.base, "--appname", "myapp", "-u", "--", "--verbose", "serve")

	require.NoError(t, err)
	assert.Equal(t, domain.EnvExecutable(env, "myapp"), got.Path)
	assert.Equal(t, []string{"--verbose", "serve"}, got.Args)
	assert.Equal(t, f.base, got.Dir)
	assert.Contains(t, got.Env, domain.BaseDirEnvVar+"="+f.base)
	assert.NotContains(t, got.Env, "PYTHONPATH=/tmp/leak")
}

func TestCLI_RunPassesFlagsThrough(t *testing.T) {
	f := newFixture(t)
	env := f.expectUncleanEnv(t)

	var got domain.LaunchSpec
	f.launcher.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.LaunchSpec) error {
			got = spec
			return nil
		})

	err := f.execute("run", "--base", f.base, "--appname", "myapp", "--unclean", "pytest", "-x", "--base", "tests")

	require.NoError(t, err)
	assert.Equal(t, domain.EnvExecutable(env, "pytest"), got.Path)
	assert.Equal(t, []string{"-x", "--base", "tests"}, got.Args)
}

func TestCLI_Python(t *testing.T) {
	f := newFixture(t)
	env := f.expectUncleanEnv(t)

	f.launcher.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec domain.LaunchSpec) error {
			assert.Equal(t, domain.EnvInterpreter(env), spec.Path)
			assert.Equal(t, []string{"-c", "print(1)"}, spec.Args)
			return nil
		})

	require.NoError(t, f.execute("python", "--base", f.base, "--appname", "myapp", "-u", "--", "-c", "print(1)"))
}

func TestCLI_RunRequiresCommand(t *testing.T) {
	f := newFixture(t)

	require.Error(t, f.execute("run"))
}

func TestCLI_StatusAndReset(t *testing.T) {
	f := newFixture(t)
	store := filepath.Join(f.base, ".myapp")
	require.NoError(t, os.MkdirAll(filepath.Join(store, "0a1b2c3d"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(store, "0a1b2c3d", domain.ReadyMarkerName), nil, domain.FilePerm))

	require.NoError(t, f.execute("status", "--base", f.base, "--appname", "myapp"))
	assert.Contains(t, f.out.String(), "ENVIRONMENT")
	assert.Contains(t, f.out.String(), "0a1b2c3d")
	assert.Contains(t, f.out.String(), "ready")

	require.NoError(t, f.execute("reset", "--base", f.base, "--appname", "myapp"))
	assert.NoDirExists(t, store)
}

func TestCLI_StatusTable(t *testing.T) {
	f := newFixture(t)
	store := filepath.Join(f.base, ".myapp")
	require.NoError(t, os.MkdirAll(filepath.Join(store, "0a1b2c3d"), domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(store, "0a1b2c3d", domain.ReadyMarkerName), nil, domain.FilePerm))
	require.NoError(t, os.MkdirAll(filepath.Join(store, "11111111"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(domain.EnvBinDir(filepath.Join(store, domain.UncleanDirName)), domain.DirPerm))
	require.NoError(t, os.WriteFile(domain.EnvPip(filepath.Join(store, domain.UncleanDirName)), nil, domain.FilePerm))

	require.NoError(t, f.execute("status", "--base", f.base, "--appname", "myapp"))

	g := goldie.New(t)
	g.Assert(t, "status", f.out.Bytes())
}

func TestCLI_PrunePrintsRemovedEntries(t *testing.T) {
	f := newFixture(t)
	store := filepath.Join(f.base, ".myapp")
	require.NoError(t, os.MkdirAll(filepath.Join(store, "0a1b2c3d"), domain.DirPerm))
	require.NoError(t, os.MkdirAll(filepath.Join(store, domain.UncleanDirName), domain.DirPerm))

	require.NoError(t, f.execute("prune", "--base", f.base, "--appname", "myapp"))
	assert.Equal(t, "0a1b2c3d\n", f.out.String())
	assert.DirExists(t, filepath.Join(store, domain.UncleanDirName))
}
