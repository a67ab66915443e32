package unclean_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/appenv/internal/adapters/telemetry"
	"go.trai.ch/appenv/internal/core/domain"
	"go.trai.ch/appenv/internal/core/ports/mocks"
	"go.trai.ch/appenv/internal/engine/unclean"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var testRuntime = domain.Runtime{Interpreter: "python3"}

func newRunner(t *testing.T) (*unclean.Runner, string, *mocks.MockRuntimeProvisioner, *mocks.MockInstaller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	base := filepath.Join(t.TempDir(), ".myapp")
	provisioner := mocks.NewMockRuntimeProvisioner(ctrl)
	installer := mocks.NewMockInstaller(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return unclean.New(base, testRuntime, provisioner, installer, telemetry.NewNoOp(), log), base, provisioner, installer
}

func createRuntime(_ context.Context, _ domain.Runtime, dir string) error {
	return os.MkdirAll(dir, domain.DirPerm)
}

func TestRunner_Run(t *testing.T) {
	runner, base, provisioner, installer := newRunner(t)
	dir := filepath.Join(base, domain.UncleanDirName)
	reqPath := filepath.Join(dir, domain.RequirementsFileName)
	requirements := []byte("alpha>=1\n")

	gomock.InOrder(
		provisioner.EXPECT().EnsureRuntime(gomock.Any(), testRuntime, dir).DoAndReturn(createRuntime),
		installer.EXPECT().InstallUpgrade(gomock.Any(), dir, reqPath).Return(nil),
	)

	got, err := runner.Run(context.Background(), requirements)

	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Equal(t, dir, runner.Path())
	written, err := os.ReadFile(reqPath)
	require.NoError(t, err)
	assert.Equal(t, requirements, written)
	assert.NoFileExists(t, filepath.Join(dir, domain.ReadyMarkerName))
	assert.NoFileExists(t, filepath.Join(dir, domain.LockFileName))
}

func TestRunner_RunReinstallsEveryTime(t *testing.T) {
	runner, base, provisioner, installer := newRunner(t)
	dir := filepath.Join(base, domain.UncleanDirName)

	provisioner.EXPECT().EnsureRuntime(gomock.Any(), testRuntime, dir).DoAndReturn(createRuntime).Times(2)
	installer.EXPECT().InstallUpgrade(gomock.Any(), dir, gomock.Any()).Return(nil).Times(2)

	for range 2 {
		_, err := runner.Run(context.Background(), []byte("alpha\n"))
		require.NoError(t, err)
	}
}

func TestRunner_RunFailures(t *testing.T) {
	t.Run("runtime", func(t *testing.T) {
		runner, _, provisioner, _ := newRunner(t)
		provisioner.EXPECT().EnsureRuntime(gomock.Any(), gomock.Any(), gomock.Any()).Return(zerr.New("runtime unavailable"))

		_, err := runner.Run(context.Background(), []byte("alpha\n"))

		require.ErrorContains(t, err, "runtime unavailable")
	})

	t.Run("install", func(t *testing.T) {
		runner, _, provisioner, installer := newRunner(t)
		provisioner.EXPECT().EnsureRuntime(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(createRuntime)
		installer.EXPECT().InstallUpgrade(gomock.Any(), gomock.Any(), gomock.Any()).Return(zerr.New("failed to install requirements"))

		_, err := runner.Run(context.Background(), []byte("alpha\n"))

		require.ErrorContains(t, err, "failed to install requirements")
	})
}
