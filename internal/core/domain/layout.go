package domain

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// ReadyMarkerName is the file whose presence marks an environment as Ready.
	ReadyMarkerName = "appenv.ready"
	// LockFileName is the name of the lock document, both in the base
	// directory and inside every built environment.
	LockFileName = "requirements.lock"
	// RequirementsFileName is the user-authored constraints file.
	RequirementsFileName = "requirements.txt"
	// ConfigFileName is the optional configuration file in the base directory.
	ConfigFileName = "appenv.yaml"
	// UncleanDirName is the reserved store entry used by unclean mode.
	UncleanDirName = "unclean"
	// UpdateLockDirName is the scratch store entry used while updating the lock.
	UpdateLockDirName = "updatelock"
	// StoreLockFileName is the advisory lock file guarding the store.
	StoreLockFileName = ".lock"
	// BaseDirEnvVar tells the launched application where its base directory is.
	BaseDirEnvVar = "APPENV_BASEDIR"
	// PythonPathEnvVar is removed from the launch environment.
	PythonPathEnvVar = "PYTHONPATH"
	// PathFileName is the .pth file splicing repaired modules onto the module path.
	PathFileName = "appenv.pth"

	// DirPerm is the permission used for store directories.
	DirPerm os.FileMode = 0o750
	// FilePerm is the permission used for files written into the store.
	FilePerm os.FileMode = 0o644
)

// EnvBinDir returns the directory holding the executables of an environment.
func EnvBinDir(envDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(envDir, "Scripts")
	}
	return filepath.Join(envDir, "bin")
}

// EnvExecutable returns the path of a named executable inside an environment.
func EnvExecutable(envDir, name string) string {
	if runtime.GOOS == "windows" && filepath.Ext(name) == "" {
		name += ".exe"
	}
	return filepath.Join(EnvBinDir(envDir), name)
}

// EnvInterpreter returns the interpreter of an environment.
func EnvInterpreter(envDir string) string {
	return EnvExecutable(envDir, "python")
}

// EnvPip returns the pip entry point whose presence marks a usable runtime.
func EnvPip(envDir string) string {
	return EnvExecutable(envDir, "pip3")
}
