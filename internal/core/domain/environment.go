package domain

// EnvState is the lifecycle state of a store entry.
type EnvState int

const (
	// EnvMissing means no directory exists for the identity.
	EnvMissing EnvState = iota
	// EnvBuilding means the directory exists without a marker while another process holds the store lock.
	EnvBuilding
	// EnvReady means the ready marker is present.
	EnvReady
	// EnvCorrupt means the directory exists without a marker and nobody is building it.
	EnvCorrupt
)

// String returns the lowercase name of the state.
func (s EnvState) String() string {
	switch s {
	case EnvMissing:
		return "missing"
	case EnvBuilding:
		return "building"
	case EnvReady:
		return "ready"
	case EnvCorrupt:
		return "corrupt"
	default:
		return "unknown"
	}
}

// EnvironmentEntry describes one child of the environment store.
type EnvironmentEntry struct {
	// Identity is the directory name of the entry.
	Identity Identity
	// Path is the absolute directory of the entry.
	Path string
	// State is the observed lifecycle state.
	State EnvState
	// LockFingerprint is a short digest of the lock copy persisted in the
	// entry, empty when the entry holds none.
	LockFingerprint string
}

// Reserved reports whether the entry is one of the fixed-name store entries.
func (e EnvironmentEntry) Reserved() bool {
	return IsReservedEntry(e.Identity.String())
}

// IsReservedEntry reports whether name is kept by the janitor regardless of the current identity.
func IsReservedEntry(name string) bool {
	return name == UncleanDirName || name == StoreLockFileName
}

// LaunchSpec describes the program started inside a prepared environment.
type LaunchSpec struct {
	// Path is the absolute path of the executable.
	Path string
	// Args are the arguments passed after the program name.
	Args []string
	// Env is the complete environment of the launched process.
	Env []string
	// Dir is the working directory, empty for the current one.
	Dir string
}
