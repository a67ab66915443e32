package domain

const (
	// DefaultPython is the interpreter used to create environments.
	DefaultPython = "python3"
	// DefaultDistributionURL is where source distributions for runtime repair are fetched from.
	DefaultDistributionURL = "https://www.python.org/ftp/python"
)

// Config holds the settings of one application managed by appenv.
type Config struct {
	// AppName is the application entry point inside the environment.
	// Defaults to the name of the base directory.
	AppName string `yaml:"appname"`
	// AppEnvDir is the store directory. Relative paths resolve against the base directory.
	// Defaults to ".<appname>".
	AppEnvDir string `yaml:"appenvdir"`
	// Python is the interpreter used to create environments.
	Python string `yaml:"python"`
	// Requirements is the requirements file, relative to the base directory.
	Requirements string `yaml:"requirements"`
	// LockFile is the lock file, relative to the base directory.
	LockFile string `yaml:"lockfile"`
	// DistributionURL is the mirror used to repair degraded runtimes.
	DistributionURL string `yaml:"distribution_url"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Python:          DefaultPython,
		Requirements:    RequirementsFileName,
		LockFile:        LockFileName,
		DistributionURL: DefaultDistributionURL,
	}
}

// Runtime describes the interpreter environments are created from.
type Runtime struct {
	// Interpreter is the executable name or path of the base interpreter.
	Interpreter string
	// DistributionURL is the mirror used to repair degraded runtimes.
	DistributionURL string
}

// Runtime returns the runtime settings of the configuration.
func (c *Config) Runtime() Runtime {
	return Runtime{Interpreter: c.Python, DistributionURL: c.DistributionURL}
}
