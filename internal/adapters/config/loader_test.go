package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/appenv/internal/adapters/config"
	"go.trai.ch/appenv/internal/core/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.NewLoader().Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        *domain.Config
		errContains string
	}{
		{
			name:    "partial file keeps defaults",
			content: "appname: ducker\npython: python3.12\n",
			want: &domain.Config{
				AppName:         "ducker",
				Python:          "python3.12",
				Requirements:    "requirements.txt",
				LockFile:        "requirements.lock",
				DistributionURL: domain.DefaultDistributionURL,
			},
		},
		{
			name: "all fields",
			content: `appname: batou
appenvdir: .cache/batou
python: /usr/bin/python3
requirements: deps/requirements.txt
lockfile: deps/requirements.lock
distribution_url: https://mirror.example.com/python
`,
			want: &domain.Config{
				AppName:         "batou",
				AppEnvDir:       ".cache/batou",
				Python:          "/usr/bin/python3",
				Requirements:    "deps/requirements.txt",
				LockFile:        "deps/requirements.lock",
				DistributionURL: "https://mirror.example.com/python",
			},
		},
		{
			name:    "empty file",
			content: "",
			want:    domain.DefaultConfig(),
		},
		{
			name:        "unknown field",
			content:     "appname: x\nvenv: y\n",
			errContains: "failed to parse config file",
		},
		{
			name:        "malformed yaml",
			content:     "appname: [unterminated\n",
			errContains: "failed to parse config file",
		},
		{
			name:        "appname with separator",
			content:     "appname: ../evil\n",
			errContains: "appname must not contain path separators",
		},
		{
			name:        "empty python",
			content:     "python: ''\n",
			errContains: "python must not be empty",
		},
		{
			name:        "non http distribution url",
			content:     "distribution_url: ftp://example.com\n",
			errContains: "distribution_url must be an http(s) url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			cfg, err := config.NewLoader().Load(dir)
			if tt.errContains != "" {
				require.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoader_ReadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, domain.ConfigFileName), 0o750))

	_, err := config.NewLoader().Load(dir)

	require.ErrorContains(t, err, "failed to read config file")
}
