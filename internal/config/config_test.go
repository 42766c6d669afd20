package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// writeConfigFile drops a config file into a temp dir and returns its path.
func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestResolveDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config.toml, no .env

	s, err := Resolve("")
	require.NoError(t, err)

	assert.Equal(t, "go-scaffold", s.AppName)
	assert.Equal(t, "localhost", s.Database.Host)
	assert.Equal(t, 5432, s.Database.Port)
	assert.Equal(t, 10, s.Database.MaxConnections)
	assert.Equal(t, "info", s.Log.Level)
}

func TestResolveFromFile(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
app_name = "from-file"

[database]
host = "db.internal"
max_connections = 5

[log]
level = "debug"
`)

	s, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", s.AppName)
	assert.Equal(t, "db.internal", s.Database.Host)
	assert.Equal(t, 5, s.Database.MaxConnections)
	assert.Equal(t, "debug", s.Log.Level)

	// fields the file omits keep their defaults
	assert.Equal(t, 5432, s.Database.Port)
	assert.Equal(t, "go_scaffold", s.Database.Username)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
[database]
max_connections = 5
`)

	t.Setenv("APP__DATABASE__MAX_CONNECTIONS", "20")

	s, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, 20, s.Database.MaxConnections)
}

func TestMergeIsFieldWise(t *testing.T) {
	// a file setting only the log level must not reset other fields
	path := writeConfigFile(t, "config.toml", `
[log]
level = "trace"
`)

	s, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "trace", s.Log.Level)
	assert.Equal(t, 10, s.Database.MaxConnections)
	assert.Equal(t, "localhost", s.Database.Host)
}

func TestDotEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP__DATABASE__NAME=from_dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP__DATABASE__NAME") })

	s, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", s.Database.Name)
}

func TestRealEnvBeatsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP__DATABASE__USERNAME=from_dotenv\n"), 0o600))
	t.Setenv("APP__DATABASE__USERNAME", "from_env")

	s, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "from_env", s.Database.Username)
}

func TestUnknownKeysIgnored(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
app_name = "ok"
future_flag = true

[database]
shard_count = 4
`)

	s, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", s.AppName)
}

func TestResolveErrors(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expectedErr error
	}{
		{
			name:        "malformed file",
			content:     "app_name = [unclosed",
			expectedErr: ErrParseFailure,
		},
		{
			name:        "zero max connections",
			content:     "[database]\nmax_connections = 0\n",
			expectedErr: ErrInvalidValue,
		},
		{
			name:        "empty database name",
			content:     "[database]\nname = \"\"\n",
			expectedErr: ErrInvalidValue,
		},
		{
			name:        "unknown log level",
			content:     "[log]\nlevel = \"loud\"\n",
			expectedErr: ErrInvalidValue,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfigFile(t, "config.toml", tc.content)

			_, err := Resolve(path)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestResolveIsRepeatable(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
[database]
max_connections = 7
`)

	first, err := Resolve(path)
	require.NoError(t, err)

	second, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
