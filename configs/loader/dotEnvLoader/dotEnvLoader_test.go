package dotEnvLoader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TMDB_API_KEY=from-file\nCOMMAND_PREFIX=?\n"), 0o600))
	t.Setenv("TMDB_API_KEY", "from-env")

	envs, err := DotEnvLoader{Path: path}.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", envs["TMDB_API_KEY"])
	assert.Equal(t, "?", envs["COMMAND_PREFIX"])
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")

	envs, err := DotEnvLoader{Path: filepath.Join(t.TempDir(), "missing.env")}.Load()
	require.NoError(t, err)
	assert.Equal(t, "token", envs["DISCORD_TOKEN"])
}
