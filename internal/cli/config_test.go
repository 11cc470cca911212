package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/artgrid/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written config.Config
	require.NoError(t, yaml.Unmarshal(data, &written))
	assert.Equal(t, *config.Default(), written)

	_, _, err = execute(t, "config", "init")
	require.ErrorIs(t, err, os.ErrExist)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	setupCLITest(t)
	path := filepath.Join(t.TempDir(), "nested", "custom.yaml")

	_, _, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
}

func TestConfigInit_ReplacesBrokenFile(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pagination: [oops"), 0o600))

	_, stderr, err := execute(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: ignoring configuration")

	_, _, err = execute(t, "config", "show")
	require.NoError(t, err)
}

func TestConfigShow_FlagsOverrideFileAndEnv(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("pagination:\n  page_size: 20\napi:\n  base_url: http://file.test/api\n"), 0o600))
	t.Setenv(config.EnvPageSize, "30")

	out, _, err := execute(t, "config", "show", "--page-size", "40")
	require.NoError(t, err)

	var shown config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &shown))
	assert.Equal(t, 40, shown.Pagination.PageSize)
	assert.Equal(t, "http://file.test/api", shown.API.BaseURL)
}

func TestConfigShow_BrokenFileFails(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("pagination: [oops"), 0o600))

	_, _, err := execute(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")
}
