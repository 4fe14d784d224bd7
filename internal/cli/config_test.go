package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lintsel/api/v1beta1/configs"
)

func TestConfigPathCmd(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, testConfigYAML)

	out, err := executeCommand(t, "", "config", "path", "--config", configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath+"\n", out)
}

func TestConfigPathCmd_FindsProjectConfig(t *testing.T) {
	configPath := writeConfigFile(t, testConfigYAML)

	// Resolution walks up from the working directory.
	subDir := filepath.Join(filepath.Dir(configPath), "src", "app")
	require.NoError(t, os.MkdirAll(subDir, 0o700))
	t.Chdir(subDir)

	out, err := executeCommand(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, configPath+"\n", out)
}

func TestConfigShowCmd(t *testing.T) {
	t.Parallel()

	configPath := writeConfigFile(t, testConfigYAML)

	out, err := executeCommand(t, "", "config", "show", "--config", configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "apiVersion: lintsel.jacobcolvin.com/v1beta1")
	assert.Contains(t, out, "kind: Configuration")
	assert.Contains(t, out, "select: [E4, E7, E9, F, B]")
	assert.Contains(t, out, "unfixable: [B]")
}

func TestConfigInitCmd(t *testing.T) {
	t.Parallel()

	targetPath := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeCommand(t, "", "config", "init", "--config", targetPath)
	require.NoError(t, err)

	content, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), content)

	// Without force, an existing file is left alone.
	require.NoError(t, os.WriteFile(targetPath, []byte("modified"), 0o600))

	_, err = executeCommand(t, "", "config", "init", "--config", targetPath)
	require.NoError(t, err)

	content, err = os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "modified", string(content))
}

func TestConfigInitCmd_Force(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	targetPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(targetPath, []byte("old content"), 0o600))

	_, err := executeCommand(t, "", "config", "init", "--config", targetPath, "--force")
	require.NoError(t, err)

	content, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), content)

	// The previous file is backed up next to the target.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backupPath string

	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".old") {
			backupPath = filepath.Join(dir, entry.Name())
		}
	}

	require.NotEmpty(t, backupPath, "expected a backup file")

	backup, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, "old content", string(backup))
}

func TestConfigDiffCmd(t *testing.T) {
	t.Parallel()

	t.Run("default config has no diff", func(t *testing.T) {
		t.Parallel()

		targetPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, configs.WriteDefault(targetPath, false))

		out, err := executeCommand(t, "", "config", "diff", "--config", targetPath)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("modified config shows additions", func(t *testing.T) {
		t.Parallel()

		configPath := writeConfigFile(t, testConfigYAML)

		out, err := executeCommand(t, "", "config", "diff", "--config", configPath)
		require.NoError(t, err)

		assert.Contains(t, out, "--- default")
		assert.Contains(t, out, "+++ "+configPath)
		assert.Contains(t, out, "ignore: [E9]")
	})
}
