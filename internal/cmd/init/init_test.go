package init

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/internal/config"
)

func boolPtr(b bool) *bool { return &b }

func TestFinish(t *testing.T) {
	t.Run("saves and reports", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "mdt", "config.yml")
		cfg := &config.Config{WorkspaceID: "ws-1", Linkify: boolPtr(true), Theme: "github", OutputFormat: "json"}

		var out bytes.Buffer
		require.NoError(t, finish(&out, cfg, configPath, false))
		assert.Contains(t, out.String(), "success!")
		assert.Contains(t, out.String(), "Configuration saved to "+configPath)

		loaded, err := config.Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, *cfg, *loaded)
	})

	t.Run("no verify", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		var out bytes.Buffer
		require.NoError(t, finish(&out, &config.Config{}, configPath, true))
		assert.NotContains(t, out.String(), "Rendering")
	})

	t.Run("invalid config is not saved", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		var out bytes.Buffer
		err := finish(&out, &config.Config{Theme: "nope"}, configPath, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")

		_, statErr := os.Stat(configPath)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestConfigFilePermissions(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "deeply", "config.yml")

	var out bytes.Buffer
	require.NoError(t, finish(&out, &config.Config{WorkspaceID: "ws"}, configPath, true))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "config file should have 0600 permissions")
}

func TestNewForm(t *testing.T) {
	cfg := &config.Config{}
	linkify := true
	assert.NotNil(t, newForm(cfg, &linkify))
}

func TestNewCmdInit_Flags(t *testing.T) {
	cmd := NewCmdInit()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"workspace", "theme"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}

	noVerifyFlag := cmd.Flags().Lookup("no-verify")
	require.NotNil(t, noVerifyFlag)
	assert.Equal(t, "false", noVerifyFlag.DefValue)
}
