package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/config"
)

func TestRunTest(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		wantErr    bool
		errContain string
		outContain string
	}{
		{
			name:       "no config file uses defaults",
			outContain: "Configuration OK",
		},
		{
			name:       "valid config",
			cfg:        &config.Config{Theme: "monokai", WorkspaceID: "ws"},
			outContain: "theme monokai",
		},
		{
			name:       "invalid theme",
			cfg:        &config.Config{Theme: "no-such-theme"},
			wantErr:    true,
			errContain: "mdt init",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			configPath := filepath.Join(t.TempDir(), "config.yml")
			if tt.cfg != nil {
				require.NoError(t, tt.cfg.Save(configPath))
			}

			var out bytes.Buffer
			err := runTest(&out, configPath, true)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out.String(), tt.outContain)
		})
	}
}

func TestNewCmdConfig_UsesConfigFlag(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, (&config.Config{WorkspaceID: "flagged"}).Save(configPath))

	root := &cobra.Command{Use: "mdt", SilenceUsage: true, SilenceErrors: true}
	cmdutil.AddGlobalFlags(root)
	root.AddCommand(NewCmdConfig())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "show", "--no-color", "--config", configPath})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "flagged")
	assert.Contains(t, out.String(), configPath)
}

func TestNewCmdConfig_Subcommands(t *testing.T) {
	cmd := NewCmdConfig()
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"show", "test", "clear"}, names)
}
