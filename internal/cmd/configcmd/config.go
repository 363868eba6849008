// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/config"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage mdt configuration",
		Long:  `Commands for viewing, testing, and clearing mdt configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// configPath returns the --config path or the default location.
func configPath(cmd *cobra.Command) string {
	if path := cmdutil.GetGlobals(cmd).ConfigPath; path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
