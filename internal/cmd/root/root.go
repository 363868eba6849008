// Package root provides the root command for the mdt CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/cmd/completion"
	"github.com/open-cli-collective/mdt/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/mdt/internal/cmd/init"
	"github.com/open-cli-collective/mdt/internal/cmd/links"
	"github.com/open-cli-collective/mdt/internal/cmd/parse"
	"github.com/open-cli-collective/mdt/internal/cmd/runs"
	"github.com/open-cli-collective/mdt/internal/cmd/selectcmd"
	"github.com/open-cli-collective/mdt/internal/cmd/token"
	"github.com/open-cli-collective/mdt/internal/version"
)

// NewCmdRoot creates the root command for mdt.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdt",
		Short: "A command-line toolkit for Markdown rich text",
		Long: `mdt parses Markdown into a style-annotated document model and shows
how it is painted: styled runs, links, and drag selections over laid out
text.

Inline code is scanned for URLs and file references, which become links
that open while a modifier key is held.

Get started by running: mdt init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmdutil.AddGlobalFlags(cmd)

	// Set version template
	cmd.SetVersionTemplate("mdt version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(parse.NewCmdParse())
	cmd.AddCommand(runs.NewCmdRuns())
	cmd.AddCommand(links.NewCmdLinks())
	cmd.AddCommand(token.NewCmdToken())
	cmd.AddCommand(selectcmd.NewCmdSelect())
	cmd.AddCommand(completion.NewCmdCompletion())

	completion.RegisterFlagCompletions(cmd)

	return cmd
}
