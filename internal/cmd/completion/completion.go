// Package completion provides shell completion generation commands.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/highlight"
)

type shell struct {
	name    string
	load    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:    "bash",
		load:    "source <(mdt completion bash)",
		install: "mdt completion bash > /etc/bash_completion.d/mdt",
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name:    "zsh",
		load:    "source <(mdt completion zsh)",
		install: `mdt completion zsh > "${fpath[1]}/_mdt"`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name:    "fish",
		load:    "mdt completion fish | source",
		install: "mdt completion fish > ~/.config/fish/completions/mdt.fish",
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:    "powershell",
		load:    "mdt completion powershell | Out-String | Invoke-Expression",
		install: "mdt completion powershell >> $PROFILE",
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mdt.

These scripts enable tab-completion for commands, flags, output formats
and highlight themes. See each sub-command's help for installation
instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newShellCmd(sh))
	}

	return cmd
}

func newShellCmd(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:   sh.name,
		Short: fmt.Sprintf("Generate %s completion script", sh.name),
		Long: fmt.Sprintf(`Generate %s completion script for mdt.

To load completions in your current shell session:

  %s

To load completions for every new session:

  %s`, sh.name, sh.load, sh.install),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// RegisterFlagCompletions completes the values of the --output flag and of
// every --theme flag found under root.
func RegisterFlagCompletions(root *cobra.Command) {
	if root.PersistentFlags().Lookup("output") != nil {
		_ = root.RegisterFlagCompletionFunc("output", fixed(view.ValidFormats()))
	}
	walk(root, func(c *cobra.Command) {
		if c.Flags().Lookup("theme") != nil {
			_ = c.RegisterFlagCompletionFunc("theme", fixed(highlight.Themes()))
		}
	})
}

func fixed(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func walk(c *cobra.Command, fn func(*cobra.Command)) {
	fn(c)
	for _, sub := range c.Commands() {
		walk(sub, fn)
	}
}
