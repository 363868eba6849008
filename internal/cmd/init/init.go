// Package init provides the init command for mdt.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/config"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/highlight"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		workspace string
		theme     string
		noVerify  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize mdt configuration",
		Long: `Initialize mdt with your rendering preferences.

This command will guide you through choosing a workspace id for file
references, whether inline code is linkified, the code highlighting theme
and the default output format. The configuration will be saved to
~/.config/mdt/config.yml.`,
		Example: `  # Interactive setup
  mdt init

  # Pre-populate the workspace id and theme
  mdt init --workspace ws-1 --theme monokai`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := cmdutil.GetGlobals(cmd).ConfigPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runInit(cmd.OutOrStdout(), path, workspace, theme, noVerify)
		},
	}

	cmd.Flags().StringVar(&workspace, "workspace", "", "Workspace id for relative file references")
	cmd.Flags().StringVar(&theme, "theme", "", "Code highlighting theme (e.g., github, monokai)")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip rendering a sample document with the new settings")

	return cmd
}

func runInit(out io.Writer, configPath, prefillWorkspace, prefillTheme string, noVerify bool) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{WorkspaceID: prefillWorkspace, Theme: prefillTheme}
	if cfg.Theme == "" {
		cfg.Theme = highlight.DefaultTheme
	}
	linkify := true

	form := newForm(cfg, &linkify)
	if err := form.Run(); err != nil {
		return err
	}
	cfg.Linkify = &linkify

	return finish(out, cfg, configPath, noVerify)
}

func newForm(cfg *config.Config, linkify *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workspace ID (optional)").
				Description("Lets relative file references in inline code become links").
				Placeholder("my-workspace").
				Value(&cfg.WorkspaceID),

			huh.NewConfirm().
				Title("Linkify inline code?").
				Description("Turn URLs and file references inside `code` into links").
				Value(linkify),

			huh.NewSelect[string]().
				Title("Highlight theme").
				Options(huh.NewOptions(highlight.Themes()...)...).
				Height(8).
				Value(&cfg.Theme),

			huh.NewSelect[string]().
				Title("Default output format").
				Options(huh.NewOptions(view.ValidFormats()...)...).
				Value(&cfg.OutputFormat),
		),
	)
}

// finish validates, verifies and saves the collected configuration.
func finish(out io.Writer, cfg *config.Config, configPath string, noVerify bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !noVerify {
		fmt.Fprint(out, "Rendering a sample document... ")
		if err := cfg.Check(); err != nil {
			fmt.Fprintln(out, "failed!")
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Fprintln(out, "success!")
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(out, "\nYou're all set! Try running:")
	fmt.Fprintln(out, "  mdt parse README.md")
	fmt.Fprintln(out, "  mdt links README.md")

	return nil
}
