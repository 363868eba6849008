package configcmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the current configuration",
		Long: `Test that the current configuration is valid by rendering a sample
document with it: the theme must highlight code and inline code must be
linkified only when enabled.`,
		Example: `  # Test configuration
  mdt config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func runTest(out io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w (run 'mdt init' to configure)", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'mdt init' to configure)", err)
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	fmt.Fprintf(out, "Rendering a sample document with theme %s...\n", cfg.ThemeName())

	if err := cfg.Check(); err != nil {
		_, _ = red.Fprintf(out, "✗ %v\n", err)
		return fmt.Errorf("configuration test failed: %w", err)
	}

	_, _ = green.Fprintln(out, "✓ Configuration OK")
	return nil
}
