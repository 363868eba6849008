package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current mdt configuration with value source indicators.`,
		Example: `  # Show current config
  mdt config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func formatFloat(v float32) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// envMatches reports whether an environment value produced value. Boolean
// spellings like "1" match their canonical form.
func envMatches(env, value string) bool {
	if env == value {
		return true
	}
	b, err := strconv.ParseBool(env)
	return err == nil && strconv.FormatBool(b) == value
}

func runShow(out io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, fallback string, envVars ...string) {
		_, _ = bold.Fprintf(out, "%-14s", label+":")
		if value == "" {
			if fallback != "" {
				fmt.Fprint(out, fallback)
				_, _ = dim.Fprintln(out, "  (source: default)")
				return
			}
			_, _ = dim.Fprintln(out, "-")
			return
		}

		fmt.Fprint(out, value)

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "-"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && envMatches(v, value) {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "-"
		}

		_, _ = dim.Fprintf(out, "  (source: %s)\n", source)
	}

	opts := cfg.LayoutOptions()
	printField("Workspace", cfg.WorkspaceID, fileCfg.WorkspaceID, "", "MDT_WORKSPACE_ID")
	printField("Linkify", formatBool(cfg.Linkify), formatBool(fileCfg.Linkify), "true", "MDT_LINKIFY")
	printField("Theme", cfg.Theme, fileCfg.Theme, cfg.ThemeName(), "MDT_THEME")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "table")
	printField("Line height", formatFloat(cfg.LineHeight), formatFloat(fileCfg.LineHeight), formatFloat(opts.LineHeight))
	printField("Char width", formatFloat(cfg.CharWidth), formatFloat(fileCfg.CharWidth), formatFloat(opts.CellWidth))
	printField("Wrap width", formatInt(cfg.WrapWidth), formatInt(fileCfg.WrapWidth), "")
	printField("Code font", cfg.InlineCodeFont, fileCfg.InlineCodeFont, cfg.RenderTheme().InlineCode.FontFamily)

	fmt.Fprintln(out)
	_, _ = dim.Fprintf(out, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(out, "(file not found)")
	}

	return nil
}
