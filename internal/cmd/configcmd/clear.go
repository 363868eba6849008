package configcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/config"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long: `Delete the mdt config file, and its directory when that is left empty.

MDT_* environment variables are not touched and keep overriding defaults.`,
		Example: `  mdt config clear
  mdt config clear --config ./mdt.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runClear(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}
}

// cleared describes what clearConfig removed.
type cleared struct {
	path    string
	removed bool
	dirGone bool
	// env holds NAME=value for every MDT_* variable still set.
	env []string
}

// clearConfig removes the file at path. The default mdt directory is
// removed too once it holds nothing else.
func clearConfig(path string) (cleared, error) {
	res := cleared{path: path}

	switch err := os.Remove(path); {
	case err == nil:
		res.removed = true
	case !os.IsNotExist(err):
		return res, fmt.Errorf("failed to remove config file: %w", err)
	}

	if dir := filepath.Dir(path); res.removed && dir == filepath.Dir(config.DefaultConfigPath()) {
		res.dirGone = os.Remove(dir) == nil
	}

	for _, name := range config.EnvVars {
		if v := os.Getenv(name); v != "" {
			res.env = append(res.env, name+"="+v)
		}
	}
	return res, nil
}

func runClear(out io.Writer, path string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	res, err := clearConfig(path)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	dim := color.New(color.Faint)

	if !res.removed {
		_, _ = ok.Fprintf(out, "✓ Nothing to clear at %s\n", res.path)
	} else {
		_, _ = ok.Fprintf(out, "✓ Removed %s\n", res.path)
		if res.dirGone {
			_, _ = dim.Fprintf(out, "  (and the empty %s directory)\n", filepath.Dir(res.path))
		}
	}

	if len(res.env) == 0 {
		return nil
	}
	_, _ = dim.Fprintln(out, "\nStill set in the environment:")
	for _, kv := range res.env {
		_, _ = dim.Fprintf(out, "  %s\n", kv)
	}
	return nil
}
