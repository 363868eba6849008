// Package cmdutil holds the flag and input handling shared by mdt commands.
package cmdutil

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/config"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/document"
)

// Globals are the values of the root command's persistent flags.
type Globals struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool
}

// AddGlobalFlags registers the persistent flags every command reads.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/mdt/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, plain, dump (default: table)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log a warning for every degraded node")
}

// GetGlobals reads the persistent flags.
func GetGlobals(cmd *cobra.Command) Globals {
	var g Globals
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Verbose, _ = cmd.Flags().GetBool("verbose")
	return g
}

// Env is what a command needs to run: its config, a renderer and the
// streams it reads and writes.
type Env struct {
	Globals
	Config   *config.Config
	Renderer *view.Renderer
	In       io.Reader
	Out      io.Writer
	ErrOut   io.Writer
}

// Setup loads and validates the config and builds the renderer. The
// --output flag wins over the configured output format.
func Setup(cmd *cobra.Command) (*Env, error) {
	g := GetGlobals(cmd)

	path := g.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'mdt init' to reconfigure)", err)
	}

	output := g.Output
	if output == "" {
		output = cfg.OutputFormat
	}
	if err := view.ValidateFormat(output); err != nil {
		return nil, err
	}

	renderer := view.NewRenderer(view.Format(output), g.NoColor)
	renderer.SetWriter(cmd.OutOrStdout())

	return &Env{
		Globals:  g,
		Config:   cfg,
		Renderer: renderer,
		In:       cmd.InOrStdin(),
		Out:      cmd.OutOrStdout(),
		ErrOut:   cmd.ErrOrStderr(),
	}, nil
}

// ReadSource reads the Markdown named by args: a file path, or standard
// input when no path or "-" is given.
func (e *Env) ReadSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(e.In)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// Parse reads and parses the source named by args. With --verbose every
// warning is logged to stderr as it happens; otherwise a one-line summary
// follows when there were any.
func (e *Env) Parse(args []string) (*document.Document, error) {
	source, err := e.ReadSource(args)
	if err != nil {
		return nil, err
	}

	var logger *log.Logger
	if e.Verbose {
		logger = log.New(e.ErrOut, "", 0)
	}
	doc, err := document.Parse(source, e.Config.DocumentOptions(logger))
	if err != nil {
		return nil, err
	}

	if !e.Verbose && len(doc.Warnings) > 0 {
		warn := view.NewRenderer(view.FormatTable, e.NoColor)
		warn.SetWriter(e.ErrOut)
		warn.Warning(fmt.Sprintf("%d node(s) degraded (use --verbose for details)", len(doc.Warnings)))
	}
	return doc, nil
}
