// Package runs provides the runs command.
package runs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/render"
	"github.com/open-cli-collective/mdt/pkg/style"
)

type runsOptions struct {
	block int
}

// NewCmdRuns creates the runs command.
func NewCmdRuns() *cobra.Command {
	opts := &runsOptions{}

	cmd := &cobra.Command{
		Use:   "runs [file]",
		Short: "Show the styled runs text is painted with",
		Long: `Render every paragraph, heading, table cell and code block and list
the styled runs covering its text.

Runs of one block are contiguous, non-empty and cover the whole text.`,
		Example: `  # All runs
  mdt runs README.md

  # Runs of the third rendered block as JSON
  mdt runs README.md --block 2 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			return runRuns(env, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.block, "block", -1, "Only show this rendered block (0-based)")

	return cmd
}

func runRuns(env *cmdutil.Env, args []string, opts *runsOptions) error {
	doc, err := env.Parse(args)
	if err != nil {
		return err
	}

	inlines := render.Document(doc, env.Config.RenderTheme())
	indices := make([]int, 0, len(inlines))
	if opts.block >= 0 {
		if opts.block >= len(inlines) {
			return fmt.Errorf("block %d out of range (document has %d rendered blocks)", opts.block, len(inlines))
		}
		indices = append(indices, opts.block)
	} else {
		for i := range inlines {
			indices = append(indices, i)
		}
	}

	if env.Renderer.Format() == view.FormatJSON || env.Renderer.Format() == view.FormatDump {
		selected := make([]render.Inline, 0, len(indices))
		for _, i := range indices {
			selected = append(selected, inlines[i])
		}
		_, err := env.Renderer.Render(selected)
		return err
	}

	headers := []string{"BLOCK", "KIND", "RANGE", "STYLE", "TEXT"}
	var rows [][]string
	for _, i := range indices {
		in := inlines[i]
		for _, run := range in.Runs {
			rows = append(rows, []string{
				strconv.Itoa(i),
				string(in.Kind),
				run.Range.String(),
				DescribeText(run.Style),
				view.Truncate(view.OneLine(run.Slice(in.Text)), 40),
			})
		}
	}
	env.Renderer.RenderTable(headers, rows)
	return nil
}

// DescribeText summarizes a resolved text style.
func DescribeText(t style.Text) string {
	var parts []string
	if t.FontFamily != "" {
		parts = append(parts, t.FontFamily)
	}
	if t.FontSize > 0 {
		parts = append(parts, strconv.FormatFloat(float64(t.FontSize), 'f', -1, 32)+"px")
	}
	parts = append(parts, t.Color.Hex())
	if t.Background != nil {
		parts = append(parts, "bg "+t.Background.Hex())
	}
	for _, flag := range []struct {
		on   bool
		name string
	}{
		{t.Bold, "bold"},
		{t.Italic, "italic"},
		{t.Underline, "underline"},
		{t.Strikethrough, "strike"},
	} {
		if flag.on {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, " ")
}
