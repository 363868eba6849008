// Package links provides the links command.
package links

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/document"
	"github.com/open-cli-collective/mdt/pkg/tokens"
)

type linksOptions struct {
	unresolved bool
}

// NewCmdLinks creates the links command.
func NewCmdLinks() *cobra.Command {
	opts := &linksOptions{}

	cmd := &cobra.Command{
		Use:   "links [file]",
		Short: "List the links of a document",
		Long: `List every link of a document with its resolved target.

Reference links are resolved against the document's definitions. Links
found inside inline code open only while a modifier key is held.`,
		Example: `  # List links
  mdt links README.md

  # Only reference links without a definition
  mdt links README.md --unresolved`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			return runLinks(env, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.unresolved, "unresolved", false, "Only list links without a target")

	return cmd
}

func runLinks(env *cmdutil.Env, args []string, opts *linksOptions) error {
	doc, err := env.Parse(args)
	if err != nil {
		return err
	}

	links := doc.Links()
	if opts.unresolved {
		var kept []document.Link
		for _, l := range links {
			if l.Target.URL == "" {
				kept = append(kept, l)
			}
		}
		links = kept
	}

	if handled, err := env.Renderer.Render(links); handled {
		return err
	}

	headers := []string{"TEXT", "URL", "TYPE", "MODIFIERS"}
	var rows [][]string
	for _, l := range links {
		url := l.Target.URL
		if url == "" {
			url = "-"
		}
		modifiers := "no"
		if l.Target.RequiresModifiers {
			modifiers = "yes"
		}
		rows = append(rows, []string{
			view.Truncate(view.OneLine(l.Text), 40),
			url,
			Type(l),
			modifiers,
		})
	}
	env.Renderer.RenderTable(headers, rows)
	return nil
}

// Type names the kind of a link: "reference" for links written by
// identifier, "file" for open-file links, "internal" for relative targets
// and anchors, and "external" otherwise.
func Type(l document.Link) string {
	switch {
	case l.Mark.IsReference():
		return "reference"
	case tokens.IsOpenURL(l.Target.URL):
		return "file"
	case strings.Contains(l.Target.URL, "://") || strings.HasPrefix(l.Target.URL, "mailto:"):
		return "external"
	default:
		return "internal"
	}
}
