// Package parse provides the parse command.
package parse

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdutil"
	"github.com/open-cli-collective/mdt/internal/view"
	"github.com/open-cli-collective/mdt/pkg/document"
)

type parseOptions struct {
	stats bool
}

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse Markdown into the document model",
		Long: `Parse Markdown and print the resulting blocks.

Reads from standard input when no file (or "-") is given. Use -o json for
the full document including marks, spans and the reference table.`,
		Example: `  # Summarize the blocks of a file
  mdt parse README.md

  # Full document as JSON
  mdt parse README.md -o json

  # Plain text rendition
  echo '**hi**' | mdt parse -o plain

  # Counts only
  mdt parse README.md --stats`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			return runParse(env, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print counts instead of blocks")

	return cmd
}

func runParse(env *cmdutil.Env, args []string, opts *parseOptions) error {
	doc, err := env.Parse(args)
	if err != nil {
		return err
	}

	if opts.stats {
		return renderStats(env.Renderer, doc)
	}

	if handled, err := env.Renderer.Render(doc); handled {
		return err
	}
	if env.Renderer.Format() == view.FormatPlain {
		env.Renderer.RenderText(doc.PlainText())
		return nil
	}

	headers := []string{"INDEX", "TYPE", "SPAN", "TEXT"}
	var rows [][]string
	for i, b := range doc.Blocks {
		rows = append(rows, []string{
			strconv.Itoa(i),
			BlockType(b),
			formatSpan(b.Span()),
			view.Truncate(view.OneLine(Summary(b)), 60),
		})
	}
	env.Renderer.RenderTable(headers, rows)
	return nil
}

// Stats are document counts.
type Stats struct {
	Bytes      int `json:"bytes"`
	Blocks     int `json:"blocks"`
	Paragraphs int `json:"paragraphs"`
	CodeBlocks int `json:"code_blocks"`
	Links      int `json:"links"`
	References int `json:"references"`
	Warnings   int `json:"warnings"`
}

// Count collects the stats of doc.
func Count(doc *document.Document) Stats {
	s := Stats{
		Bytes:      len(doc.Source),
		Blocks:     len(doc.Blocks),
		Paragraphs: len(doc.Paragraphs()),
		Links:      len(doc.Links()),
		References: doc.References.Len(),
		Warnings:   len(doc.Warnings),
	}
	doc.Walk(func(b document.Block, _ int) bool {
		if _, ok := b.(*document.CodeBlock); ok {
			s.CodeBlocks++
		}
		return true
	})
	return s
}

func renderStats(r *view.Renderer, doc *document.Document) error {
	s := Count(doc)
	if handled, err := r.Render(s); handled {
		return err
	}
	r.RenderKeyValue("Size", humanize.Bytes(uint64(s.Bytes)))
	r.RenderKeyValue("Blocks", humanize.Comma(int64(s.Blocks)))
	r.RenderKeyValue("Paragraphs", humanize.Comma(int64(s.Paragraphs)))
	r.RenderKeyValue("Code blocks", humanize.Comma(int64(s.CodeBlocks)))
	r.RenderKeyValue("Links", humanize.Comma(int64(s.Links)))
	r.RenderKeyValue("References", humanize.Comma(int64(s.References)))
	r.RenderKeyValue("Warnings", humanize.Comma(int64(s.Warnings)))
	return nil
}

// BlockType names the variant of b.
func BlockType(b document.Block) string {
	switch v := b.(type) {
	case *document.Paragraph:
		return "paragraph"
	case *document.Heading:
		return "h" + strconv.Itoa(v.Level)
	case *document.Blockquote:
		return "blockquote"
	case *document.List:
		if v.Ordered {
			return "ordered list"
		}
		return "list"
	case *document.ListItem:
		return "list item"
	case *document.CodeBlock:
		if v.Lang != "" {
			return "code (" + v.Lang + ")"
		}
		return "code"
	case *document.Table:
		return "table"
	case *document.Definition:
		return "definition"
	case *document.Divider:
		return "divider"
	case *document.Break:
		return "break"
	case *document.Root:
		return "html"
	case *document.Unknown:
		return "unknown (" + v.Kind + ")"
	default:
		return fmt.Sprintf("%T", b)
	}
}

// Summary returns a short text for b.
func Summary(b document.Block) string {
	switch v := b.(type) {
	case *document.Paragraph:
		return v.Text
	case *document.Heading:
		return v.Children.Text
	case *document.CodeBlock:
		return v.Code
	case *document.Definition:
		return "[" + v.Identifier + "]: " + v.URL
	case *document.Table:
		return fmt.Sprintf("%d rows × %d columns", len(v.Rows), len(v.ColumnAligns))
	case *document.List:
		return fmt.Sprintf("%d items", len(v.Children))
	default:
		n := len(document.Children(b))
		if n == 0 {
			return ""
		}
		return fmt.Sprintf("%d blocks", n)
	}
}

func formatSpan(s *document.Span) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
