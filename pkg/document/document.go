// Package document builds a style-annotated rich-text document from
// Markdown.
//
// Parse runs the grammar, then maps each syntax node onto a Block. Inline
// content becomes Paragraphs of InlineNodes carrying marks (bold, italic,
// strikethrough, code, link). Inline code is scanned for URLs and file
// references, which get modifier-activated links. Reference-style links are
// kept unresolved and looked up through Document.ResolveLink, so
// definitions may follow their first use.
package document

import (
	"fmt"
	"log"
	"strings"

	"github.com/open-cli-collective/mdt/pkg/highlight"
	"github.com/open-cli-collective/mdt/pkg/mdast"
)

// CodeTokenLinks controls linkification of tokens inside inline code.
type CodeTokenLinks struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// WorkspaceID lets relative file references become links. Without it
	// only absolute paths are linked.
	WorkspaceID string `yaml:"workspace_id,omitempty" json:"workspace_id,omitempty"`
}

// Options configures Parse.
type Options struct {
	CodeTokenLinks CodeTokenLinks

	// Offset is added to every span, for sources that are part of a larger
	// buffer.
	Offset int

	// HighlightTheme names the chroma style used for code blocks.
	HighlightTheme string
	// Highlighter overrides the code block highlighter; nil uses chroma.
	Highlighter highlight.Highlighter

	Math        bool
	MDX         bool
	FrontMatter bool

	// Logger receives a WARN line for every degraded node. Warnings are
	// recorded on the Document either way.
	Logger *log.Logger
}

// DefaultOptions enables linkification, math and front matter.
func DefaultOptions() Options {
	return Options{
		CodeTokenLinks: CodeTokenLinks{Enabled: true},
		HighlightTheme: highlight.DefaultTheme,
		Math:           true,
		FrontMatter:    true,
	}
}

// Document is the result of a parse.
type Document struct {
	Source     string          `json:"-"`
	Blocks     []Block         `json:"blocks"`
	References *ReferenceTable `json:"references"`
	// FrontMatter holds the decoded YAML front matter, if any.
	FrontMatter map[string]any `json:"front_matter,omitempty"`
	// Warnings lists nodes that were degraded during the build.
	Warnings []string `json:"warnings,omitempty"`
}

// Parse converts Markdown source into a Document. It fails only when the
// grammar cannot produce a tree; unsupported nodes degrade and are
// reported in Document.Warnings.
func Parse(source string, opts Options) (*Document, error) {
	root, err := mdast.Parse(source, mdast.Options{
		Math:        opts.Math,
		MDX:         opts.MDX,
		FrontMatter: opts.FrontMatter,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	return FromAST(source, root, opts), nil
}

// FromAST builds a Document from an already parsed tree. The document has
// exactly one block per child of root.
func FromAST(source string, root *mdast.Root, opts Options) *Document {
	b := newBuilder(opts)
	doc := &Document{
		Source:     source,
		Blocks:     make([]Block, 0, len(root.Children)),
		References: b.refs,
	}
	for _, child := range root.Children {
		doc.Blocks = append(doc.Blocks, b.block(child))
	}
	doc.FrontMatter = b.state.frontMatter
	doc.Warnings = b.state.warnings
	return doc
}

// ResolveLink returns the target of link, resolving reference links
// against the document's definitions. An unknown reference keeps its empty
// URL.
func (d *Document) ResolveLink(link LinkMark) LinkMark {
	return d.References.Resolve(link)
}

// WalkFunc is called for every block in depth-first order. depth is the
// number of enclosing blocks. Returning false skips the block's children.
type WalkFunc func(b Block, depth int) bool

// Walk visits every block of the document.
func (d *Document) Walk(fn WalkFunc) {
	walkBlocks(d.Blocks, 0, fn)
}

func walkBlocks(blocks []Block, depth int, fn WalkFunc) {
	for _, b := range blocks {
		if !fn(b, depth) {
			continue
		}
		walkBlocks(Children(b), depth+1, fn)
	}
}

// Children returns the nested blocks of b.
func Children(b Block) []Block {
	switch v := b.(type) {
	case *Blockquote:
		return v.Children
	case *List:
		return v.Children
	case *ListItem:
		return v.Children
	case *Root:
		return v.Children
	default:
		return nil
	}
}

// Paragraphs returns every paragraph of the document in order, including
// headings and table cells.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	d.Walk(func(b Block, _ int) bool {
		switch v := b.(type) {
		case *Paragraph:
			out = append(out, v)
		case *Heading:
			out = append(out, v.Children)
		case *Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					out = append(out, cell.Children)
				}
			}
		}
		return true
	})
	return out
}

// Links returns every link mark in the document, resolved.
func (d *Document) Links() []Link {
	var out []Link
	for _, p := range d.Paragraphs() {
		offset := 0
		for _, n := range p.Children {
			for _, m := range n.Marks {
				if m.Mark.Link == nil {
					continue
				}
				out = append(out, Link{
					Text:   n.Text[m.Start:m.End],
					Target: d.ResolveLink(*m.Mark.Link),
					Mark:   *m.Mark.Link,
					Offset: offset + m.Start,
				})
			}
			if n.Image != nil && n.Image.Link != nil {
				out = append(out, Link{
					Text:   n.Image.Alt,
					Target: d.ResolveLink(*n.Image.Link),
					Mark:   *n.Image.Link,
					Offset: offset,
				})
			}
			offset += len(n.Text)
		}
	}
	return out
}

// Link is a link found in the document.
type Link struct {
	Text string `json:"text"`
	// Target is the resolved link; Mark is the link as written.
	Target LinkMark `json:"target"`
	Mark   LinkMark `json:"mark"`
	// Offset is the byte offset of Text within its paragraph.
	Offset int `json:"offset"`
}

// PlainText renders the document as plain text, one block per line group.
func (d *Document) PlainText() string {
	var sb strings.Builder
	writePlain(&sb, d.Blocks, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func writePlain(sb *strings.Builder, blocks []Block, depth int) {
	for _, b := range blocks {
		switch v := b.(type) {
		case *Paragraph:
			sb.WriteString(v.Text)
			sb.WriteString("\n\n")
		case *Heading:
			sb.WriteString(v.Children.Text)
			sb.WriteString("\n\n")
		case *Blockquote:
			writePlain(sb, v.Children, depth)
		case *List:
			for ix, item := range v.Children {
				li, ok := item.(*ListItem)
				if !ok {
					continue
				}
				sb.WriteString(strings.Repeat("  ", depth))
				n := ix
				if v.Ordered && v.Start > 0 {
					n = v.Start - 1 + ix
				}
				sb.WriteString(ListItemPrefix(n, v.Ordered, depth))
				var inner strings.Builder
				writePlain(&inner, li.Children, depth+1)
				sb.WriteString(strings.TrimLeft(strings.TrimRight(inner.String(), "\n"), " "))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		case *CodeBlock:
			sb.WriteString(v.Code)
			sb.WriteString("\n\n")
		case *Table:
			for _, row := range v.Rows {
				cells := make([]string, len(row.Cells))
				for i, c := range row.Cells {
					cells[i] = c.Children.Text
				}
				sb.WriteString(strings.Join(cells, "\t"))
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		case *Divider:
			sb.WriteString("---\n\n")
		case *Break:
			sb.WriteString("\n")
		case *Root:
			writePlain(sb, v.Children, depth)
		}
	}
}
