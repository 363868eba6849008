package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mdt/pkg/highlight"
	"github.com/open-cli-collective/mdt/pkg/mdast"
	"github.com/open-cli-collective/mdt/pkg/textrange"
	"github.com/open-cli-collective/mdt/pkg/tokens"
)

// maxHTMLDepth bounds re-parsing of Markdown converted from block HTML.
const maxHTMLDepth = 4

// buildState is shared by a builder and the nested builders it creates
// for embedded HTML.
type buildState struct {
	warnings    []string
	frontMatter map[string]any
}

// builder converts one syntax tree. It owns the reference table of the
// parse.
type builder struct {
	opts        Options
	refs        *ReferenceTable
	highlighter highlight.Highlighter
	state       *buildState

	// depth counts nested HTML re-parses; nested content has no spans.
	depth   int
	noSpans bool
}

func newBuilder(opts Options) *builder {
	h := opts.Highlighter
	if h == nil {
		h = highlight.Chroma{}
	}
	return &builder{
		opts:        opts,
		refs:        NewReferenceTable(),
		highlighter: h,
		state:       &buildState{},
	}
}

// nested returns a builder for Markdown produced from embedded HTML.
func (b *builder) nested() *builder {
	n := *b
	n.depth++
	n.noSpans = true
	return &n
}

// AddWarning records a degraded node and logs it when a logger is set.
func (b *builder) AddWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	b.state.warnings = append(b.state.warnings, msg)
	if b.opts.Logger != nil {
		b.opts.Logger.Printf("WARN: "+format, args...)
	}
}

func (b *builder) span(pos *mdast.Position) *Span {
	if pos == nil || b.noSpans {
		return nil
	}
	return &Span{Start: b.opts.Offset + pos.Start, End: b.opts.Offset + pos.End}
}

// block maps one syntax node onto exactly one Block.
func (b *builder) block(n mdast.Node) Block {
	span := b.span(n.Pos())
	switch v := n.(type) {
	case *mdast.Paragraph:
		p := b.paragraph(v.Children)
		p.SetSpan(span)
		return p
	case *mdast.Heading:
		return &Heading{Level: v.Depth, Children: b.paragraph(v.Children), span: span}
	case *mdast.Blockquote:
		return &Blockquote{Children: b.blocks(v.Children), span: span}
	case *mdast.List:
		return &List{Ordered: v.Ordered, Start: v.Start, Children: b.blocks(v.Children), span: span}
	case *mdast.ListItem:
		return &ListItem{Children: b.blocks(v.Children), Spread: v.Spread, Checked: v.Checked, span: span}
	case *mdast.Break:
		return &Break{span: span}
	case *mdast.Code:
		return b.codeBlock(v.Value, v.Lang, span)
	case *mdast.Math:
		return b.codeBlock(v.Value, "", span)
	case *mdast.MdxFlowExpression:
		return b.codeBlock(v.Value, "mdx", span)
	case *mdast.Yaml:
		b.decodeFrontMatter(v.Value)
		return b.codeBlock(v.Value, "yml", span)
	case *mdast.Toml:
		return b.codeBlock(v.Value, "toml", span)
	case *mdast.Html:
		return b.htmlBlock(v.Value, span)
	case *mdast.ThematicBreak:
		return &Divider{span: span}
	case *mdast.Table:
		return b.table(v, span)
	case *mdast.FootnoteDefinition:
		p := &Paragraph{}
		p.Push(NewInlineNode("["+v.Identifier+"]: ", TextMark{}.WithItalic()))
		for _, child := range v.Children {
			b.appendFlow(p, child)
		}
		p.span = span
		return p
	case *mdast.Definition:
		link := LinkMark{URL: v.URL, Title: v.Title, Identifier: v.Identifier}
		link.RequiresModifiers, link.Decorate = linkBehavior(v.URL)
		b.refs.Add(v.Identifier, link)
		return &Definition{Identifier: v.Identifier, URL: v.URL, Title: v.Title, span: span}
	case *mdast.Unsupported:
		b.AddWarning("unsupported node: %s", v.Kind)
		return &Unknown{Kind: v.Kind, span: span}
	default:
		kind := fmt.Sprintf("%T", n)
		b.AddWarning("unsupported node: %s", kind)
		return &Unknown{Kind: kind, span: span}
	}
}

func (b *builder) blocks(nodes []mdast.Node) []Block {
	out := make([]Block, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.block(n))
	}
	return out
}

// appendFlow adds the inline content of a block nested in a footnote.
func (b *builder) appendFlow(p *Paragraph, n mdast.Node) {
	switch v := n.(type) {
	case *mdast.Paragraph:
		for _, child := range v.Children {
			b.appendInline(p, child)
		}
	default:
		b.AddWarning("unsupported node in footnote: %T", n)
	}
}

func (b *builder) codeBlock(code, lang string, span *Span) *CodeBlock {
	return &CodeBlock{
		Code:       code,
		Lang:       lang,
		Highlights: b.highlighter.Highlight(code, lang, b.opts.HighlightTheme),
		span:       span,
	}
}

func (b *builder) decodeFrontMatter(value string) {
	var fm map[string]any
	if err := yaml.Unmarshal([]byte(value), &fm); err != nil {
		b.AddWarning("invalid front matter: %v", err)
		return
	}
	if b.state.frontMatter == nil {
		b.state.frontMatter = fm
	}
}

func (b *builder) table(t *mdast.Table, span *Span) *Table {
	out := &Table{span: span}
	for _, a := range t.Align {
		out.ColumnAligns = append(out.ColumnAligns, columnAlign(a))
	}
	for _, rowNode := range t.Children {
		row, ok := rowNode.(*mdast.TableRow)
		if !ok {
			continue
		}
		var r TableRow
		for _, cellNode := range row.Children {
			cell, ok := cellNode.(*mdast.TableCell)
			if !ok {
				continue
			}
			p := b.paragraph(cell.Children)
			p.SetSpan(b.span(cell.Pos()))
			r.Cells = append(r.Cells, TableCell{Children: p})
		}
		out.Rows = append(out.Rows, r)
	}
	return out
}

// linkBehavior classifies a URL: ctx://open links are internal, need a
// modifier to activate and are drawn like plain text.
func linkBehavior(url string) (requiresModifiers, decorate bool) {
	internal := tokens.IsOpenURL(url)
	return internal, !internal
}

// codeMarks returns the marks of an inline code span: a full-range code
// mark, then a link mark for every linkable token.
func (b *builder) codeMarks(text string) []MarkRange {
	marks := []MarkRange{{Range: textrange.New(0, len(text)), Mark: TextMark{}.WithCode()}}
	opts := b.opts.CodeTokenLinks
	if !opts.Enabled || text == "" {
		return marks
	}
	for _, r := range tokens.SplitWhitespaceRanges(text) {
		m := tokens.Classify(text[r.Start:r.End], opts.WorkspaceID)
		if !m.Linkable() {
			continue
		}
		marks = append(marks, MarkRange{
			Range: r,
			Mark: TextMark{}.WithLink(LinkMark{
				URL:               m.URL,
				RequiresModifiers: true,
				Decorate:          false,
			}),
		})
	}
	return marks
}
