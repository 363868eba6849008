package mdast

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options selects the optional grammar constructs. GitHub Flavored
// Markdown and footnotes are always on.
type Options struct {
	// Math enables $inline$ and $$ block math.
	Math bool
	// MDX enables {expression} blocks and inline expressions.
	MDX bool
	// FrontMatter enables a leading YAML (---) or TOML (+++) block.
	FrontMatter bool
}

// markdowns holds one goldmark instance per Math/MDX combination.
var markdowns = [4]goldmark.Markdown{
	newMarkdown(false, false),
	newMarkdown(true, false),
	newMarkdown(false, true),
	newMarkdown(true, true),
}

func newMarkdown(math, mdx bool) goldmark.Markdown {
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		definitions{},
	}
	if math {
		exts = append(exts, mathExtension{})
	}
	if mdx {
		exts = append(exts, mdxExtension{})
	}
	return goldmark.New(goldmark.WithExtensions(exts...))
}

func markdownFor(opts Options) goldmark.Markdown {
	ix := 0
	if opts.Math {
		ix |= 1
	}
	if opts.MDX {
		ix |= 2
	}
	return markdowns[ix]
}

// Parse parses source into a syntax tree. Positions are byte offsets into
// source. An error is returned only when the grammar cannot produce a tree.
func Parse(source string, opts Options) (root *Root, err error) {
	defer func() {
		if r := recover(); r != nil {
			root = nil
			err = fmt.Errorf("failed to parse markdown: %v", r)
		}
	}()

	src := []byte(source)
	root = &Root{}
	root.Position = &Position{Start: 0, End: len(src)}

	body, base := src, 0
	if opts.FrontMatter {
		if fm, end := splitFrontMatter(src); fm != nil {
			root.Children = append(root.Children, fm)
			body, base = src[end:], end
		}
	}

	pc := newRefContext(body)
	doc := markdownFor(opts).Parser().Parse(text.NewReader(body), parser.WithContext(pc))
	pc.finish()

	c := &converter{source: body, base: base, refs: pc}
	c.indexFootnotes(doc)

	for _, def := range pc.orphans {
		root.Children = append(root.Children, c.definition(def))
	}
	root.Children = append(root.Children, c.blocks(doc)...)
	return root, nil
}

// converter maps a goldmark tree onto the closed node set.
type converter struct {
	source []byte
	base   int
	refs   *refContext

	// footnotes maps goldmark footnote indexes to their labels.
	footnotes map[int]string
	// trimText drops leading spaces from the next text node; set after a
	// task list checkbox.
	trimText bool
	// cursor is the source offset past the last converted block.
	cursor int
}

func (c *converter) indexFootnotes(doc ast.Node) {
	c.footnotes = make(map[int]string)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*extast.Footnote); ok && entering {
			c.footnotes[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
}

// blocks converts the block children of n.
func (c *converter) blocks(n ast.Node) []Node {
	var nodes []Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*extast.FootnoteList); ok {
			for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
				if f, ok := fn.(*extast.Footnote); ok {
					nodes = append(nodes, c.footnote(f))
				}
			}
			continue
		}
		if node := c.block(child); node != nil {
			c.advance(node)
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (c *converter) block(n ast.Node) Node {
	switch node := n.(type) {
	case *ast.Paragraph:
		p := &Paragraph{}
		p.Children = c.inlines(node)
		p.Position = c.linesPos(node, p.Children)
		return p
	case *ast.TextBlock:
		// goldmark leaves an empty text block behind a paragraph that held
		// only link reference definitions.
		if node.Lines().Len() == 0 && !node.HasChildren() {
			return nil
		}
		p := &Paragraph{}
		p.Children = c.inlines(node)
		p.Position = c.linesPos(node, p.Children)
		return p
	case *ast.Heading:
		h := &Heading{Depth: node.Level}
		h.Children = c.inlines(node)
		h.Position = c.headingPos(c.linesPos(node, h.Children))
		return h
	case *ast.Blockquote:
		q := &Blockquote{}
		q.Children = c.blocks(node)
		q.Position = c.quotePos(span(q.Children))
		return q
	case *ast.List:
		return c.list(node)
	case *ast.ListItem:
		return c.listItem(node, false)
	case *ast.FencedCodeBlock:
		code := &Code{Value: trimEOL(c.linesValue(node))}
		if node.Info != nil {
			info := strings.TrimSpace(string(node.Info.Segment.Value(c.source)))
			lang, meta, _ := strings.Cut(info, " ")
			code.Lang = lang
			code.Meta = strings.TrimSpace(meta)
		}
		code.Position = c.linesPos(node, nil)
		return code
	case *ast.CodeBlock:
		code := &Code{Value: trimEOL(c.linesValue(node))}
		code.Position = c.linesPos(node, nil)
		return code
	case *ast.HTMLBlock:
		value := c.linesValue(node)
		if node.HasClosure() {
			value += string(node.ClosureLine.Value(c.source))
		}
		h := &Html{Value: strings.TrimRight(value, "\n")}
		h.Position = c.linesPos(node, nil)
		return h
	case *ast.ThematicBreak:
		tb := &ThematicBreak{}
		tb.Position = c.thematicBreakPos()
		return tb
	case *extast.Table:
		return c.table(node)
	case *mathBlock:
		m := &Math{Value: strings.TrimRight(c.linesValue(node), "\n")}
		m.Position = c.linesPos(node, nil)
		return m
	case *mdxFlow:
		value := strings.TrimSpace(c.linesValue(node))
		value = strings.TrimSuffix(strings.TrimPrefix(value, "{"), "}")
		m := &MdxFlowExpression{Value: value}
		m.Position = c.linesPos(node, nil)
		return m
	case *definitionNode:
		return c.definition(node)
	default:
		u := &Unsupported{Kind: n.Kind().String()}
		if n.Type() == ast.TypeBlock {
			u.Children = c.blocks(n)
		} else {
			u.Children = c.inlines(n)
		}
		u.Position = span(u.Children)
		return u
	}
}

func (c *converter) definition(def *definitionNode) Node {
	d := &Definition{
		Identifier: util.ToLinkReference([]byte(def.label)),
		Label:      def.label,
		URL:        def.destination,
		Title:      def.title,
	}
	if def.start >= 0 {
		d.Position = &Position{Start: c.base + def.start, End: c.base + def.stop}
	}
	return d
}

func (c *converter) list(node *ast.List) Node {
	l := &List{Ordered: node.IsOrdered(), Spread: !node.IsTight}
	if l.Ordered {
		l.Start = node.Start
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if item, ok := child.(*ast.ListItem); ok {
			l.Children = append(l.Children, c.listItem(item, l.Spread))
		}
	}
	l.Position = span(l.Children)
	return l
}

func (c *converter) listItem(node *ast.ListItem, spread bool) Node {
	item := &ListItem{Spread: spread}
	if first := node.FirstChild(); first != nil {
		if box, ok := first.FirstChild().(*extast.TaskCheckBox); ok {
			checked := box.IsChecked
			item.Checked = &checked
		}
	}
	item.Children = c.blocks(node)
	item.Position = c.itemPos(span(item.Children))
	return item
}

func (c *converter) table(node *extast.Table) Node {
	t := &Table{}
	for _, a := range node.Alignments {
		switch a {
		case extast.AlignLeft:
			t.Align = append(t.Align, AlignLeft)
		case extast.AlignCenter:
			t.Align = append(t.Align, AlignCenter)
		case extast.AlignRight:
			t.Align = append(t.Align, AlignRight)
		default:
			t.Align = append(t.Align, AlignNone)
		}
	}
	for row := node.FirstChild(); row != nil; row = row.NextSibling() {
		r := &TableRow{}
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tc := &TableCell{}
			tc.Children = c.inlines(cell)
			tc.Position = span(tc.Children)
			r.Children = append(r.Children, tc)
		}
		r.Position = c.rowPos(span(r.Children))
		t.Children = append(t.Children, r)
	}
	t.Position = span(t.Children)
	return t
}

func (c *converter) footnote(node *extast.Footnote) Node {
	label := string(node.Ref)
	f := &FootnoteDefinition{
		Identifier: util.ToLinkReference(node.Ref),
		Label:      label,
	}
	f.Children = c.blocks(node)
	f.Position = span(f.Children)
	return f
}

// inlines converts the inline children of n.
func (c *converter) inlines(n ast.Node) []Node {
	var nodes []Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		nodes = append(nodes, c.inline(child)...)
	}
	return nodes
}

func (c *converter) inline(n ast.Node) []Node {
	switch node := n.(type) {
	case *ast.Text:
		value := string(node.Segment.Value(c.source))
		start := node.Segment.Start
		if c.trimText {
			trimmed := strings.TrimLeft(value, " \t")
			start += len(value) - len(trimmed)
			value = trimmed
			c.trimText = false
		}
		t := &Text{Value: value}
		t.Position = &Position{Start: c.base + start, End: c.base + node.Segment.Stop}
		if node.SoftLineBreak() {
			t.Value += "\n"
		}
		if node.HardLineBreak() {
			return []Node{t, &Break{}}
		}
		return []Node{t}
	case *ast.String:
		return []Node{&Text{Value: string(node.Value)}}
	case *ast.CodeSpan:
		code := &InlineCode{Value: c.rawText(node)}
		code.Position = c.segmentsPos(node)
		return []Node{code}
	case *ast.Emphasis:
		children := c.inlines(node)
		var out Node
		if node.Level >= 2 {
			s := &Strong{}
			s.Children = children
			out = s
		} else {
			e := &Emphasis{}
			e.Children = children
			out = e
		}
		out.setPosition(span(children))
		return []Node{out}
	case *extast.Strikethrough:
		d := &Delete{}
		d.Children = c.inlines(node)
		d.Position = span(d.Children)
		return []Node{d}
	case *ast.Link:
		children := c.inlines(node)
		if label, ok := referenceLabel(node.Destination); ok {
			ref := &LinkReference{
				Identifier: util.ToLinkReference([]byte(label)),
				Label:      label,
			}
			ref.Children = children
			ref.Position = span(children)
			return []Node{ref}
		}
		l := &Link{URL: string(node.Destination), Title: string(node.Title)}
		l.Children = children
		l.Position = span(children)
		return []Node{l}
	case *ast.AutoLink:
		l := &Link{URL: string(node.URL(c.source))}
		l.Children = []Node{&Text{Value: string(node.Label(c.source))}}
		return []Node{l}
	case *ast.Image:
		img := &Image{
			URL:   string(node.Destination),
			Title: string(node.Title),
			Alt:   c.plainText(node),
		}
		if label, ok := referenceLabel(node.Destination); ok {
			img.URL = ""
			if ref, found := c.refs.resolve(label); found {
				img.URL = string(ref.Destination())
				img.Title = string(ref.Title())
			}
		}
		img.Position = span(c.inlines(node))
		return []Node{img}
	case *ast.RawHTML:
		h := &Html{}
		var sb strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			sb.Write(seg.Value(c.source))
		}
		h.Value = sb.String()
		h.Position = c.segmentsPos(node)
		return []Node{h}
	case *extast.TaskCheckBox:
		c.trimText = true
		return nil
	case *extast.FootnoteLink:
		label := c.footnotes[node.Index]
		return []Node{&FootnoteReference{
			Identifier: util.ToLinkReference([]byte(label)),
			Label:      label,
		}}
	case *extast.FootnoteBacklink:
		return nil
	case *inlineMath:
		m := &InlineMath{Value: string(node.value.Value(c.source))}
		m.Position = &Position{Start: c.base + node.value.Start - 1, End: c.base + node.value.Stop + 1}
		return []Node{m}
	case *mdxText:
		m := &MdxTextExpression{Value: string(node.value.Value(c.source))}
		m.Position = &Position{Start: c.base + node.value.Start - 1, End: c.base + node.value.Stop + 1}
		return []Node{m}
	default:
		u := &Unsupported{Kind: n.Kind().String()}
		u.Children = c.inlines(n)
		u.Position = span(u.Children)
		return []Node{u}
	}
}

// rawText concatenates the text below n, joining lines with spaces.
func (c *converter) rawText(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(c.source))
		case *ast.String:
			sb.Write(t.Value)
		}
	}
	return strings.ReplaceAll(sb.String(), "\n", " ")
}

// plainText flattens the text below n, as used for image alt text.
func (c *converter) plainText(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(c.source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func (c *converter) linesValue(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(c.source))
	}
	return sb.String()
}

// trimEOL drops one trailing line ending.
func trimEOL(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	return strings.TrimSuffix(s, "\n")
}

// linesPos returns the extent of a block's own lines, falling back to its
// converted children.
func (c *converter) linesPos(n ast.Node, children []Node) *Position {
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return span(children)
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	return &Position{
		Start: c.base + first.Start,
		End:   c.base + trimNewline(c.source, last.Stop),
	}
}

// segmentsPos returns the extent of the text children of an inline node.
func (c *converter) segmentsPos(n ast.Node) *Position {
	var pos *Position
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			pos = union(pos, &Position{Start: c.base + t.Segment.Start, End: c.base + t.Segment.Stop})
		}
	}
	return pos
}

// span is the union of the positions of nodes.
func span(nodes []Node) *Position {
	var pos *Position
	for _, n := range nodes {
		pos = union(pos, n.Pos())
	}
	return pos
}

func union(a, b *Position) *Position {
	if a == nil {
		if b == nil {
			return nil
		}
		cp := *b
		return &cp
	}
	if b == nil {
		return a
	}
	out := *a
	if b.Start < out.Start {
		out.Start = b.Start
	}
	if b.End > out.End {
		out.End = b.End
	}
	return &out
}
