package document

import (
	"github.com/open-cli-collective/mdt/pkg/mdast"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// paragraph renders inline syntax nodes into a new Paragraph.
func (b *builder) paragraph(nodes []mdast.Node) *Paragraph {
	p := &Paragraph{}
	for _, n := range nodes {
		b.appendInline(p, n)
	}
	return p
}

// appendInline renders n and appends the result to p.
func (b *builder) appendInline(p *Paragraph, n mdast.Node) {
	p.SetSpan(b.span(n.Pos()))
	for _, node := range b.inline(n) {
		if node.isPlain() {
			p.PushText(node.Text)
			continue
		}
		p.Push(node)
	}
}

// inline renders one inline syntax node. Mark ranges in the result are
// relative to each returned node's own text.
func (b *builder) inline(n mdast.Node) []InlineNode {
	switch v := n.(type) {
	case *mdast.Text:
		return []InlineNode{{Text: v.Value}}
	case *mdast.Break:
		return []InlineNode{{Text: "\n"}}
	case *mdast.Emphasis:
		return b.flatten(v.Children, TextMark{}.WithItalic())
	case *mdast.Strong:
		return b.flatten(v.Children, TextMark{}.WithBold())
	case *mdast.Delete:
		return b.flatten(v.Children, TextMark{}.WithStrikethrough())
	case *mdast.InlineCode:
		return []InlineNode{{Text: v.Value, Marks: b.codeMarks(v.Value)}}
	case *mdast.InlineMath:
		return []InlineNode{NewInlineNode(v.Value, TextMark{}.WithCode())}
	case *mdast.MdxTextExpression:
		return []InlineNode{{Text: v.Value}}
	case *mdast.Link:
		return b.link(v)
	case *mdast.LinkReference:
		text := b.paragraph(v.Children).Text
		if text == "" {
			return nil
		}
		return []InlineNode{NewInlineNode(text, TextMark{}.WithLink(LinkMark{
			Title:      v.Label,
			Identifier: v.Identifier,
		}))}
	case *mdast.Image:
		return []InlineNode{{Image: &ImageNode{URL: v.URL, Title: v.Title, Alt: v.Alt}}}
	case *mdast.FootnoteReference:
		return []InlineNode{NewInlineNode("["+v.Identifier+"]", TextMark{}.WithItalic())}
	case *mdast.Html:
		return b.htmlInline(v.Value)
	default:
		b.AddWarning("unsupported inline node: %T", n)
		return nil
	}
}

// flatten renders children to plain text carrying a single full-range mark.
// Marks of the children are not kept.
func (b *builder) flatten(children []mdast.Node, mark TextMark) []InlineNode {
	text := b.paragraph(children).Text
	if text == "" {
		return nil
	}
	return []InlineNode{NewInlineNode(text, mark)}
}

// link renders the children of a link and attaches the link to every text
// node and image produced, keeping their own marks.
func (b *builder) link(l *mdast.Link) []InlineNode {
	mark := LinkMark{URL: l.URL, Title: l.Title}
	mark.RequiresModifiers, mark.Decorate = linkBehavior(l.URL)

	children := b.paragraph(l.Children).Children
	out := make([]InlineNode, 0, len(children))
	for _, child := range children {
		if child.Image != nil {
			img := *child.Image
			link := mark
			img.Link = &link
			child.Image = &img
		}
		if child.Text != "" {
			marks := make([]MarkRange, len(child.Marks), len(child.Marks)+1)
			copy(marks, child.Marks)
			child.Marks = append(marks, MarkRange{
				Range: textrange.New(0, len(child.Text)),
				Mark:  TextMark{}.WithLink(mark),
			})
		}
		out = append(out, child)
	}
	return out
}
