// Package render turns document paragraphs and code blocks into painted
// text: the string, its styled runs, its inline-code ranges and its links.
package render

import (
	"github.com/open-cli-collective/mdt/pkg/document"
	"github.com/open-cli-collective/mdt/pkg/selection"
	"github.com/open-cli-collective/mdt/pkg/style"
	"github.com/open-cli-collective/mdt/pkg/textrange"
	"github.com/open-cli-collective/mdt/pkg/textrun"
)

// Theme holds the styles text is painted with.
type Theme struct {
	Base       style.Text       `json:"base"`
	InlineCode style.InlineCode `json:"inline_code"`
	// CodeFont is the font family of code blocks.
	CodeFont  string      `json:"code_font,omitempty"`
	LinkColor style.Color `json:"link_color"`
	// HeadingScale multiplies the base font size per heading level.
	HeadingScale [6]float32 `json:"heading_scale"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Base:         style.Text{FontSize: 16, Color: style.Black},
		InlineCode:   style.InlineCode{FontFamily: "monospace", PaddingX: 2},
		CodeFont:     "monospace",
		LinkColor:    style.LinkBlue,
		HeadingScale: [6]float32{2, 1.5, 1.25, 1.125, 1, 0.875},
	}
}

// Kind names what an Inline was rendered from.
type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindCell      Kind = "cell"
	KindCode      Kind = "code"
)

// Inline is a rendered run of text.
type Inline struct {
	Kind       Kind                 `json:"kind"`
	Text       string               `json:"text"`
	Runs       []textrun.Run        `json:"runs"`
	Highlights []textrun.Highlight  `json:"highlights,omitempty"`
	CodeRanges []textrange.Range    `json:"code_ranges,omitempty"`
	Links      []selection.Link     `json:"links,omitempty"`
	Images     []document.ImageNode `json:"images,omitempty"`
}

// LinkAtIndex returns the link covering a byte offset of the text.
func (in Inline) LinkAtIndex(index int) (document.LinkMark, bool) {
	return selection.LinkAtIndex(in.Links, index)
}

// Paragraph renders p over the theme's base style. Reference links are
// resolved against refs; links that stay without a URL are inert and are
// neither listed nor decorated.
func Paragraph(p *document.Paragraph, refs *document.ReferenceTable, theme Theme) Inline {
	return paragraph(KindParagraph, p, refs, theme, theme.Base)
}

// Heading renders a heading scaled and bolded according to the theme.
func Heading(h *document.Heading, refs *document.ReferenceTable, theme Theme) Inline {
	base := theme.Base
	base.Bold = true
	if h.Level >= 1 && h.Level <= len(theme.HeadingScale) && theme.HeadingScale[h.Level-1] > 0 {
		base.FontSize *= theme.HeadingScale[h.Level-1]
	}
	return paragraph(KindHeading, h.Children, refs, theme, base)
}

// CodeBlock renders code with its syntax highlights in the code font.
func CodeBlock(cb *document.CodeBlock, theme Theme) Inline {
	base := theme.Base
	if theme.CodeFont != "" {
		base.FontFamily = theme.CodeFont
	}
	highlights := make([]textrun.Highlight, 0, len(cb.Highlights))
	for _, h := range cb.Highlights {
		highlights = append(highlights, textrun.Highlight{Range: h.Range, Style: h.Style})
	}
	return Inline{
		Kind:       KindCode,
		Text:       cb.Code,
		Runs:       textrun.Segment(len(cb.Code), base, highlights, nil, style.InlineCode{}),
		Highlights: highlights,
	}
}

// Document renders every paragraph, heading, table cell and code block of
// doc in order.
func Document(doc *document.Document, theme Theme) []Inline {
	var out []Inline
	doc.Walk(func(b document.Block, _ int) bool {
		switch v := b.(type) {
		case *document.Paragraph:
			out = append(out, Paragraph(v, doc.References, theme))
		case *document.Heading:
			out = append(out, Heading(v, doc.References, theme))
		case *document.CodeBlock:
			out = append(out, CodeBlock(v, theme))
		case *document.Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					out = append(out, paragraph(KindCell, cell.Children, doc.References, theme, theme.Base))
				}
			}
		}
		return true
	})
	return out
}

func paragraph(kind Kind, p *document.Paragraph, refs *document.ReferenceTable, theme Theme, base style.Text) Inline {
	out := Inline{Kind: kind, Text: p.Text}

	// layers are the marks as highlights over paragraph offsets.
	var layers []textrun.Highlight
	offset := 0
	for _, n := range p.Children {
		if n.Image != nil {
			out.Images = append(out.Images, *n.Image)
		}
		for _, m := range n.Marks {
			r := textrange.New(offset+m.Start, offset+m.End)
			if r.IsEmpty() {
				continue
			}
			if m.Mark.Code {
				out.CodeRanges = append(out.CodeRanges, r)
			}
			hl := markHighlight(m.Mark)
			if m.Mark.Link != nil {
				target := refs.Resolve(*m.Mark.Link)
				if target.URL == "" {
					continue
				}
				out.Links = append(out.Links, selection.Link{Range: r, Target: target})
				if target.Decorate {
					color := theme.LinkColor
					hl.Color = &color
					hl.Underline = true
				}
			}
			if !hl.IsZero() {
				layers = append(layers, textrun.Highlight{Range: r, Style: hl})
			}
		}
		offset += len(n.Text)
	}

	out.Highlights = flatten(len(p.Text), layers)
	out.Runs = textrun.Segment(len(p.Text), base, out.Highlights, out.CodeRanges, theme.InlineCode)
	return out
}

func markHighlight(m document.TextMark) style.Highlight {
	return style.Highlight{
		Bold:          m.Bold,
		Italic:        m.Italic,
		Strikethrough: m.Strikethrough,
	}
}

// flatten merges overlapping layers into ordered, non-overlapping
// highlights. Later layers win for colors.
func flatten(length int, layers []textrun.Highlight) []textrun.Highlight {
	if len(layers) == 0 {
		return nil
	}
	points := textrun.Breakpoints(length, layers, nil)

	var out []textrun.Highlight
	for i := 1; i < len(points); i++ {
		r := textrange.New(points[i-1], points[i])
		var merged style.Highlight
		for _, l := range layers {
			if l.Covers(r) {
				merged = merged.Merge(l.Style)
			}
		}
		if merged.IsZero() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End == r.Start && out[n-1].Style.Equal(merged) {
			out[n-1].End = r.End
			continue
		}
		out = append(out, textrun.Highlight{Range: r, Style: merged})
	}
	return out
}
