package document

import (
	"encoding/json"

	"github.com/open-cli-collective/mdt/pkg/highlight"
	"github.com/open-cli-collective/mdt/pkg/mdast"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// Span is an absolute byte range in the original source.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// union grows s to cover o. A nil s adopts o.
func (s *Span) union(o *Span) *Span {
	if o == nil {
		return s
	}
	if s == nil {
		cp := *o
		return &cp
	}
	out := *s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return &out
}

// Block is a structural document element. The set of variants is closed.
type Block interface {
	// Span returns the block's source extent, or nil when unknown.
	Span() *Span
	blockNode()
}

// Paragraph is a run of inline content. Text always equals the
// concatenation of the children's texts.
type Paragraph struct {
	Children []InlineNode `json:"children"`
	Text     string       `json:"text"`
	span     *Span
}

// NewParagraph creates a paragraph holding one plain text node.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{}
	p.PushText(text)
	return p
}

// Span implements Block.
func (p *Paragraph) Span() *Span { return p.span }

// SetSpan grows the paragraph's span to include s.
func (p *Paragraph) SetSpan(s *Span) {
	p.span = p.span.union(s)
}

// Push appends a node.
func (p *Paragraph) Push(n InlineNode) {
	p.Text += n.Text
	p.Children = append(p.Children, n)
}

// PushText appends plain text, joining it to a trailing plain node.
func (p *Paragraph) PushText(text string) {
	if text == "" {
		return
	}
	if last := len(p.Children) - 1; last >= 0 && p.Children[last].isPlain() {
		p.Children[last].Text += text
		p.Text += text
		return
	}
	p.Push(InlineNode{Text: text})
}

// Append moves all nodes of o to the end of p.
func (p *Paragraph) Append(o *Paragraph) {
	for _, n := range o.Children {
		if n.isPlain() {
			p.PushText(n.Text)
			continue
		}
		p.Push(n)
	}
	p.span = p.span.union(o.span)
}

// IsEmpty reports whether the paragraph has no content.
func (p *Paragraph) IsEmpty() bool {
	return len(p.Children) == 0
}

// Images returns the image nodes of the paragraph.
func (p *Paragraph) Images() []*ImageNode {
	var out []*ImageNode
	for i := range p.Children {
		if img := p.Children[i].Image; img != nil {
			out = append(out, img)
		}
	}
	return out
}

// Heading is a heading of level 1 to 6.
type Heading struct {
	Level    int        `json:"level"`
	Children *Paragraph `json:"children"`
	span     *Span
}

// Blockquote holds nested blocks.
type Blockquote struct {
	Children []Block `json:"children"`
	span     *Span
}

// List holds ListItem blocks. Start is the first number of an ordered list.
type List struct {
	Ordered  bool    `json:"ordered"`
	Start    int     `json:"start,omitempty"`
	Children []Block `json:"children"`
	span     *Span
}

// ListItem holds the blocks of one list entry. Checked is nil for items
// that are not task items.
type ListItem struct {
	Children []Block `json:"children"`
	Spread   bool    `json:"spread"`
	Checked  *bool   `json:"checked,omitempty"`
	span     *Span
}

// CodeBlock is a block of preformatted code with its highlight ranges.
type CodeBlock struct {
	Code       string            `json:"code"`
	Lang       string            `json:"lang,omitempty"`
	Highlights []highlight.Range `json:"highlights,omitempty"`
	span       *Span
}

// ColumnAlign is the alignment of a table column.
type ColumnAlign string

const (
	AlignDefault ColumnAlign = ""
	AlignLeft    ColumnAlign = "left"
	AlignCenter  ColumnAlign = "center"
	AlignRight   ColumnAlign = "right"
)

func columnAlign(a mdast.AlignKind) ColumnAlign {
	switch a {
	case mdast.AlignLeft:
		return AlignLeft
	case mdast.AlignCenter:
		return AlignCenter
	case mdast.AlignRight:
		return AlignRight
	default:
		return AlignDefault
	}
}

// Table is a GFM table. The first row is the header.
type Table struct {
	ColumnAligns []ColumnAlign `json:"column_aligns"`
	Rows         []TableRow    `json:"rows"`
	span         *Span
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []TableCell `json:"cells"`
}

// TableCell holds the inline content of a cell.
type TableCell struct {
	Children *Paragraph `json:"children"`
}

// Definition is a link reference definition kept in the tree.
type Definition struct {
	Identifier string `json:"identifier"`
	URL        string `json:"url"`
	Title      string `json:"title,omitempty"`
	span       *Span
}

// Divider is a thematic break.
type Divider struct {
	span *Span
}

// Break is a line break block; HTML is set when it came from a <br>.
type Break struct {
	HTML bool `json:"html"`
	span *Span
}

// Root groups the blocks produced from embedded block HTML.
type Root struct {
	Children []Block `json:"children"`
	span     *Span
}

// Unknown stands in for a node kind the builder does not support.
type Unknown struct {
	Kind string `json:"kind"`
	span *Span
}

func (b *Heading) Span() *Span    { return b.span }
func (b *Blockquote) Span() *Span { return b.span }
func (b *List) Span() *Span       { return b.span }
func (b *ListItem) Span() *Span   { return b.span }
func (b *CodeBlock) Span() *Span  { return b.span }
func (b *Table) Span() *Span      { return b.span }
func (b *Definition) Span() *Span { return b.span }
func (b *Divider) Span() *Span    { return b.span }
func (b *Break) Span() *Span      { return b.span }
func (b *Root) Span() *Span       { return b.span }
func (b *Unknown) Span() *Span    { return b.span }

func (*Paragraph) blockNode()  {}
func (*Heading) blockNode()    {}
func (*Blockquote) blockNode() {}
func (*List) blockNode()       {}
func (*ListItem) blockNode()   {}
func (*CodeBlock) blockNode()  {}
func (*Table) blockNode()      {}
func (*Definition) blockNode() {}
func (*Divider) blockNode()    {}
func (*Break) blockNode()      {}
func (*Root) blockNode()       {}
func (*Unknown) blockNode()    {}

// TextMark is a set of formatting flags; several may apply at once.
type TextMark struct {
	Bold          bool      `json:"bold,omitempty"`
	Italic        bool      `json:"italic,omitempty"`
	Strikethrough bool      `json:"strikethrough,omitempty"`
	Code          bool      `json:"code,omitempty"`
	Link          *LinkMark `json:"link,omitempty"`
}

// WithBold returns m with bold set.
func (m TextMark) WithBold() TextMark { m.Bold = true; return m }

// WithItalic returns m with italic set.
func (m TextMark) WithItalic() TextMark { m.Italic = true; return m }

// WithStrikethrough returns m with strikethrough set.
func (m TextMark) WithStrikethrough() TextMark { m.Strikethrough = true; return m }

// WithCode returns m with code set.
func (m TextMark) WithCode() TextMark { m.Code = true; return m }

// WithLink returns m carrying a copy of link.
func (m TextMark) WithLink(link LinkMark) TextMark {
	m.Link = &link
	return m
}

// Merge combines two marks; a link in o replaces one in m.
func (m TextMark) Merge(o TextMark) TextMark {
	m.Bold = m.Bold || o.Bold
	m.Italic = m.Italic || o.Italic
	m.Strikethrough = m.Strikethrough || o.Strikethrough
	m.Code = m.Code || o.Code
	if o.Link != nil {
		m.Link = o.Link
	}
	return m
}

// IsZero reports whether no flag is set.
func (m TextMark) IsZero() bool {
	return !m.Bold && !m.Italic && !m.Strikethrough && !m.Code && m.Link == nil
}

// LinkMark is the target of a link. Internal links (ctx://open) require a
// modifier to activate and are not decorated.
type LinkMark struct {
	URL               string `json:"url"`
	Title             string `json:"title,omitempty"`
	Identifier        string `json:"identifier,omitempty"`
	RequiresModifiers bool   `json:"requires_modifiers,omitempty"`
	Decorate          bool   `json:"decorate,omitempty"`
}

// IsReference reports whether the link still awaits resolution against
// the reference table.
func (l LinkMark) IsReference() bool {
	return l.URL == "" && l.Identifier != ""
}

// MarkRange is a mark applied to a byte range of an InlineNode's text.
type MarkRange struct {
	textrange.Range
	Mark TextMark `json:"mark"`
}

// InlineNode is text with marks, or an image.
type InlineNode struct {
	Text  string      `json:"text"`
	Marks []MarkRange `json:"marks,omitempty"`
	Image *ImageNode  `json:"image,omitempty"`
}

// NewInlineNode creates a node whose whole text carries mark.
func NewInlineNode(text string, mark TextMark) InlineNode {
	return InlineNode{
		Text:  text,
		Marks: []MarkRange{{Range: textrange.New(0, len(text)), Mark: mark}},
	}
}

func (n InlineNode) isPlain() bool {
	return n.Image == nil && len(n.Marks) == 0
}

// ImageNode is an inline image, optionally wrapped in a link.
type ImageNode struct {
	URL   string    `json:"url"`
	Title string    `json:"title,omitempty"`
	Alt   string    `json:"alt,omitempty"`
	Link  *LinkMark `json:"link,omitempty"`
}

// MarshalJSON adds a "type" tag to every block so encoded documents can be
// told apart without the Go types.
func (p *Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return marshalTagged("paragraph", p.span, (*alias)(p))
}

func (b *Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return marshalTagged("heading", b.span, (*alias)(b))
}

func (b *Blockquote) MarshalJSON() ([]byte, error) {
	type alias Blockquote
	return marshalTagged("blockquote", b.span, (*alias)(b))
}

func (b *List) MarshalJSON() ([]byte, error) {
	type alias List
	return marshalTagged("list", b.span, (*alias)(b))
}

func (b *ListItem) MarshalJSON() ([]byte, error) {
	type alias ListItem
	return marshalTagged("list_item", b.span, (*alias)(b))
}

func (b *CodeBlock) MarshalJSON() ([]byte, error) {
	type alias CodeBlock
	return marshalTagged("code_block", b.span, (*alias)(b))
}

func (b *Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return marshalTagged("table", b.span, (*alias)(b))
}

func (b *Definition) MarshalJSON() ([]byte, error) {
	type alias Definition
	return marshalTagged("definition", b.span, (*alias)(b))
}

func (b *Divider) MarshalJSON() ([]byte, error) {
	return marshalTagged("divider", b.span, struct{}{})
}

func (b *Break) MarshalJSON() ([]byte, error) {
	type alias Break
	return marshalTagged("break", b.span, (*alias)(b))
}

func (b *Root) MarshalJSON() ([]byte, error) {
	type alias Root
	return marshalTagged("root", b.span, (*alias)(b))
}

func (b *Unknown) MarshalJSON() ([]byte, error) {
	type alias Unknown
	return marshalTagged("unknown", b.span, (*alias)(b))
}

// marshalTagged encodes v and prepends the type tag and span.
func marshalTagged(kind string, span *Span, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]json.RawMessage)
	}
	fields["type"], _ = json.Marshal(kind)
	if span != nil {
		fields["span"], _ = json.Marshal(span)
	}
	return json.Marshal(fields)
}
