// Package mdast defines a closed Markdown syntax tree and produces it from
// source using goldmark.
//
// Every node kind the document builder understands has its own type;
// anything else the grammar yields is reported as Unsupported so callers
// can degrade instead of failing.
package mdast

// Position is an absolute byte range in the parsed source. Block positions
// include their markers (heading hashes, quote and list markers, table
// pipes); fenced code covers only the code between the fences.
type Position struct {
	Start int
	End   int
}

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the node's source extent, or nil when unknown.
	Pos() *Position
	setPosition(*Position)
}

// Parent is implemented by nodes that own children.
type Parent interface {
	Node
	Nodes() []Node
}

type base struct {
	Position *Position
}

func (b *base) Pos() *Position           { return b.Position }
func (b *base) setPosition(p *Position) { b.Position = p }

type parent struct {
	base
	Children []Node
}

func (p *parent) Nodes() []Node { return p.Children }

// Root is the document node.
type Root struct{ parent }

// Paragraph holds inline content.
type Paragraph struct{ parent }

// Heading is an ATX or setext heading; Depth is 1 to 6.
type Heading struct {
	parent
	Depth int
}

// Blockquote holds block content.
type Blockquote struct{ parent }

// List holds ListItem children.
type List struct {
	parent
	Ordered bool
	Start   int
	Spread  bool
}

// ListItem holds block content. Checked is nil for non-task items.
type ListItem struct {
	parent
	Spread  bool
	Checked *bool
}

// Code is a fenced or indented code block.
type Code struct {
	base
	Value string
	Lang  string
	Meta  string
}

// Math is a $$ display math block.
type Math struct {
	base
	Value string
}

// MdxFlowExpression is a block-level {expression}.
type MdxFlowExpression struct {
	base
	Value string
}

// Yaml is --- delimited front matter.
type Yaml struct {
	base
	Value string
}

// Toml is +++ delimited front matter.
type Toml struct {
	base
	Value string
}

// Html is raw HTML, either a block or an inline tag.
type Html struct {
	base
	Value string
}

// ThematicBreak is a horizontal rule.
type ThematicBreak struct{ base }

// Break is a hard line break.
type Break struct{ base }

// AlignKind is a table column alignment.
type AlignKind int

const (
	AlignNone AlignKind = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Table holds TableRow children; the first row is the header.
type Table struct {
	parent
	Align []AlignKind
}

// TableRow holds TableCell children.
type TableRow struct{ parent }

// TableCell holds inline content.
type TableCell struct{ parent }

// Definition is a link reference definition.
type Definition struct {
	base
	Identifier string
	Label      string
	URL        string
	Title      string
}

// FootnoteDefinition holds the blocks of a footnote.
type FootnoteDefinition struct {
	parent
	Identifier string
	Label      string
}

// Text is literal text.
type Text struct {
	base
	Value string
}

// Emphasis is *text*.
type Emphasis struct{ parent }

// Strong is **text**.
type Strong struct{ parent }

// Delete is ~~text~~.
type Delete struct{ parent }

// InlineCode is `code`.
type InlineCode struct {
	base
	Value string
}

// InlineMath is $math$.
type InlineMath struct {
	base
	Value string
}

// MdxTextExpression is an inline {expression}.
type MdxTextExpression struct {
	base
	Value string
}

// Link is an inline or autolink.
type Link struct {
	parent
	URL   string
	Title string
}

// LinkReference is a reference-style link; the target is resolved later
// against the Definition with the same Identifier.
type LinkReference struct {
	parent
	Identifier string
	Label      string
}

// Image is an inline image; reference images arrive already resolved.
type Image struct {
	base
	URL   string
	Title string
	Alt   string
}

// FootnoteReference is [^label].
type FootnoteReference struct {
	base
	Identifier string
	Label      string
}

// Unsupported is a node the grammar produced that has no dedicated type.
type Unsupported struct {
	parent
	Kind string
}

// NewRoot creates a root node with the given children.
func NewRoot(children ...Node) *Root {
	r := &Root{}
	r.Children = children
	return r
}

// NewParagraph creates a paragraph with the given inline children.
func NewParagraph(children ...Node) *Paragraph {
	p := &Paragraph{}
	p.Children = children
	return p
}

// NewText creates a text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// NewUnsupported creates a catch-all node of the given kind.
func NewUnsupported(kind string, children ...Node) *Unsupported {
	u := &Unsupported{Kind: kind}
	u.Children = children
	return u
}

// At sets the node's position and returns it.
func At[T Node](n T, start, end int) T {
	n.setPosition(&Position{Start: start, End: end})
	return n
}
