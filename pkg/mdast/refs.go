package mdast

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// refMarker prefixes the destination goldmark stores for reference links so
// the converter can keep them unresolved.
const refMarker = "\x00ref:"

// kindDefinition is the goldmark node kind for a kept link reference
// definition.
var kindDefinition = ast.NewNodeKind("LinkReferenceDefinition")

// definitionNode records a link reference definition at its place in the
// block tree. goldmark normally drops definitions after registering them.
type definitionNode struct {
	ast.BaseBlock
	label       string
	destination string
	title       string
	start, stop int
}

func (n *definitionNode) Kind() ast.NodeKind { return kindDefinition }

func (n *definitionNode) IsRaw() bool { return true }

func (n *definitionNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":       n.label,
		"Destination": n.destination,
	}, nil)
}

// refContext wraps a parser.Context to keep reference definitions in the
// tree and to leave reference links unresolved.
type refContext struct {
	parser.Context

	// current is the paragraph whose leading lines are being scanned for
	// definitions; pending are the definitions read from it so far.
	current *ast.Paragraph
	lines   []text.Segment
	lineIx  int
	pending []*definitionNode
	source  []byte

	// orphans are definitions registered outside a tracked paragraph.
	orphans []*definitionNode
}

func newRefContext(source []byte) *refContext {
	return &refContext{Context: parser.NewContext(), source: source}
}

// AddReference registers the definition with goldmark and inserts a
// definitionNode before the paragraph it was read from.
func (c *refContext) AddReference(ref parser.Reference) {
	c.Context.AddReference(ref)

	def := &definitionNode{
		label:       string(ref.Label()),
		destination: string(ref.Destination()),
		title:       string(ref.Title()),
		start:       -1,
	}
	if c.current == nil || c.current.Parent() == nil {
		c.orphans = append(c.orphans, def)
		return
	}
	c.locate(def)
	parent := c.current.Parent()
	parent.InsertBefore(parent, c.current, def)
}

// locate finds the source line that opens the definition, starting after
// the previously located one.
func (c *refContext) locate(def *definitionNode) {
	opener := []byte("[" + def.label + "]:")
	for ; c.lineIx < len(c.lines); c.lineIx++ {
		seg := c.lines[c.lineIx]
		if bytes.HasPrefix(bytes.TrimLeft(seg.Value(c.source), " \t"), opener) {
			def.start = seg.Start
			c.lineIx++
			c.pending = append(c.pending, def)
			return
		}
	}
}

// flush ends each pending definition where the next one starts; the last
// ends at limit, the first byte goldmark left in the paragraph.
func (c *refContext) flush(limit int) {
	for i, def := range c.pending {
		stop := limit
		if i+1 < len(c.pending) {
			stop = c.pending[i+1].start
		}
		def.stop = trimTrailing(c.source, stop)
	}
	c.pending = c.pending[:0]
}

// Reference hands goldmark a placeholder so the link keeps its label. The
// converter resolves images itself through resolve.
func (c *refContext) Reference(label string) (parser.Reference, bool) {
	ref, ok := c.Context.Reference(label)
	if !ok {
		return nil, false
	}
	return parser.NewReference(ref.Label(), []byte(refMarker+label), ref.Title()), true
}

// resolve looks a label up in the real goldmark reference table.
func (c *refContext) resolve(label string) (parser.Reference, bool) {
	return c.Context.Reference(util.ToLinkReference([]byte(label)))
}

func (c *refContext) track(p *ast.Paragraph) {
	c.finish()
	c.current = p
	c.lineIx = 0
	lines := p.Lines()
	for i := 0; i < lines.Len(); i++ {
		c.lines = append(c.lines, lines.At(i))
	}
}

// release is called once goldmark has consumed the definitions of a
// paragraph that still has content. A paragraph consumed entirely is
// detached before this runs and is closed out by finish.
func (c *refContext) release(p *ast.Paragraph) {
	if lines := p.Lines(); lines.Len() > 0 {
		c.flush(lines.At(0).Start)
	}
	c.current = nil
	c.lines = c.lines[:0]
}

// finish closes out a paragraph that goldmark consumed entirely.
func (c *refContext) finish() {
	if len(c.lines) > 0 {
		c.flush(c.lines[len(c.lines)-1].Stop)
	}
	c.current = nil
	c.lines = c.lines[:0]
}

// trackParagraph runs before goldmark's own link reference transformer and
// marks the paragraph it is about to consume definitions from.
type trackParagraph struct{}

func (trackParagraph) Transform(node *ast.Paragraph, reader text.Reader, pc parser.Context) {
	if rc, ok := pc.(*refContext); ok {
		rc.track(node)
	}
}

// releaseParagraph runs after goldmark's link reference transformer.
type releaseParagraph struct{}

func (releaseParagraph) Transform(node *ast.Paragraph, reader text.Reader, pc parser.Context) {
	if rc, ok := pc.(*refContext); ok {
		rc.release(node)
	}
}

// definitions is the goldmark extension that keeps link reference
// definitions in the tree. goldmark's link reference transformer runs at
// priority 100.
type definitions struct{}

func (definitions) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithParagraphTransformers(
		util.Prioritized(trackParagraph{}, 50),
		util.Prioritized(releaseParagraph{}, 150),
	))
}

func trimNewline(source []byte, stop int) int {
	for stop > 0 && stop <= len(source) && (source[stop-1] == '\n' || source[stop-1] == '\r') {
		stop--
	}
	return stop
}

func trimTrailing(source []byte, stop int) int {
	for stop > 0 && stop <= len(source) && isSpaceByte(source[stop-1]) {
		stop--
	}
	return stop
}

// referenceLabel extracts the label from a placeholder destination.
func referenceLabel(destination []byte) (string, bool) {
	d := string(destination)
	if !strings.HasPrefix(d, refMarker) {
		return "", false
	}
	return strings.TrimPrefix(d, refMarker), true
}
