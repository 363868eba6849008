package mdast

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	kindMathBlock  = ast.NewNodeKind("MathBlock")
	kindInlineMath = ast.NewNodeKind("InlineMath")
)

// mathBlock is a $$ delimited display math block.
type mathBlock struct {
	ast.BaseBlock
	closed bool
}

func (n *mathBlock) Kind() ast.NodeKind { return kindMathBlock }
func (n *mathBlock) IsRaw() bool        { return true }
func (n *mathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// inlineMath is $math$ inside a paragraph.
type inlineMath struct {
	ast.BaseInline
	value text.Segment
}

func (n *inlineMath) Kind() ast.NodeKind { return kindInlineMath }
func (n *inlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.value.Value(source))}, nil)
}

type mathBlockParser struct{}

func (mathBlockParser) Trigger() []byte { return []byte{'$'} }

func (mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !bytes.HasPrefix(line[pos:], []byte("$$")) {
		return nil, parser.NoChildren
	}
	if len(bytes.TrimSpace(line[pos+2:])) != 0 {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - newlineLen(line) + segment.Padding)
	return &mathBlock{}, parser.NoChildren
}

func (mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	if bytes.Equal(bytes.TrimSpace(line), []byte("$$")) {
		node.(*mathBlock).closed = true
		reader.Advance(segment.Len() - newlineLen(line) + segment.Padding)
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - newlineLen(line) + segment.Padding)
	return parser.Continue | parser.NoChildren
}

func (mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (mathBlockParser) CanInterruptParagraph() bool { return true }

func (mathBlockParser) CanAcceptIndentedLine() bool { return false }

type inlineMathParser struct{}

func (inlineMathParser) Trigger() []byte { return []byte{'$'} }

// Parse accepts $x$ where neither side of the content is whitespace and
// the closing dollar is not followed by a digit, so prices stay text.
func (inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 3 || line[1] == '$' || isSpaceByte(line[1]) {
		return nil
	}
	for i := 2; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '$':
			if isSpaceByte(line[i-1]) {
				return nil
			}
			if i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
				return nil
			}
			node := &inlineMath{value: text.NewSegment(segment.Start+1, segment.Start+i)}
			block.Advance(i + 1)
			return node
		case '\n':
			return nil
		}
	}
	return nil
}

// mathExtension adds $$ blocks and $ inline math.
type mathExtension struct{}

func (mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(mathBlockParser{}, 650)),
		parser.WithInlineParsers(util.Prioritized(inlineMathParser{}, 150)),
	)
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func newlineLen(line []byte) int {
	n := 0
	if bytes.HasSuffix(line, []byte("\n")) {
		n++
		if bytes.HasSuffix(line[:len(line)-1], []byte("\r")) {
			n++
		}
	}
	return n
}
