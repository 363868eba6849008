package mdast

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	kindMdxFlow = ast.NewNodeKind("MdxFlowExpression")
	kindMdxText = ast.NewNodeKind("MdxTextExpression")
)

// mdxFlow is a block {expression}; it may span lines until braces balance.
type mdxFlow struct {
	ast.BaseBlock
	depth int
	done  bool
}

func (n *mdxFlow) Kind() ast.NodeKind { return kindMdxFlow }
func (n *mdxFlow) IsRaw() bool        { return true }
func (n *mdxFlow) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// mdxText is an inline {expression}.
type mdxText struct {
	ast.BaseInline
	value text.Segment
}

func (n *mdxText) Kind() ast.NodeKind { return kindMdxText }
func (n *mdxText) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.value.Value(source))}, nil)
}

type mdxFlowParser struct{}

func (mdxFlowParser) Trigger() []byte { return []byte{'{'} }

func (mdxFlowParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != '{' {
		return nil, parser.NoChildren
	}
	node := &mdxFlow{}
	node.consume(line[pos:])
	node.Lines().Append(text.NewSegment(segment.Start+pos, segment.Stop))
	reader.Advance(segment.Len() - newlineLen(line) + segment.Padding)
	return node, parser.NoChildren
}

func (mdxFlowParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*mdxFlow)
	if n.done {
		return parser.Close
	}
	line, segment := reader.PeekLine()
	if line == nil {
		return parser.Close
	}
	n.consume(line)
	n.Lines().Append(segment)
	reader.Advance(segment.Len() - newlineLen(line) + segment.Padding)
	return parser.Continue | parser.NoChildren
}

func (mdxFlowParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (mdxFlowParser) CanInterruptParagraph() bool { return false }

func (mdxFlowParser) CanAcceptIndentedLine() bool { return false }

func (n *mdxFlow) consume(line []byte) {
	for _, b := range line {
		switch b {
		case '{':
			n.depth++
		case '}':
			n.depth--
		}
	}
	if n.depth <= 0 {
		n.done = true
	}
}

type mdxTextParser struct{}

func (mdxTextParser) Trigger() []byte { return []byte{'{'} }

func (mdxTextParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	depth := 0
	for i, b := range line {
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				node := &mdxText{value: text.NewSegment(segment.Start+1, segment.Start+i)}
				block.Advance(i + 1)
				return node
			}
		case '\n':
			return nil
		}
	}
	return nil
}

// mdxExtension adds {expression} blocks and inline expressions.
type mdxExtension struct{}

func (mdxExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(mdxFlowParser{}, 660)),
		parser.WithInlineParsers(util.Prioritized(mdxTextParser{}, 160)),
	)
}
