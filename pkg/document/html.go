package document

import (
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/open-cli-collective/mdt/pkg/mdast"
)

// errNoMarkup is returned for fragments that are not HTML at all.
var errNoMarkup = errors.New("fragment contains no markup")

// htmlFragment is a parsed piece of embedded HTML.
type htmlFragment struct {
	raw string
	doc *goquery.Document
}

// parseHTMLFragment parses raw in a <body> context and wraps the result in
// a container element so it can be queried as one document.
func parseHTMLFragment(raw string) (*htmlFragment, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	markup := false
	for _, n := range nodes {
		if n.Type == html.ElementNode || n.Type == html.CommentNode {
			markup = true
		}
		container.AppendChild(n)
	}
	// A lone end tag parses to nothing but is still markup.
	if !markup && !strings.HasPrefix(strings.TrimSpace(raw), "<") {
		return nil, errNoMarkup
	}
	return &htmlFragment{raw: raw, doc: goquery.NewDocumentFromNode(container)}, nil
}

// isBreak reports whether the fragment is a single <br> and nothing else.
func (f *htmlFragment) isBreak() bool {
	children := f.doc.Children()
	return children.Length() == 1 &&
		children.Is("br") &&
		strings.TrimSpace(f.doc.Text()) == ""
}

// text returns the fragment's text content.
func (f *htmlFragment) text() string {
	return strings.TrimSpace(f.doc.Text())
}

// htmlInline renders inline HTML. A lone <br> is a line break; other tags
// are dropped; fragments that fail to parse are kept as literal text.
func (b *builder) htmlInline(raw string) []InlineNode {
	frag, err := parseHTMLFragment(raw)
	if err != nil {
		b.AddWarning("failed parsing html %q: %v", raw, err)
		return []InlineNode{{Text: raw}}
	}
	if frag.isBreak() {
		return []InlineNode{{Text: "\n"}}
	}
	b.AddWarning("unsupported inline html: %s", raw)
	return nil
}

// htmlBlock renders block HTML as a Root holding the blocks it converts to.
// When the HTML cannot be handled the raw source becomes a paragraph.
func (b *builder) htmlBlock(raw string, span *Span) Block {
	frag, err := parseHTMLFragment(raw)
	if err != nil {
		b.AddWarning("failed parsing html: %v", err)
		p := NewParagraph(raw)
		p.span = span
		return p
	}
	if frag.isBreak() {
		return &Root{Children: []Block{&Break{HTML: true}}, span: span}
	}
	if b.depth >= maxHTMLDepth {
		return &Root{Children: []Block{NewParagraph(frag.text())}, span: span}
	}

	markdown, err := htmltomarkdown.ConvertString(raw)
	if err != nil {
		b.AddWarning("failed converting html: %v", err)
		p := NewParagraph(raw)
		p.span = span
		return p
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return &Root{span: span}
	}

	root, err := mdast.Parse(markdown, mdast.Options{Math: b.opts.Math, MDX: b.opts.MDX})
	if err != nil {
		b.AddWarning("failed parsing converted html: %v", err)
		p := NewParagraph(raw)
		p.span = span
		return p
	}
	nested := b.nested()
	return &Root{Children: nested.blocks(root.Children), span: span}
}
