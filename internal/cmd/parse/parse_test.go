package parse

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/internal/cmd/cmdtest"
	"github.com/open-cli-collective/mdt/pkg/document"
)

const sample = "# Title\n\nSome **bold** text with [a link](https://example.com).\n\n```go\nfunc main() {}\n```\n\n- one\n- two\n"

func TestParse_Table(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), sample)
	require.NoError(t, res.Err)

	lines := strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "INDEX"))
	assert.Contains(t, lines[1], "h1")
	assert.Contains(t, lines[1], "Title")
	assert.Contains(t, lines[2], "paragraph")
	assert.Contains(t, lines[2], "Some bold text with a link.")
	assert.Contains(t, lines[3], "code (go)")
	assert.Contains(t, lines[4], "2 items")
}

func TestParse_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	res := cmdtest.Run(t, NewCmdParse(), "", path, "-o", "plain")
	require.NoError(t, res.Err)
	assert.Equal(t, "hello\n", res.Stdout)
}

func TestParse_JSON(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), sample, "-o", "json")
	require.NoError(t, res.Err)

	var out struct {
		Blocks []struct {
			Type string `json:"type"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &out))
	assert.Len(t, out.Blocks, 4)
}

func TestParse_Plain(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), "**a** b\n\n- x\n", "-o", "plain")
	require.NoError(t, res.Err)
	assert.Equal(t, "a b\n\n▪ x\n", res.Stdout)
}

func TestParse_Stats(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), sample, "--stats")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stdout, "Blocks: 4")
	assert.Contains(t, res.Stdout, "Code blocks: 1")
	assert.Contains(t, res.Stdout, "Links: 1")
	assert.Contains(t, res.Stdout, "Size: ")
}

func TestParse_StatsJSON(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), sample, "--stats", "-o", "json")
	require.NoError(t, res.Err)

	var s Stats
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &s))
	assert.Equal(t, len(sample), s.Bytes)
	assert.Equal(t, 4, s.Blocks)
	assert.Equal(t, 1, s.CodeBlocks)
}

func TestParse_MissingFile(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), "", filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "failed to read file")
}

func TestParse_WarningSummary(t *testing.T) {
	res := cmdtest.Run(t, NewCmdParse(), "a <span>b</span> c\n")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Stderr, "degraded")
}

func TestBlockType(t *testing.T) {
	checked := true
	tests := []struct {
		block document.Block
		want  string
	}{
		{document.NewParagraph("x"), "paragraph"},
		{&document.Heading{Level: 3, Children: document.NewParagraph("h")}, "h3"},
		{&document.List{Ordered: true}, "ordered list"},
		{&document.List{}, "list"},
		{&document.ListItem{Checked: &checked}, "list item"},
		{&document.CodeBlock{}, "code"},
		{&document.CodeBlock{Lang: "rust"}, "code (rust)"},
		{&document.Divider{}, "divider"},
		{&document.Break{HTML: true}, "break"},
		{&document.Root{}, "html"},
		{&document.Unknown{Kind: "Custom"}, "unknown (Custom)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockType(tt.block))
		})
	}
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "[a]: /x", Summary(&document.Definition{Identifier: "a", URL: "/x"}))
	assert.Equal(t, "2 blocks", Summary(&document.Blockquote{Children: []document.Block{
		document.NewParagraph("a"), document.NewParagraph("b"),
	}}))
	assert.Equal(t, "", Summary(&document.Divider{}))
}

func TestCount(t *testing.T) {
	doc, err := document.Parse(sample, document.DefaultOptions())
	require.NoError(t, err)

	s := Count(doc)
	assert.Equal(t, 4, s.Blocks)
	assert.Equal(t, 1, s.Links)
	assert.Equal(t, 0, s.Warnings)
	// heading, paragraph and the two list item paragraphs
	assert.Equal(t, 4, s.Paragraphs)
}
