package tokens

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/pkg/textrange"
)

func TestSplitWhitespaceRanges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []textrange.Range
	}{
		{"empty", "", nil},
		{"only spaces", "  \t\n ", nil},
		{"single", "abc", []textrange.Range{{Start: 0, End: 3}}},
		{"leading and trailing", "  a bc ", []textrange.Range{{Start: 2, End: 3}, {Start: 4, End: 6}}},
		{"tabs and newlines", "a\tb\nc", []textrange.Range{{Start: 0, End: 1}, {Start: 2, End: 3}, {Start: 4, End: 5}}},
		{"multibyte", "héllo wörld", []textrange.Range{{Start: 0, End: 6}, {Start: 7, End: 13}}},
		{"unicode space", "a\u00a0b", []textrange.Range{{Start: 0, End: 1}, {Start: 3, End: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitWhitespaceRanges(tt.input))
		})
	}
}

func TestSplitWhitespaceRanges_Properties(t *testing.T) {
	inputs := []string{
		"go test ./... -run TestFoo",
		"  src/main.rs:42:7   https://example.com  ",
		"日本 語\tテキスト\n",
		"x",
	}

	for _, input := range inputs {
		ranges := SplitWhitespaceRanges(input)
		prevEnd := -1
		var rebuilt strings.Builder
		last := 0
		for _, r := range ranges {
			require.Greater(t, r.End, r.Start)
			require.Greater(t, r.Start, prevEnd, "ranges must be strictly increasing")
			token := input[r.Start:r.End]
			assert.False(t, strings.IndexFunc(token, unicode.IsSpace) >= 0, "token %q has whitespace", token)
			gap := input[last:r.Start]
			assert.Empty(t, strings.TrimSpace(gap))
			rebuilt.WriteString(gap)
			rebuilt.WriteString(token)
			last = r.End
			prevEnd = r.End
		}
		rebuilt.WriteString(input[last:])
		assert.Equal(t, input, rebuilt.String())
	}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"http://x.com", "http://x.com", true},
		{"HTTPS://EXAMPLE.com/x", "HTTPS://EXAMPLE.com/x", true},
		{"https://", "https://", true},
		{"ftp://x", "", false},
		{"example.com", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseURL(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileRef(t *testing.T) {
	tests := []struct {
		token string
		want  FileRef
		ok    bool
	}{
		{"src/main.rs:42:7", FileRef{Path: "src/main.rs", Line: 42, Col: 7}, true},
		{"src/main.rs:42", FileRef{Path: "src/main.rs", Line: 42}, true},
		{"./README.md#L10", FileRef{Path: "./README.md", Line: 10}, true},
		{"./README.md#L10C3", FileRef{Path: "./README.md", Line: 10, Col: 3}, true},
		{"./README.md#L10C", FileRef{Path: "./README.md", Line: 10}, true},
		{"/etc/hosts", FileRef{Path: "/etc/hosts"}, true},
		{"~", FileRef{Path: "~"}, true},
		{"..", FileRef{Path: ".."}, true},
		{`C:\Users\me\a.txt:3`, FileRef{Path: `C:\Users\me\a.txt`, Line: 3}, true},
		{"lib/a.go:0", FileRef{Path: "lib/a.go:0"}, true},
		{"a:b", FileRef{}, false},
		{"main.go:12", FileRef{}, false},
		{"README#L4", FileRef{}, false},
		{"word", FileRef{}, false},
		{"http://x.com/a", FileRef{}, false},
		{"", FileRef{}, false},
		{"a/b:99999999999", FileRef{Path: "a/b:99999999999"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseFileRef(tt.token)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAbsolutePath(t *testing.T) {
	assert.True(t, IsAbsolutePath("~"))
	assert.True(t, IsAbsolutePath("~/x"))
	assert.True(t, IsAbsolutePath("/x"))
	assert.True(t, IsAbsolutePath(`\x`))
	assert.True(t, IsAbsolutePath("d:/x"))
	assert.False(t, IsAbsolutePath("src/x"))
	assert.False(t, IsAbsolutePath("./x"))
	assert.False(t, IsAbsolutePath("~user"))
	assert.False(t, IsAbsolutePath(""))
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b%2Fc", EncodeURIComponent("a b/c"))
	assert.Equal(t, "AZaz09-_.~", EncodeURIComponent("AZaz09-_.~"))
	assert.Equal(t, "%C3%A9", EncodeURIComponent("é"))
	assert.Equal(t, "", EncodeURIComponent(""))
}

func TestBuildOpenURL(t *testing.T) {
	tests := []struct {
		name      string
		ref       FileRef
		workspace string
		want      string
		ok        bool
	}{
		{
			name: "absolute path",
			ref:  FileRef{Path: "/tmp/a b.go", Line: 3, Col: 4},
			want: "ctx://open?path=%2Ftmp%2Fa%20b.go&line=3&col=4",
			ok:   true,
		},
		{
			name:      "relative with workspace",
			ref:       FileRef{Path: "src/main.rs", Line: 42},
			workspace: "wt 1",
			want:      "ctx://open?worktreeId=wt%201&file=src%2Fmain.rs&line=42",
			ok:        true,
		},
		{
			name: "relative without workspace",
			ref:  FileRef{Path: "src/main.rs"},
			ok:   false,
		},
		{
			name:      "column without line is still emitted",
			ref:       FileRef{Path: "~/x", Col: 2},
			workspace: "ignored",
			want:      "ctx://open?path=~%2Fx&col=2",
			ok:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildOpenURL(tt.ref, tt.workspace)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			if ok {
				assert.True(t, IsOpenURL(got))
			}
		})
	}
}

func TestClassify(t *testing.T) {
	m := Classify("https://go.dev", "")
	assert.Equal(t, KindURL, m.Kind)
	assert.Equal(t, "https://go.dev", m.URL)

	m = Classify("src/a.go:3", "")
	assert.Equal(t, KindFile, m.Kind)
	assert.False(t, m.Linkable())

	m = Classify("src/a.go:3", "w1")
	assert.Equal(t, "ctx://open?worktreeId=w1&file=src%2Fa.go&line=3", m.URL)

	m = Classify("/abs/a.go", "")
	assert.Equal(t, "ctx://open?path=%2Fabs%2Fa.go", m.URL)

	assert.Equal(t, KindNone, Classify("plain", "w1").Kind)
	assert.Equal(t, "none", Classify("", "").Kind.String())
}
