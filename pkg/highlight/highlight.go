// Package highlight turns source code into byte ranges with syntax styles
// using chroma.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/open-cli-collective/mdt/pkg/style"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "github"

// Range is a styled byte range of highlighted code.
type Range struct {
	textrange.Range
	Style style.Highlight `json:"style"`
}

// Highlighter produces ordered, non-overlapping highlight ranges for code.
type Highlighter interface {
	Highlight(code, lang, theme string) []Range
}

// Chroma is the chroma backed Highlighter.
type Chroma struct{}

// Highlight implements Highlighter.
func (Chroma) Highlight(code, lang, theme string) []Range {
	return Highlight(code, lang, theme)
}

// Highlight tokenises code with the lexer for lang (a name, alias or file
// extension) and maps each token to the theme's style. Code without a known
// language gets no ranges. Tokens without any styling are omitted.
func Highlight(code, lang, theme string) []Range {
	if code == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	// Offsets count bytes of code as given, so line endings stay untouched.
	iterator, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, code)
	if err != nil {
		return nil
	}
	chromaStyle := Style(theme)

	var ranges []Range
	offset := 0
	for token := iterator(); token != chroma.EOF; token = iterator() {
		start := offset
		offset += len(token.Value)
		if strings.TrimSpace(token.Value) == "" {
			continue
		}
		hl := toHighlight(chromaStyle.Get(token.Type))
		if hl.IsZero() {
			continue
		}
		r := textrange.New(start, offset)
		// Merge with the previous token when it ends here with the same style.
		if n := len(ranges); n > 0 && ranges[n-1].End == r.Start && ranges[n-1].Style.Equal(hl) {
			ranges[n-1].End = r.End
			continue
		}
		ranges = append(ranges, Range{Range: r, Style: hl})
	}
	// Lexers may append a final newline; never report past the input.
	for i := len(ranges) - 1; i >= 0 && ranges[i].End > len(code); i-- {
		if ranges[i].Start >= len(code) {
			ranges = ranges[:i]
			continue
		}
		ranges[i].End = len(code)
	}
	return ranges
}

// Style returns the named chroma style, or the fallback style.
func Style(theme string) *chroma.Style {
	if theme == "" {
		theme = DefaultTheme
	}
	s := styles.Get(theme)
	if s == nil {
		s = styles.Fallback
	}
	return s
}

// Themes lists the available chroma style names.
func Themes() []string {
	return styles.Names()
}

func toHighlight(entry chroma.StyleEntry) style.Highlight {
	var h style.Highlight
	if entry.Colour.IsSet() {
		c := style.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
		h.Color = &c
	}
	if entry.Bold == chroma.Yes {
		h.Bold = true
	}
	if entry.Italic == chroma.Yes {
		h.Italic = true
	}
	if entry.Underline == chroma.Yes {
		h.Underline = true
	}
	return h
}
