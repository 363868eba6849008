package mdast

import (
	"bytes"
	"strings"
)

// splitFrontMatter recognizes a leading --- (YAML) or +++ (TOML) block.
// It returns the node and the offset where the Markdown body starts, or
// nil when source does not open with front matter.
func splitFrontMatter(source []byte) (Node, int) {
	first, rest, ok := cutLine(source)
	if !ok {
		return nil, 0
	}
	fence := string(bytes.TrimRight(first, " \t"))
	if fence != "---" && fence != "+++" {
		return nil, 0
	}

	offset := len(source) - len(rest)
	bodyStart := offset
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		trimmed := string(bytes.TrimRight(line, " \t"))
		if trimmed == fence || (fence == "---" && trimmed == "...") {
			value := strings.TrimRight(string(source[bodyStart:offset]), "\r\n")
			end := offset + len(rest) - len(next)
			pos := &Position{Start: 0, End: trimNewline(source, end)}
			if fence == "---" {
				y := &Yaml{Value: value}
				y.Position = pos
				return y, end
			}
			t := &Toml{Value: value}
			t.Position = pos
			return t, end
		}
		offset += len(rest) - len(next)
		rest = next
	}
	return nil, 0
}

// cutLine splits off the first line without its terminator. ok is false
// when source has no line terminator at all.
func cutLine(source []byte) (line, rest []byte, ok bool) {
	idx := bytes.IndexByte(source, '\n')
	if idx < 0 {
		return source, nil, false
	}
	line = bytes.TrimSuffix(source[:idx], []byte("\r"))
	return line, source[idx+1:], true
}
