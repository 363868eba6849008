// Package tokens recognizes URLs and file references inside whitespace
// delimited tokens and builds the canonical "open file" URL for them.
package tokens

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// OpenURLScheme is the scheme of links handled by the host navigation handler.
const OpenURLScheme = "ctx"

// OpenURLPrefix starts every URL produced by BuildOpenURL.
const OpenURLPrefix = OpenURLScheme + "://open?"

// FileRef is a file path with an optional 1-based line and column.
// Zero Line or Col means absent.
type FileRef struct {
	Path string `json:"path"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

// SplitWhitespaceRanges returns the byte ranges of the maximal runs of
// non-whitespace characters in text, left to right.
func SplitWhitespaceRanges(text string) []textrange.Range {
	var ranges []textrange.Range
	start := -1
	for idx, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				ranges = append(ranges, textrange.New(start, idx))
				start = -1
			}
		} else if start < 0 {
			start = idx
		}
	}
	if start >= 0 {
		ranges = append(ranges, textrange.New(start, len(text)))
	}
	return ranges
}

// ParseURL accepts tokens starting with http:// or https:// (any case) and
// returns them unchanged.
func ParseURL(token string) (string, bool) {
	lower := strings.ToLower(token)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", false
	}
	return token, true
}

// ParseFileRef recognizes path, path:line, path:line:col and
// path#L<line>[C<col>] tokens. Tokens without an explicit path cue are
// rejected so ordinary words are never treated as files.
func ParseFileRef(token string) (FileRef, bool) {
	if token == "" || strings.Contains(token, "://") {
		return FileRef{}, false
	}
	if ref, ok := parseLineColSuffix(token); ok {
		return ref, true
	}
	if !hasExplicitPathCue(token) {
		return FileRef{}, false
	}
	return FileRef{Path: token}, true
}

func parseLineColSuffix(raw string) (FileRef, bool) {
	if idx := strings.LastIndex(raw, "#L"); idx >= 0 {
		path := raw[:idx]
		if !hasExplicitPathCue(path) {
			return FileRef{}, false
		}
		rest := raw[idx+2:]
		linePart, colPart, hasCol := strings.Cut(rest, "C")
		line, ok := parseDigits(linePart)
		if !ok {
			return FileRef{}, false
		}
		ref := FileRef{Path: path, Line: line}
		if hasCol {
			if col, ok := parseDigits(colPart); ok {
				ref.Col = col
			}
		}
		return ref, true
	}

	idx := strings.LastIndexByte(raw, ':')
	if idx < 0 {
		return FileRef{}, false
	}
	beforeLast, lastPart := raw[:idx], raw[idx+1:]
	lastNum, ok := parseDigits(lastPart)
	if !ok {
		return FileRef{}, false
	}
	if j := strings.LastIndexByte(beforeLast, ':'); j >= 0 {
		path, linePart := beforeLast[:j], beforeLast[j+1:]
		if line, ok := parseDigits(linePart); ok {
			if !hasExplicitPathCue(path) {
				return FileRef{}, false
			}
			return FileRef{Path: path, Line: line, Col: lastNum}, true
		}
	}
	if !hasExplicitPathCue(beforeLast) {
		return FileRef{}, false
	}
	return FileRef{Path: beforeLast, Line: lastNum}, true
}

// parseDigits parses a positive all-ASCII-digit number that fits in 32 bits.
func parseDigits(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return int(n), true
}

func hasExplicitPathCue(path string) bool {
	if path == "" {
		return false
	}
	if path == "." || path == ".." || path == "~" {
		return true
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") || strings.HasPrefix(path, "~/") {
		return true
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return true
	}
	if isWindowsDrive(path) {
		return true
	}
	return strings.ContainsAny(path, `/\`)
}

func isWindowsDrive(path string) bool {
	if len(path) < 3 {
		return false
	}
	c := path[0]
	isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	return isAlpha && path[1] == ':' && (path[2] == '/' || path[2] == '\\')
}

// IsAbsolutePath reports whether path is home-relative, rooted, or a
// Windows drive path.
func IsAbsolutePath(path string) bool {
	if path == "" {
		return false
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		return true
	}
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		return true
	}
	return isWindowsDrive(path)
}

// EncodeURIComponent percent-encodes every byte outside [A-Za-z0-9-_.~].
func EncodeURIComponent(value string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(value))
	for i := 0; i < len(value); i++ {
		b := value[i]
		switch {
		case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9',
			b == '-', b == '_', b == '.', b == '~':
			sb.WriteByte(b)
		default:
			sb.WriteByte('%')
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0x0f])
		}
	}
	return sb.String()
}

// BuildOpenURL builds the ctx://open URL for a file reference. Relative
// paths need a workspace id; without one no URL is produced.
func BuildOpenURL(ref FileRef, workspaceID string) (string, bool) {
	params := make([]string, 0, 4)
	if IsAbsolutePath(ref.Path) {
		params = append(params, "path="+EncodeURIComponent(ref.Path))
	} else {
		if workspaceID == "" {
			return "", false
		}
		params = append(params,
			"worktreeId="+EncodeURIComponent(workspaceID),
			"file="+EncodeURIComponent(ref.Path))
	}
	if ref.Line > 0 {
		params = append(params, "line="+strconv.Itoa(ref.Line))
	}
	if ref.Col > 0 {
		params = append(params, "col="+strconv.Itoa(ref.Col))
	}
	return OpenURLPrefix + strings.Join(params, "&"), true
}

// IsOpenURL reports whether url targets the host navigation handler.
func IsOpenURL(url string) bool {
	return strings.HasPrefix(url, OpenURLPrefix)
}

// Kind classifies a token.
type Kind int

const (
	KindNone Kind = iota
	KindURL
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindFile:
		return "file"
	default:
		return "none"
	}
}

// Match is the result of classifying a single token.
type Match struct {
	Kind Kind
	// URL is the link target; empty when the token cannot be linked.
	URL  string
	File FileRef
}

// Linkable reports whether the match produced a link target.
func (m Match) Linkable() bool {
	return m.URL != ""
}

// Classify runs the URL and file reference recognizers over a token.
// File references only get a URL when their path is absolute or a
// workspace id is known.
func Classify(token, workspaceID string) Match {
	if strings.TrimSpace(token) == "" || !utf8.ValidString(token) {
		return Match{}
	}
	if url, ok := ParseURL(token); ok {
		return Match{Kind: KindURL, URL: url}
	}
	ref, ok := ParseFileRef(token)
	if !ok {
		return Match{}
	}
	m := Match{Kind: KindFile, File: ref}
	if workspaceID != "" || IsAbsolutePath(ref.Path) {
		if url, ok := BuildOpenURL(ref, workspaceID); ok {
			m.URL = url
		}
	}
	return m
}
