// Package textrange provides half-open byte ranges over UTF-8 text.
package textrange

import "fmt"

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New creates a range from start to end.
func New(start, end int) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of bytes covered, or 0 for inverted ranges.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Contains reports whether offset lies inside the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Covers reports whether other lies entirely inside r.
func (r Range) Covers(other Range) bool {
	return r.Start <= other.Start && r.End >= other.End
}

// Shift returns the range moved by delta bytes.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// Slice returns the substring of s covered by the range, clamped to s.
func (r Range) Slice(s string) string {
	start, end := clamp(r.Start, 0, len(s)), clamp(r.End, 0, len(s))
	if end < start {
		return ""
	}
	return s[start:end]
}

func (r Range) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
