// Package textrun splits text into styled runs from overlapping layers of
// highlight ranges and inline-code ranges.
//
// Every start and end of every input range becomes a breakpoint. Each piece
// between adjacent breakpoints takes the style of the highlight range that
// fully contains it, if any, and the inline-code override when a code range
// fully contains it.
package textrun

import (
	"sort"

	"github.com/open-cli-collective/mdt/pkg/style"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// Highlight is a styled range of the text.
type Highlight struct {
	textrange.Range
	Style style.Highlight `json:"style"`
}

// Piece is one cell of the breakpoint partition.
type Piece struct {
	textrange.Range
	// Highlight is the index of the containing highlight, or -1.
	Highlight int  `json:"highlight"`
	Code      bool `json:"code,omitempty"`
}

// Run is a range painted with one resolved style.
type Run struct {
	textrange.Range
	Style style.Text `json:"style"`
}

// Breakpoints returns the sorted, distinct offsets 0, length and every
// range boundary, clamped to [0, length].
func Breakpoints(length int, highlights []Highlight, code []textrange.Range) []int {
	if length <= 0 {
		return nil
	}
	points := make([]int, 0, 2+2*len(highlights)+2*len(code))
	points = append(points, 0, length)
	for _, h := range highlights {
		points = append(points, clamp(h.Start, length), clamp(h.End, length))
	}
	for _, c := range code {
		points = append(points, clamp(c.Start, length), clamp(c.End, length))
	}
	sort.Ints(points)

	out := points[:1]
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// Partition divides [0, length) at the breakpoints of both range sets.
// Highlights must not overlap one another, nor may code ranges; a highlight
// may overlap a code range. The pieces are ordered, gap-free and non-empty.
func Partition(length int, highlights []Highlight, code []textrange.Range) []Piece {
	points := Breakpoints(length, highlights, code)
	if len(points) < 2 {
		return nil
	}

	hl := newCursor(len(highlights), func(i int) textrange.Range { return highlights[i].Range })
	cr := newCursor(len(code), func(i int) textrange.Range { return code[i] })

	pieces := make([]Piece, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		r := textrange.New(points[i-1], points[i])
		if r.IsEmpty() {
			continue
		}
		pieces = append(pieces, Piece{
			Range:     r,
			Highlight: hl.containing(r),
			Code:      cr.containing(r) >= 0,
		})
	}
	return pieces
}

// Segment resolves the partition into styled runs. A piece starts from
// base, takes its highlight, then the inline-code font, size and color when
// code is enabled. Adjacent runs with equal styles are merged. When code is
// disabled the code ranges do not split runs at all.
func Segment(length int, base style.Text, highlights []Highlight, code []textrange.Range, codeStyle style.InlineCode) []Run {
	if !codeStyle.IsEnabled() {
		code = nil
	}
	pieces := Partition(length, highlights, code)

	runs := make([]Run, 0, len(pieces))
	for _, p := range pieces {
		st := base
		if p.Highlight >= 0 {
			st = highlights[p.Highlight].Style.Apply(st)
		}
		if p.Code {
			st = codeStyle.Apply(st)
		}
		if n := len(runs); n > 0 && runs[n-1].End == p.Start && runs[n-1].Style.Equal(st) {
			runs[n-1].End = p.End
			continue
		}
		runs = append(runs, Run{Range: p.Range, Style: st})
	}
	return runs
}

// Length returns the number of bytes covered by runs.
func Length(runs []Run) int {
	n := 0
	for _, r := range runs {
		n += r.Len()
	}
	return n
}

// cursor walks ranges in start order while pieces advance left to right.
type cursor struct {
	order []int
	at    func(int) textrange.Range
	pos   int
}

func newCursor(n int, at func(int) textrange.Range) *cursor {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return at(order[a]).Start < at(order[b]).Start
	})
	return &cursor{order: order, at: at}
}

// containing returns the index of the range that fully contains r, or -1.
// Calls must come with non-decreasing r.Start.
func (c *cursor) containing(r textrange.Range) int {
	for c.pos < len(c.order) && c.at(c.order[c.pos]).End <= r.Start {
		c.pos++
	}
	for i := c.pos; i < len(c.order); i++ {
		candidate := c.at(c.order[i])
		if candidate.Start > r.Start {
			break
		}
		if candidate.Covers(r) {
			return c.order[i]
		}
	}
	return -1
}

func clamp(v, length int) int {
	if v < 0 {
		return 0
	}
	if v > length {
		return length
	}
	return v
}
