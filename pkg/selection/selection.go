// Package selection maps pixel-space selection bounds onto character
// ranges of laid out text, and back onto the rectangles that paint them.
package selection

import (
	"unicode/utf8"

	"github.com/open-cli-collective/mdt/pkg/document"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

// Point is a position in pixels.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Size is an extent in pixels.
type Size struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Bounds is an axis-aligned rectangle.
type Bounds struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// FromCorners returns the rectangle spanning two corners.
func FromCorners(topLeft, bottomRight Point) Bounds {
	return Bounds{
		Origin: topLeft,
		Size:   Size{Width: bottomRight.X - topLeft.X, Height: bottomRight.Y - topLeft.Y},
	}
}

func (b Bounds) Top() float32    { return b.Origin.Y }
func (b Bounds) Bottom() float32 { return b.Origin.Y + b.Size.Height }
func (b Bounds) Left() float32   { return b.Origin.X }
func (b Bounds) Right() float32  { return b.Origin.X + b.Size.Width }

// Layout reports where characters of laid out text are drawn.
type Layout interface {
	// PositionForIndex returns the top-left corner of the character at a
	// byte index, or false when the index is not laid out.
	PositionForIndex(index int) (Point, bool)
}

// HitTester maps a pixel position back onto a byte index.
type HitTester interface {
	IndexForPosition(p Point) (int, bool)
}

// PointInTextSelection reports whether a character drawn at pos with the
// given width is inside bounds. On a single-line selection the character's
// midpoint must lie within the horizontal extent. On a multi-line selection
// the first row is open to the right, the last row is open to the left and
// interior rows are taken whole.
func PointInTextSelection(pos Point, charWidth float32, bounds Bounds, lineHeight float32) bool {
	top, bottom := bounds.Top(), bounds.Bottom()
	left, right := bounds.Left(), bounds.Right()

	if pos.Y+lineHeight < top || pos.Y >= bottom {
		return false
	}

	mid := pos.X + charWidth/2
	if bottom-top <= lineHeight {
		return mid >= left && mid <= right
	}

	switch {
	case pos.Y <= top:
		return mid >= left
	case pos.Y+lineHeight >= bottom:
		return mid <= right
	default:
		return true
	}
}

// Compute returns the byte range of text whose characters fall inside
// bounds. The range starts at the first selected character and ends after
// the last one; characters in between are not checked for gaps. Characters
// the layout does not place are skipped. ok is false when nothing is
// selected.
func Compute(text string, layout Layout, bounds Bounds, lineHeight float32) (r textrange.Range, ok bool) {
	for offset, size := 0, 0; offset < len(text); offset += size {
		_, size = utf8.DecodeRuneInString(text[offset:])
		pos, placed := layout.PositionForIndex(offset)
		if !placed {
			continue
		}
		next := offset + size

		width := lineHeight / 2
		if nextPos, placed := layout.PositionForIndex(next); placed && nextPos.Y == pos.Y {
			width = nextPos.X - pos.X
		}

		if !PointInTextSelection(pos, width, bounds, lineHeight) {
			continue
		}
		if !ok {
			r, ok = textrange.New(offset, offset), true
		}
		r.End = next
	}
	return r, ok
}

// RangeRects returns the rectangles covering a byte range: one on a single
// line, otherwise the tail of the first line, the full-width middle lines
// (when there are any) and the head of the last line. bounds gives the
// left and right edges of the text. Nil is returned when either end of the
// range is not laid out.
func RangeRects(r textrange.Range, layout Layout, bounds Bounds, lineHeight float32) []Bounds {
	start, end := r.Start, r.End
	if end < start {
		start, end = end, start
	}
	startPos, ok := layout.PositionForIndex(start)
	if !ok {
		return nil
	}
	endPos, ok := layout.PositionForIndex(end)
	if !ok {
		return nil
	}

	if startPos.Y == endPos.Y {
		return []Bounds{FromCorners(startPos, Point{X: endPos.X, Y: endPos.Y + lineHeight})}
	}

	rects := []Bounds{FromCorners(startPos, Point{X: bounds.Right(), Y: startPos.Y + lineHeight})}
	if endPos.Y > startPos.Y+lineHeight {
		rects = append(rects, FromCorners(
			Point{X: bounds.Left(), Y: startPos.Y + lineHeight},
			Point{X: bounds.Right(), Y: endPos.Y},
		))
	}
	return append(rects, FromCorners(
		Point{X: bounds.Left(), Y: endPos.Y},
		Point{X: endPos.X, Y: endPos.Y + lineHeight},
	))
}

// Pad grows b by padX on the left and right and padY on the top and bottom.
func Pad(b Bounds, padX, padY float32) Bounds {
	return FromCorners(
		Point{X: b.Left() - padX, Y: b.Top() - padY},
		Point{X: b.Right() + padX, Y: b.Bottom() + padY},
	)
}

// Text returns the selected text, clamped to text.
func Text(text string, r textrange.Range) string {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r.Slice(text)
}

// Link is a link target over a byte range of laid out text.
type Link struct {
	textrange.Range
	Target document.LinkMark `json:"target"`
}

// LinkAtIndex returns the first link whose range contains index.
func LinkAtIndex(links []Link, index int) (document.LinkMark, bool) {
	for _, l := range links {
		if l.Contains(index) {
			return l.Target, true
		}
	}
	return document.LinkMark{}, false
}

// LinkAt returns the link under a pointer position. Links that require a
// modifier are only returned while modifier is held.
func LinkAt(links []Link, hit HitTester, pos Point, modifier bool) (document.LinkMark, bool) {
	index, ok := hit.IndexForPosition(pos)
	if !ok {
		return document.LinkMark{}, false
	}
	link, ok := LinkAtIndex(links, index)
	if !ok || (link.RequiresModifiers && !modifier) {
		return document.LinkMark{}, false
	}
	return link, true
}
