// Package layout places text on a fixed grid of character cells. It stands
// in for a real text shaper when computing selections and link hits in the
// CLI and in tests.
package layout

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/open-cli-collective/mdt/pkg/selection"
)

// Options configures a Mono layout.
type Options struct {
	Origin     selection.Point
	CellWidth  float32
	LineHeight float32
	// Columns wraps lines wider than this many cells; 0 disables wrapping.
	Columns int
}

type cell struct {
	col, row, width int
	placed          bool
}

// Mono lays text out on a monospace grid. Wide runes take two cells,
// zero-width runes take none and '\n' starts a new row.
type Mono struct {
	opts  Options
	text  string
	cells []cell // indexed by byte offset; len(text)+1 entries
	rows  int
	cols  int
}

// NewMono lays out text.
func NewMono(text string, opts Options) *Mono {
	m := &Mono{opts: opts, text: text, cells: make([]cell, len(text)+1)}

	col, row := 0, 0
	for offset := 0; offset < len(text); {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' {
			m.cells[offset] = cell{col: col, row: row, placed: true}
			m.grow(col)
			row++
			col = 0
			offset += size
			continue
		}
		w := runewidth.RuneWidth(r)
		if opts.Columns > 0 && col > 0 && col+w > opts.Columns {
			row++
			col = 0
		}
		m.cells[offset] = cell{col: col, row: row, width: w, placed: true}
		col += w
		m.grow(col)
		offset += size
	}
	m.cells[len(text)] = cell{col: col, row: row, placed: true}
	m.rows = row + 1
	return m
}

func (m *Mono) grow(col int) {
	if col > m.cols {
		m.cols = col
	}
}

// Text returns the laid out text.
func (m *Mono) Text() string { return m.text }

// LineHeight returns the height of one row.
func (m *Mono) LineHeight() float32 { return m.opts.LineHeight }

// Rows returns the number of rows used.
func (m *Mono) Rows() int { return m.rows }

// Bounds returns the rectangle occupied by the text.
func (m *Mono) Bounds() selection.Bounds {
	return selection.Bounds{
		Origin: m.opts.Origin,
		Size: selection.Size{
			Width:  float32(m.cols) * m.opts.CellWidth,
			Height: float32(m.rows) * m.opts.LineHeight,
		},
	}
}

func (m *Mono) point(c cell) selection.Point {
	return selection.Point{
		X: m.opts.Origin.X + float32(c.col)*m.opts.CellWidth,
		Y: m.opts.Origin.Y + float32(c.row)*m.opts.LineHeight,
	}
}

// PositionForIndex implements selection.Layout. Offsets inside a multi-byte
// rune are not placed; len(text) is placed after the last rune.
func (m *Mono) PositionForIndex(index int) (selection.Point, bool) {
	if index < 0 || index >= len(m.cells) || !m.cells[index].placed {
		return selection.Point{}, false
	}
	return m.point(m.cells[index]), true
}

// IndexForPosition implements selection.HitTester. It returns the byte
// offset of the rune whose cells contain p.
func (m *Mono) IndexForPosition(p selection.Point) (int, bool) {
	if m.opts.CellWidth <= 0 || m.opts.LineHeight <= 0 {
		return 0, false
	}
	dx := p.X - m.opts.Origin.X
	dy := p.Y - m.opts.Origin.Y
	if dx < 0 || dy < 0 {
		return 0, false
	}
	row := int(dy / m.opts.LineHeight)
	col := int(dx / m.opts.CellWidth)
	for offset, c := range m.cells[:len(m.text)] {
		if !c.placed || c.row != row || c.width == 0 {
			continue
		}
		if col >= c.col && col < c.col+c.width {
			return offset, true
		}
	}
	return 0, false
}
