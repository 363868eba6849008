package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/mdt/pkg/selection"
	"github.com/open-cli-collective/mdt/pkg/textrange"
)

var grid = Options{CellWidth: 10, LineHeight: 20}

func TestMono_PositionForIndex(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		opts   Options
		index  int
		want   selection.Point
		wantOK bool
	}{
		{"first", "ab\ncd", grid, 0, selection.Point{X: 0, Y: 0}, true},
		{"second", "ab\ncd", grid, 1, selection.Point{X: 10, Y: 0}, true},
		{"newline", "ab\ncd", grid, 2, selection.Point{X: 20, Y: 0}, true},
		{"after newline", "ab\ncd", grid, 3, selection.Point{X: 0, Y: 20}, true},
		{"end of text", "ab\ncd", grid, 5, selection.Point{X: 20, Y: 20}, true},
		{"past end", "ab\ncd", grid, 6, selection.Point{}, false},
		{"negative", "ab", grid, -1, selection.Point{}, false},
		{"wrapped", "abcdef", Options{CellWidth: 10, LineHeight: 20, Columns: 3}, 3, selection.Point{X: 0, Y: 20}, true},
		{"wide rune", "中a", grid, 3, selection.Point{X: 20, Y: 0}, true},
		{"inside rune", "中a", grid, 1, selection.Point{}, false},
		{"origin", "ab", Options{Origin: selection.Point{X: 5, Y: 7}, CellWidth: 10, LineHeight: 20}, 1, selection.Point{X: 15, Y: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewMono(tt.text, tt.opts).PositionForIndex(tt.index)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMono_IndexForPosition(t *testing.T) {
	m := NewMono("中a\nxy", grid)

	tests := []struct {
		name   string
		point  selection.Point
		want   int
		wantOK bool
	}{
		{"wide first cell", selection.Point{X: 5, Y: 5}, 0, true},
		{"wide second cell", selection.Point{X: 15, Y: 5}, 0, true},
		{"after wide", selection.Point{X: 25, Y: 5}, 3, true},
		{"second row", selection.Point{X: 12, Y: 30}, 6, true},
		{"past row end", selection.Point{X: 95, Y: 30}, 0, false},
		{"below text", selection.Point{X: 5, Y: 90}, 0, false},
		{"left of origin", selection.Point{X: -1, Y: 5}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.IndexForPosition(tt.point)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMono_Bounds(t *testing.T) {
	m := NewMono("abc\nd", grid)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, selection.Size{Width: 30, Height: 40}, m.Bounds().Size)
	assert.Equal(t, float32(20), m.LineHeight())
	assert.Equal(t, "abc\nd", m.Text())
}

func TestMono_Selection(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		text := "hello world"
		m := NewMono(text, grid)
		bounds := selection.FromCorners(selection.Point{X: 20, Y: 0}, selection.Point{X: 60, Y: 20})

		r, ok := selection.Compute(text, m, bounds, m.LineHeight())
		require.True(t, ok)
		assert.Equal(t, textrange.New(2, 6), r)
		assert.Equal(t, "llo ", selection.Text(text, r))
	})

	t.Run("multi line", func(t *testing.T) {
		text := "abc\ndef\nghi"
		m := NewMono(text, grid)
		bounds := selection.FromCorners(selection.Point{X: 15, Y: 0}, selection.Point{X: 20, Y: 60})

		r, ok := selection.Compute(text, m, bounds, m.LineHeight())
		require.True(t, ok)
		assert.Equal(t, textrange.New(1, 10), r)
		assert.Equal(t, "bc\ndef\ngh", selection.Text(text, r))

		rects := selection.RangeRects(r, m, m.Bounds(), m.LineHeight())
		require.Len(t, rects, 3)
		assert.Equal(t, selection.FromCorners(selection.Point{X: 10, Y: 0}, selection.Point{X: 30, Y: 20}), rects[0])
		assert.Equal(t, selection.FromCorners(selection.Point{X: 0, Y: 20}, selection.Point{X: 30, Y: 40}), rects[1])
		assert.Equal(t, selection.FromCorners(selection.Point{X: 0, Y: 40}, selection.Point{X: 20, Y: 60}), rects[2])
	})

	t.Run("nothing selected", func(t *testing.T) {
		m := NewMono("abc", grid)
		bounds := selection.FromCorners(selection.Point{X: 0, Y: 100}, selection.Point{X: 30, Y: 120})
		_, ok := selection.Compute("abc", m, bounds, m.LineHeight())
		assert.False(t, ok)
	})
}
