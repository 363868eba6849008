// Package style defines the visual attributes applied to painted text runs.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// Hex formats the color as #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return c.Hex()
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (Color, error) {
	v := strings.TrimPrefix(s, "#")
	alpha := uint64(255)
	if len(v) == 8 {
		a, err := strconv.ParseUint(v[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		alpha, v = a, v[:6]
	}
	c, err := colorful.Hex("#" + v)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// Common colors
var (
	Black    = RGB(0, 0, 0)
	LinkBlue = RGB(0, 0, 238)
)

// Text is a fully resolved text style, the unit a run is painted with.
type Text struct {
	FontFamily    string  `json:"font_family,omitempty"`
	FontSize      float32 `json:"font_size,omitempty"`
	Color         Color   `json:"color"`
	Background    *Color  `json:"background,omitempty"`
	Bold          bool    `json:"bold,omitempty"`
	Italic        bool    `json:"italic,omitempty"`
	Underline     bool    `json:"underline,omitempty"`
	Strikethrough bool    `json:"strikethrough,omitempty"`
}

// Equal reports whether two resolved styles paint identically.
func (t Text) Equal(o Text) bool {
	if t.FontFamily != o.FontFamily || t.FontSize != o.FontSize || t.Color != o.Color {
		return false
	}
	if t.Bold != o.Bold || t.Italic != o.Italic || t.Underline != o.Underline || t.Strikethrough != o.Strikethrough {
		return false
	}
	if (t.Background == nil) != (o.Background == nil) {
		return false
	}
	return t.Background == nil || *t.Background == *o.Background
}

// Highlight is a partial style layered over a base Text style.
// Nil colors and false flags leave the base untouched.
type Highlight struct {
	Color         *Color `json:"color,omitempty"`
	Background    *Color `json:"background,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Underline     bool   `json:"underline,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
}

// IsZero reports whether the highlight changes nothing.
func (h Highlight) IsZero() bool {
	return h.Color == nil && h.Background == nil && !h.Bold && !h.Italic && !h.Underline && !h.Strikethrough
}

// Apply layers the highlight over t.
func (h Highlight) Apply(t Text) Text {
	if h.Color != nil {
		t.Color = *h.Color
	}
	if h.Background != nil {
		bg := *h.Background
		t.Background = &bg
	}
	t.Bold = t.Bold || h.Bold
	t.Italic = t.Italic || h.Italic
	t.Underline = t.Underline || h.Underline
	t.Strikethrough = t.Strikethrough || h.Strikethrough
	return t
}

// Merge combines two highlights; fields set in o win.
func (h Highlight) Merge(o Highlight) Highlight {
	if o.Color != nil {
		h.Color = o.Color
	}
	if o.Background != nil {
		h.Background = o.Background
	}
	h.Bold = h.Bold || o.Bold
	h.Italic = h.Italic || o.Italic
	h.Underline = h.Underline || o.Underline
	h.Strikethrough = h.Strikethrough || o.Strikethrough
	return h
}

// Equal compares two highlights by value.
func (h Highlight) Equal(o Highlight) bool {
	return colorPtrEqual(h.Color, o.Color) && colorPtrEqual(h.Background, o.Background) &&
		h.Bold == o.Bold && h.Italic == o.Italic && h.Underline == o.Underline && h.Strikethrough == o.Strikethrough
}

func colorPtrEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// InlineCode holds overrides painted over inline code spans.
type InlineCode struct {
	FontFamily      string  `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	FontSize        float32 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	TextColor       *Color  `json:"text_color,omitempty" yaml:"-"`
	BackgroundColor *Color  `json:"background_color,omitempty" yaml:"-"`
	BorderColor     *Color  `json:"border_color,omitempty" yaml:"-"`
	BorderWidth     float32 `json:"border_width,omitempty" yaml:"border_width,omitempty"`
	BorderRadius    float32 `json:"border_radius,omitempty" yaml:"border_radius,omitempty"`
	PaddingX        float32 `json:"padding_x,omitempty" yaml:"padding_x,omitempty"`
	PaddingY        float32 `json:"padding_y,omitempty" yaml:"padding_y,omitempty"`
}

// IsEnabled reports whether any override is set.
func (c InlineCode) IsEnabled() bool {
	return c.FontFamily != "" ||
		c.FontSize != 0 ||
		c.TextColor != nil ||
		c.BackgroundColor != nil ||
		c.BorderColor != nil ||
		c.BorderWidth != 0 ||
		c.BorderRadius != 0 ||
		c.PaddingX != 0 ||
		c.PaddingY != 0
}

// Apply overrides the font family, size and color of t.
func (c InlineCode) Apply(t Text) Text {
	if c.FontFamily != "" {
		t.FontFamily = c.FontFamily
	}
	if c.FontSize != 0 {
		t.FontSize = c.FontSize
	}
	if c.TextColor != nil {
		t.Color = *c.TextColor
	}
	return t
}
