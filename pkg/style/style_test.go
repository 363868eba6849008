package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"short", "#f00", RGB(255, 0, 0), false},
		{"long", "#0a0b0c", RGB(10, 11, 12), false},
		{"alpha", "#01020380", Color{1, 2, 3, 128}, false},
		{"no hash", "ffffff", RGB(255, 255, 255), false},
		{"bad length", "#12345", Color{}, true},
		{"bad digits", "#zzzzzz", Color{}, true},
		{"bad alpha", "#010203zz", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#0000ee", LinkBlue.Hex())
	assert.Equal(t, "#01020380", Color{1, 2, 3, 128}.Hex())
}

func TestHighlight_Apply(t *testing.T) {
	red := RGB(255, 0, 0)
	base := Text{FontFamily: "Inter", FontSize: 14, Color: Black}

	got := Highlight{Color: &red, Bold: true}.Apply(base)
	assert.Equal(t, red, got.Color)
	assert.True(t, got.Bold)
	assert.False(t, got.Italic)
	assert.Equal(t, "Inter", got.FontFamily)

	assert.True(t, Highlight{}.IsZero())
	assert.Equal(t, base, Highlight{}.Apply(base))
}

func TestInlineCode(t *testing.T) {
	assert.False(t, InlineCode{}.IsEnabled())
	assert.True(t, InlineCode{PaddingX: 2}.IsEnabled())

	green := RGB(0, 128, 0)
	code := InlineCode{FontFamily: "Menlo", FontSize: 12, TextColor: &green}
	got := code.Apply(Text{FontFamily: "Inter", FontSize: 14, Bold: true})
	assert.Equal(t, "Menlo", got.FontFamily)
	assert.EqualValues(t, 12, got.FontSize)
	assert.Equal(t, green, got.Color)
	assert.True(t, got.Bold)
}

func TestText_Equal(t *testing.T) {
	bg1, bg2 := RGB(1, 1, 1), RGB(1, 1, 1)
	a := Text{Color: Black, Background: &bg1}
	b := Text{Color: Black, Background: &bg2}
	assert.True(t, a.Equal(b))
	b.Background = nil
	assert.False(t, a.Equal(b))
}
