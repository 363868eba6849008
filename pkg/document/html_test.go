package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTMLFragment_IsBreak(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"<br>", true},
		{" <br/> ", true},
		{"<!-- note --><br>", true},
		{"<br><br>", false},
		{"<br>x", false},
		{"<span>x</span>", false},
		{"<p><br></p>", false},
		{"</div>", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			frag, err := parseHTMLFragment(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, frag.isBreak())
		})
	}
}

func TestParseHTMLFragment_NoMarkup(t *testing.T) {
	_, err := parseHTMLFragment("just text")
	assert.ErrorIs(t, err, errNoMarkup)
}

func TestHTMLFragment_Text(t *testing.T) {
	frag, err := parseHTMLFragment("<div> a <b>bold</b> </div>")
	require.NoError(t, err)
	assert.Equal(t, "a bold", frag.text())
}
