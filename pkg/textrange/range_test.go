package textrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_Len(t *testing.T) {
	tests := []struct {
		name  string
		r     Range
		want  int
		empty bool
	}{
		{"normal", New(2, 5), 3, false},
		{"empty", New(4, 4), 0, true},
		{"inverted", New(5, 2), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Len())
			assert.Equal(t, tt.empty, tt.r.IsEmpty())
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := New(2, 4)
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(4))
}

func TestRange_Covers(t *testing.T) {
	r := New(2, 8)
	assert.True(t, r.Covers(New(2, 8)))
	assert.True(t, r.Covers(New(3, 5)))
	assert.False(t, r.Covers(New(1, 5)))
	assert.False(t, r.Covers(New(5, 9)))
}

func TestRange_Slice(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want string
	}{
		{"inside", New(1, 3), "el"},
		{"clamped end", New(3, 99), "lo"},
		{"clamped start", New(-2, 2), "he"},
		{"inverted", New(4, 1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.Slice("hello"))
		})
	}
}

func TestRange_ShiftAndString(t *testing.T) {
	r := New(1, 3).Shift(10)
	assert.Equal(t, New(11, 13), r)
	assert.Equal(t, "11..13", r.String())
}
