package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority_Shorthand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  Priority
	}{
		{"u3i3", Priority{3, 3}},
		{"i2u1", Priority{1, 2}},
		{"u2i2", Priority{2, 2}},
		{"U2I3", Priority{2, 3}}, // case-insensitive
		{"u9i0", Priority{3, 1}}, // clamped
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParsePriority(tt.token)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority_Symbols(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  Priority
	}{
		{"!!!$$$", Priority{3, 3}},
		{"!$", Priority{1, 1}},
		{"!!", Priority{2, 1}},   // importance defaults to 1
		{"$$", Priority{1, 2}},   // urgency defaults to 1
		{"!!!!$", Priority{3, 1}}, // count clamped
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParsePriority(tt.token)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority_Rejects(t *testing.T) {
	t.Parallel()
	// A partial shorthand must never silently default the missing side,
	// and a symbol token with any foreign character is not notation.
	for _, token := range []string{"ui", "u", "i", "", "task!", "u2", "i3", "u2i", "abc", "!x$", "!! "} {
		t.Run(token, func(t *testing.T) {
			_, ok := ParsePriority(token)
			assert.False(t, ok, "token %q should not parse", token)
		})
	}
}

func TestSplitTitle(t *testing.T) {
	t.Parallel()
	title, p, found := SplitTitle("Ship release u2i3 tonight")
	assert.Equal(t, "Ship release tonight", title)
	assert.Equal(t, Priority{2, 3}, p)
	assert.True(t, found)

	// Last priority token wins.
	title, p, found = SplitTitle("thing u1i1 !!$$")
	assert.Equal(t, "thing", title)
	assert.Equal(t, Priority{2, 2}, p)
	assert.True(t, found)

	// No notation at all: defaults, found=false.
	title, p, found = SplitTitle("Buy milk")
	assert.Equal(t, "Buy milk", title)
	assert.Equal(t, Priority{1, 1}, p)
	assert.False(t, found)
}
