package textbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphemeCount(t *testing.T) {
	assert.Equal(t, 0, GraphemeCount(""))
	assert.Equal(t, 5, GraphemeCount("hello"))
	// "e" followed by a combining accent renders as one character.
	assert.Equal(t, 4, GraphemeCount("café"))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, DisplayWidth("hello"))
	// CJK characters occupy two cells each.
	assert.Equal(t, 4, DisplayWidth("世界"))
}

func TestWidthAt(t *testing.T) {
	s := "a世b"
	assert.Equal(t, 0, WidthAt(s, 0))
	assert.Equal(t, 1, WidthAt(s, 1))
	// offset past the CJK rune includes its double width
	assert.Equal(t, 3, WidthAt(s, 1+len("世")))
	assert.Equal(t, 4, WidthAt(s, len(s)))
}

func TestGraphemeStart(t *testing.T) {
	s := "éx" // cluster [0,3), then 'x' at 3
	assert.Equal(t, 0, GraphemeStart(s, 0))
	assert.Equal(t, 0, GraphemeStart(s, 1))
	assert.Equal(t, 0, GraphemeStart(s, 2))
	assert.Equal(t, 3, GraphemeStart(s, 3))
}

func TestNextGrapheme(t *testing.T) {
	s := "éx"
	assert.Equal(t, 3, NextGrapheme(s, 0))
	assert.Equal(t, 4, NextGrapheme(s, 3))
	assert.Equal(t, len(s), NextGrapheme(s, len(s)))
}
