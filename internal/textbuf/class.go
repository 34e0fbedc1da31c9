package textbuf

import "unicode"

// CharClass buckets a rune for word-boundary decisions. Word motions and
// word text objects share the same three-class model.
type CharClass int

const (
	// ClassSpace is any whitespace, including newlines.
	ClassSpace CharClass = iota
	// ClassWord is [A-Za-z0-9_].
	ClassWord
	// ClassPunct is any other non-space rune.
	ClassPunct
)

// IsWordRune reports whether r is a word character.
func IsWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// ClassOf classifies r. With big set, any non-space rune is ClassWord,
// matching the WORD motions that ignore punctuation boundaries.
func ClassOf(r rune, big bool) CharClass {
	if unicode.IsSpace(r) {
		return ClassSpace
	}
	if big || IsWordRune(r) {
		return ClassWord
	}
	return ClassPunct
}
