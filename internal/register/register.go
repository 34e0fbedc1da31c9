// Package register implements the register bank: the unnamed register,
// numbered registers 0-9 with vi's delete-shifting rule, named registers
// a-z with uppercase append, the +/* clipboard registers backed by a
// pluggable provider, and the _ black hole.
package register

import "github.com/dshills/vicore/internal/textbuf"

// Type categorizes registers by their behavior.
type Type uint8

const (
	// TypeUnnamed is the default register (").
	TypeUnnamed Type = iota

	// TypeNumbered is a numbered register (0-9).
	TypeNumbered

	// TypeNamed is a named register (a-z, A-Z).
	TypeNamed

	// TypeClipboard is a system clipboard register (+ or *).
	TypeClipboard

	// TypeBlackHole is the discard register (_).
	TypeBlackHole

	// TypeInvalid is any rune outside the register namespace.
	TypeInvalid
)

// Register holds one slot's content.
type Register struct {
	// Content is the stored text.
	Content string

	// Kind records whether the content is character-, line-, or
	// block-oriented, which paste uses to choose insertion style.
	Kind textbuf.RangeKind
}

// TypeOf classifies a register name.
func TypeOf(name rune) Type {
	switch {
	case name == '"':
		return TypeUnnamed
	case name >= '0' && name <= '9':
		return TypeNumbered
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return TypeNamed
	case name == '+', name == '*':
		return TypeClipboard
	case name == '_':
		return TypeBlackHole
	default:
		return TypeInvalid
	}
}

// IsValidName reports whether a rune names a register. The namespace is
// a-z, A-Z, 0-9, the unnamed register, the two clipboard registers, and
// the black hole.
func IsValidName(name rune) bool {
	return TypeOf(name) != TypeInvalid
}
