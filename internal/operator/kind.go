// Package operator executes operators over ranges produced by the motion
// engine or the text-object resolver: it expands the range per the
// motion's kind and inclusivity, mutates the buffer, and records cut or
// copied text in the register bank.
package operator

// Kind identifies an operator. The set is closed: the parser only
// produces values defined here and Apply matches them exhaustively.
type Kind int

const (
	// KindNone is the zero value; applying it is a no-op.
	KindNone Kind = iota

	// KindDelete is d.
	KindDelete
	// KindChange is c: delete, then enter insert mode.
	KindChange
	// KindYank is y.
	KindYank

	// KindIndent is >.
	KindIndent
	// KindOutdent is <.
	KindOutdent

	// KindFormat is =: resolved but surfaced to the host as a filter
	// request, never a buffer mutation.
	KindFormat
	// KindFilter is !: same surface as KindFormat.
	KindFilter
	// KindReflow is gq: same surface as KindFormat.
	KindReflow

	// KindToggleCase is g~.
	KindToggleCase
	// KindLowercase is gu.
	KindLowercase
	// KindUppercase is gU.
	KindUppercase
)

var kindNames = map[Kind]string{
	KindNone:       "none",
	KindDelete:     "delete",
	KindChange:     "change",
	KindYank:       "yank",
	KindIndent:     "indent",
	KindOutdent:    "outdent",
	KindFormat:     "format",
	KindFilter:     "filter",
	KindReflow:     "reflow",
	KindToggleCase: "toggle-case",
	KindLowercase:  "lowercase",
	KindUppercase:  "uppercase",
}

// String returns the operator name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// operatorKeys maps single-key operators.
var operatorKeys = map[rune]Kind{
	'd': KindDelete,
	'c': KindChange,
	'y': KindYank,
	'>': KindIndent,
	'<': KindOutdent,
	'=': KindFormat,
	'!': KindFilter,
}

// gOperatorKeys maps the second key of g-prefixed operators.
var gOperatorKeys = map[rune]Kind{
	'~': KindToggleCase,
	'u': KindLowercase,
	'U': KindUppercase,
	'q': KindReflow,
}

// FromKey returns the operator for a single operator key.
func FromKey(r rune) (Kind, bool) {
	k, ok := operatorKeys[r]
	return k, ok
}

// FromGKey returns the operator for the key following a g prefix.
func FromGKey(r rune) (Kind, bool) {
	k, ok := gOperatorKeys[r]
	return k, ok
}

// Key returns the key that triggers the operator. g-prefixed operators
// return their second key.
func (k Kind) Key() rune {
	for r, kind := range operatorKeys {
		if kind == k {
			return r
		}
	}
	for r, kind := range gOperatorKeys {
		if kind == k {
			return r
		}
	}
	return 0
}

// EntersInsert reports whether the operator transitions to insert mode
// after applying.
func (k Kind) EntersInsert() bool {
	return k == KindChange
}

// Mutates reports whether the operator modifies the buffer.
func (k Kind) Mutates() bool {
	switch k {
	case KindDelete, KindChange, KindIndent, KindOutdent,
		KindToggleCase, KindLowercase, KindUppercase:
		return true
	default:
		return false
	}
}

// WritesRegister reports whether the operator records to the register
// bank.
func (k Kind) WritesRegister() bool {
	switch k {
	case KindDelete, KindChange, KindYank:
		return true
	default:
		return false
	}
}
