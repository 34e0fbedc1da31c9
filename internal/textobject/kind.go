// Package textobject resolves text objects (iw, a", i(, it, ...) around a
// cursor position into the same anchor/head ranges motions produce.
package textobject

// Kind identifies a text object. The set is closed: the parser only
// produces values defined here and Resolve matches them exhaustively.
type Kind int

const (
	// KindNone is the zero value; it resolves to nothing.
	KindNone Kind = iota

	// KindWord is w: a run of word or punctuation characters.
	KindWord
	// KindBigWord is W: a run of non-whitespace.
	KindBigWord

	// KindQuoteDouble is ".
	KindQuoteDouble
	// KindQuoteSingle is '.
	KindQuoteSingle
	// KindQuoteBack is `.
	KindQuoteBack

	// KindParen is ( ) or b.
	KindParen
	// KindBracket is [ ].
	KindBracket
	// KindBrace is { } or B.
	KindBrace
	// KindAngle is < >.
	KindAngle

	// KindSentence is s.
	KindSentence
	// KindParagraph is p.
	KindParagraph
	// KindTag is t: an HTML-like <name>...</name> pair.
	KindTag
)

var kindNames = map[Kind]string{
	KindNone:        "none",
	KindWord:        "word",
	KindBigWord:     "big-word",
	KindQuoteDouble: "double-quote",
	KindQuoteSingle: "single-quote",
	KindQuoteBack:   "backtick",
	KindParen:       "paren",
	KindBracket:     "bracket",
	KindBrace:       "brace",
	KindAngle:       "angle",
	KindSentence:    "sentence",
	KindParagraph:   "paragraph",
	KindTag:         "tag",
}

// String returns the object name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Modifier selects the inner or around variant of an object.
type Modifier int

const (
	// ModifierNone is the zero value.
	ModifierNone Modifier = iota
	// ModifierInner is i: the object content only.
	ModifierInner
	// ModifierAround is a: the object plus its delimiters or trailing
	// whitespace.
	ModifierAround
)

// String returns the modifier name.
func (m Modifier) String() string {
	switch m {
	case ModifierInner:
		return "inner"
	case ModifierAround:
		return "around"
	default:
		return "none"
	}
}

// objectKeys maps the key following i or a to its object.
var objectKeys = map[rune]Kind{
	'w':  KindWord,
	'W':  KindBigWord,
	'"':  KindQuoteDouble,
	'\'': KindQuoteSingle,
	'`':  KindQuoteBack,
	'(':  KindParen,
	')':  KindParen,
	'b':  KindParen,
	'[':  KindBracket,
	']':  KindBracket,
	'{':  KindBrace,
	'}':  KindBrace,
	'B':  KindBrace,
	'<':  KindAngle,
	'>':  KindAngle,
	's':  KindSentence,
	'p':  KindParagraph,
	't':  KindTag,
}

// FromKey returns the object for the key following an i or a modifier.
func FromKey(r rune) (Kind, bool) {
	k, ok := objectKeys[r]
	return k, ok
}

// ModifierFromKey returns the modifier for an i or a key.
func ModifierFromKey(r rune) (Modifier, bool) {
	switch r {
	case 'i':
		return ModifierInner, true
	case 'a':
		return ModifierAround, true
	default:
		return ModifierNone, false
	}
}

// quoteRune returns the delimiter for quote objects, or 0.
func (k Kind) quoteRune() rune {
	switch k {
	case KindQuoteDouble:
		return '"'
	case KindQuoteSingle:
		return '\''
	case KindQuoteBack:
		return '`'
	default:
		return 0
	}
}

// bracketRunes returns the delimiter pair for bracket objects, or zeros.
func (k Kind) bracketRunes() (open, close rune) {
	switch k {
	case KindParen:
		return '(', ')'
	case KindBracket:
		return '[', ']'
	case KindBrace:
		return '{', '}'
	case KindAngle:
		return '<', '>'
	default:
		return 0, 0
	}
}
