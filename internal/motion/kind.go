// Package motion computes cursor movement over a buffer snapshot. Given a
// starting position, a motion kind, a count, and (for find motions) a
// target character, Resolve produces the anchor/head pair and inclusivity
// flag operators consume.
package motion

// Kind identifies a motion. The set is closed: the parser only produces
// values defined here and Resolve matches them exhaustively.
type Kind int

const (
	// KindNone is the zero value; it resolves to nothing.
	KindNone Kind = iota

	// KindLeft is h.
	KindLeft
	// KindRight is l.
	KindRight
	// KindUp is k.
	KindUp
	// KindDown is j.
	KindDown

	// KindWordForward is w.
	KindWordForward
	// KindWordBackward is b.
	KindWordBackward
	// KindWordEnd is e.
	KindWordEnd
	// KindWordEndBackward is ge.
	KindWordEndBackward
	// KindBigWordForward is W.
	KindBigWordForward
	// KindBigWordBackward is B.
	KindBigWordBackward
	// KindBigWordEnd is E.
	KindBigWordEnd
	// KindBigWordEndBackward is gE.
	KindBigWordEndBackward

	// KindLineStart is 0.
	KindLineStart
	// KindFirstNonBlank is ^.
	KindFirstNonBlank
	// KindLineEnd is $.
	KindLineEnd
	// KindLastNonBlank is g_.
	KindLastNonBlank

	// KindFindForward is f.
	KindFindForward
	// KindFindBackward is F.
	KindFindBackward
	// KindTillForward is t.
	KindTillForward
	// KindTillBackward is T.
	KindTillBackward

	// KindParagraphForward is }.
	KindParagraphForward
	// KindParagraphBackward is {.
	KindParagraphBackward
	// KindSentenceForward is ).
	KindSentenceForward
	// KindSentenceBackward is (.
	KindSentenceBackward

	// KindDocumentStart is gg.
	KindDocumentStart
	// KindDocumentEnd is G.
	KindDocumentEnd

	// KindMatchPair is %.
	KindMatchPair
)

var kindNames = map[Kind]string{
	KindNone:               "none",
	KindLeft:               "left",
	KindRight:              "right",
	KindUp:                 "up",
	KindDown:               "down",
	KindWordForward:        "word-forward",
	KindWordBackward:       "word-backward",
	KindWordEnd:            "word-end",
	KindWordEndBackward:    "word-end-backward",
	KindBigWordForward:     "big-word-forward",
	KindBigWordBackward:    "big-word-backward",
	KindBigWordEnd:         "big-word-end",
	KindBigWordEndBackward: "big-word-end-backward",
	KindLineStart:          "line-start",
	KindFirstNonBlank:      "first-non-blank",
	KindLineEnd:            "line-end",
	KindLastNonBlank:       "last-non-blank",
	KindFindForward:        "find-forward",
	KindFindBackward:       "find-backward",
	KindTillForward:        "till-forward",
	KindTillBackward:       "till-backward",
	KindParagraphForward:   "paragraph-forward",
	KindParagraphBackward:  "paragraph-backward",
	KindSentenceForward:    "sentence-forward",
	KindSentenceBackward:   "sentence-backward",
	KindDocumentStart:      "document-start",
	KindDocumentEnd:        "document-end",
	KindMatchPair:          "match-pair",
}

// String returns the motion name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// simpleMotions maps single-key motions.
var simpleMotions = map[rune]Kind{
	'h': KindLeft,
	'l': KindRight,
	'k': KindUp,
	'j': KindDown,
	'w': KindWordForward,
	'b': KindWordBackward,
	'e': KindWordEnd,
	'W': KindBigWordForward,
	'B': KindBigWordBackward,
	'E': KindBigWordEnd,
	'0': KindLineStart,
	'^': KindFirstNonBlank,
	'$': KindLineEnd,
	'}': KindParagraphForward,
	'{': KindParagraphBackward,
	')': KindSentenceForward,
	'(': KindSentenceBackward,
	'G': KindDocumentEnd,
	'%': KindMatchPair,
}

// gMotions maps the second key of g-prefixed motions.
var gMotions = map[rune]Kind{
	'g': KindDocumentStart,
	'e': KindWordEndBackward,
	'E': KindBigWordEndBackward,
	'_': KindLastNonBlank,
}

// charSearchMotions maps char-seeking motion keys.
var charSearchMotions = map[rune]Kind{
	'f': KindFindForward,
	'F': KindFindBackward,
	't': KindTillForward,
	'T': KindTillBackward,
}

// FromKey returns the motion for a single-key motion.
func FromKey(r rune) (Kind, bool) {
	k, ok := simpleMotions[r]
	return k, ok
}

// FromGKey returns the motion for the key following a g prefix.
func FromGKey(r rune) (Kind, bool) {
	k, ok := gMotions[r]
	return k, ok
}

// FromCharSearchKey returns the motion for a char-seeking key (f F t T).
func FromCharSearchKey(r rune) (Kind, bool) {
	k, ok := charSearchMotions[r]
	return k, ok
}

// NeedsChar reports whether the motion waits for a target character.
func (k Kind) NeedsChar() bool {
	switch k {
	case KindFindForward, KindFindBackward, KindTillForward, KindTillBackward:
		return true
	default:
		return false
	}
}

// inclusive reports whether the character at the head is part of an
// operated range.
func (k Kind) inclusive() bool {
	switch k {
	case KindWordEnd, KindBigWordEnd, KindWordEndBackward, KindBigWordEndBackward,
		KindLineEnd, KindLastNonBlank, KindFindForward, KindTillForward, KindMatchPair:
		return true
	default:
		return false
	}
}

// linewise reports whether the motion covers whole lines when consumed by
// an operator.
func (k Kind) linewise() bool {
	switch k {
	case KindUp, KindDown, KindDocumentStart, KindDocumentEnd:
		return true
	default:
		return false
	}
}
