package motion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/textbuf"
)

// Result describes a resolved motion. Anchor is the pre-motion position,
// Head the post-motion position; Inclusive tells the operator executor to
// include the character at Head in the operated range. Head equal to
// Anchor with Inclusive false is a completed zero-width motion (a find
// that did not match).
type Result struct {
	Kind      textbuf.RangeKind
	Anchor    textbuf.Position
	Head      textbuf.Position
	Inclusive bool
}

// Empty reports whether the result spans no text.
func (r *Result) Empty() bool {
	return r.Anchor == r.Head && !r.Inclusive
}

// Resolve computes a motion over the buffer snapshot. count follows the
// compounding rule: the single-step motion is applied count times, except
// G, which jumps directly to line count, and the find motions, which seek
// the count-th occurrence. count <= 0 means no explicit count was given
// (a single application; G goes to the last line). char carries the
// target for find motions and is ignored otherwise.
//
// Resolve returns nil when the motion cannot produce a range (unknown
// kind, stale position, or a match-pair with nothing to match).
func Resolve(buf textbuf.Adapter, from textbuf.Position, kind Kind, count int, char rune) *Result {
	start, err := buf.PositionToOffset(from)
	if err != nil {
		return nil
	}
	text := buf.DocumentText()

	reps := count
	if reps < 1 {
		reps = 1
	}

	head := start
	inclusive := kind.inclusive()

	switch kind {
	case KindLeft:
		head = repeat(start, reps, func(off int) int { return stepLeft(text, off) })
	case KindRight:
		head = repeat(start, reps, func(off int) int { return stepRight(text, off) })
	case KindDown:
		col := runeColumn(text, start)
		head = repeat(start, reps, func(off int) int { return stepDown(text, off, col) })
	case KindUp:
		col := runeColumn(text, start)
		head = repeat(start, reps, func(off int) int { return stepUp(text, off, col) })

	case KindWordForward:
		head = repeat(start, reps, func(off int) int { return stepWordForward(text, off, false) })
	case KindBigWordForward:
		head = repeat(start, reps, func(off int) int { return stepWordForward(text, off, true) })
	case KindWordBackward:
		head = repeat(start, reps, func(off int) int { return stepWordBackward(text, off, false) })
	case KindBigWordBackward:
		head = repeat(start, reps, func(off int) int { return stepWordBackward(text, off, true) })
	case KindWordEnd:
		head = repeat(start, reps, func(off int) int { return stepWordEnd(text, off, false) })
	case KindBigWordEnd:
		head = repeat(start, reps, func(off int) int { return stepWordEnd(text, off, true) })
	case KindWordEndBackward:
		head = repeat(start, reps, func(off int) int { return stepWordEndBackward(text, off, false) })
	case KindBigWordEndBackward:
		head = repeat(start, reps, func(off int) int { return stepWordEndBackward(text, off, true) })

	case KindLineStart:
		head = lineStart(text, start)
	case KindFirstNonBlank:
		ls := lineStart(text, start)
		head = firstNonBlank(text, ls, lineEnd(text, start))
	case KindLineEnd:
		ls, le := lineStart(text, start), lineEnd(text, start)
		if le == ls {
			head, inclusive = ls, false
		} else {
			head = prevRuneStart(text, le)
		}
	case KindLastNonBlank:
		ls, le := lineStart(text, start), lineEnd(text, start)
		if nb := lastNonBlank(text, ls, le); nb >= 0 {
			head = nb
		} else {
			head, inclusive = ls, false
		}

	case KindFindForward, KindFindBackward, KindTillForward, KindTillBackward:
		target, found := findInLine(text, start, kind, reps, char)
		if !found {
			head, inclusive = start, false
		} else {
			head = target
		}

	case KindParagraphForward:
		head = repeat(start, reps, func(off int) int { return stepParagraphForward(text, off) })
	case KindParagraphBackward:
		head = repeat(start, reps, func(off int) int { return stepParagraphBackward(text, off) })
	case KindSentenceForward:
		starts := sentenceStarts(text)
		head = repeat(start, reps, func(off int) int { return nextSentenceStart(text, starts, off) })
	case KindSentenceBackward:
		starts := sentenceStarts(text)
		head = repeat(start, reps, func(off int) int { return prevSentenceStart(starts, off) })

	case KindDocumentStart:
		ls := lineStartByIndex(text, 0)
		head = firstNonBlank(text, ls, lineEnd(text, ls))
	case KindDocumentEnd:
		var ls int
		if count >= 1 {
			ls = lineStartByIndex(text, count-1)
		} else {
			ls = lineStartByIndex(text, lineCount(text)-1)
		}
		head = firstNonBlank(text, ls, lineEnd(text, ls))

	case KindMatchPair:
		target, ok := matchPair(text, start)
		if !ok {
			return nil
		}
		head = target

	default:
		return nil
	}

	rk := textbuf.RangeChar
	if kind.linewise() {
		rk = textbuf.RangeLine
	}
	return &Result{
		Kind:      rk,
		Anchor:    from,
		Head:      buf.OffsetToPosition(head),
		Inclusive: inclusive,
	}
}

// repeat applies step up to n times, stopping early when it makes no
// progress.
func repeat(off, n int, step func(int) int) int {
	for i := 0; i < n; i++ {
		next := step(off)
		if next == off {
			break
		}
		off = next
	}
	return off
}

// Offset primitives. All offsets are byte offsets into text; callers keep
// them on rune boundaries.

func runeAt(text string, off int) (rune, int) {
	return utf8.DecodeRuneInString(text[off:])
}

func prevRuneStart(text string, off int) int {
	if off <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(text[:off])
	return off - size
}

func nextRuneStart(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[off:])
	return off + size
}

// lineStart returns the offset of the first byte of the line containing
// off.
func lineStart(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return strings.LastIndexByte(text[:off], '\n') + 1
}

// lineEnd returns the offset of the newline ending the line containing
// off, or len(text) for the last line.
func lineEnd(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(text)
}

func lineCount(text string) int {
	return strings.Count(text, "\n") + 1
}

// lineStartByIndex returns the start offset of 0-based line n, clamped to
// the last line.
func lineStartByIndex(text string, n int) int {
	if n <= 0 {
		return 0
	}
	off := 0
	for i := 0; i < n; i++ {
		nl := strings.IndexByte(text[off:], '\n')
		if nl < 0 {
			return lineStart(text, len(text))
		}
		off += nl + 1
	}
	return off
}

// runeColumn returns the rune index of off within its line.
func runeColumn(text string, off int) int {
	ls := lineStart(text, off)
	return utf8.RuneCountInString(text[ls:off])
}

// offsetAtColumn returns the offset of rune column col within [ls, le),
// clamping to le.
func offsetAtColumn(text string, ls, le, col int) int {
	off := ls
	for c := 0; c < col && off < le; c++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}

// firstNonBlank returns the offset of the first non-space rune in
// [ls, le), or le when the line is blank.
func firstNonBlank(text string, ls, le int) int {
	off := ls
	for off < le {
		r, size := utf8.DecodeRuneInString(text[off:])
		if !unicode.IsSpace(r) {
			return off
		}
		off += size
	}
	return le
}

// lastNonBlank returns the offset of the last non-space rune in [ls, le),
// or -1 when the line is blank.
func lastNonBlank(text string, ls, le int) int {
	off := le
	for off > ls {
		p := prevRuneStart(text, off)
		r, _ := runeAt(text, p)
		if !unicode.IsSpace(r) {
			return p
		}
		off = p
	}
	return -1
}

// Single-step motions.

func stepLeft(text string, off int) int {
	ls := lineStart(text, off)
	if off <= ls {
		return off
	}
	return prevRuneStart(text, off)
}

// stepRight moves to the next rune start, stopping at the line's newline
// slot. Movement callers clamp back onto the last character; operators
// use the raw head.
func stepRight(text string, off int) int {
	le := lineEnd(text, off)
	if off >= le {
		return off
	}
	return nextRuneStart(text, off)
}

func stepDown(text string, off, col int) int {
	le := lineEnd(text, off)
	if le >= len(text) {
		return off
	}
	nls := le + 1
	return offsetAtColumn(text, nls, lineEnd(text, nls), col)
}

func stepUp(text string, off, col int) int {
	ls := lineStart(text, off)
	if ls == 0 {
		return off
	}
	ple := ls - 1
	pls := lineStart(text, ple)
	return offsetAtColumn(text, pls, ple, col)
}

func stepWordForward(text string, off int, big bool) int {
	if off >= len(text) {
		return off
	}
	r, size := runeAt(text, off)
	cls := textbuf.ClassOf(r, big)
	i := off + size

	if cls != textbuf.ClassSpace {
		for i < len(text) {
			r, size = runeAt(text, i)
			if textbuf.ClassOf(r, big) != cls {
				break
			}
			i += size
		}
	}
	for i < len(text) {
		r, size = runeAt(text, i)
		if textbuf.ClassOf(r, big) != textbuf.ClassSpace {
			break
		}
		i += size
	}
	return i
}

func stepWordBackward(text string, off int, big bool) int {
	if off <= 0 {
		return 0
	}
	i := prevRuneStart(text, off)
	for i > 0 {
		r, _ := runeAt(text, i)
		if textbuf.ClassOf(r, big) != textbuf.ClassSpace {
			break
		}
		i = prevRuneStart(text, i)
	}
	r, _ := runeAt(text, i)
	cls := textbuf.ClassOf(r, big)
	if cls == textbuf.ClassSpace {
		return i
	}
	for i > 0 {
		p := prevRuneStart(text, i)
		r, _ = runeAt(text, p)
		if textbuf.ClassOf(r, big) != cls {
			break
		}
		i = p
	}
	return i
}

func stepWordEnd(text string, off int, big bool) int {
	i := nextRuneStart(text, off)
	for i < len(text) {
		r, size := runeAt(text, i)
		if textbuf.ClassOf(r, big) != textbuf.ClassSpace {
			break
		}
		i += size
	}
	if i >= len(text) {
		if len(text) == 0 {
			return 0
		}
		return prevRuneStart(text, len(text))
	}
	r, _ := runeAt(text, i)
	cls := textbuf.ClassOf(r, big)
	for {
		j := nextRuneStart(text, i)
		if j >= len(text) {
			break
		}
		r, _ = runeAt(text, j)
		if textbuf.ClassOf(r, big) != cls {
			break
		}
		i = j
	}
	return i
}

func stepWordEndBackward(text string, off int, big bool) int {
	if off <= 0 {
		return 0
	}
	i := prevRuneStart(text, off)

	// Back out of the cursor's own run first.
	if off < len(text) {
		r, _ := runeAt(text, off)
		if cls := textbuf.ClassOf(r, big); cls != textbuf.ClassSpace {
			pr, _ := runeAt(text, i)
			if textbuf.ClassOf(pr, big) == cls {
				for i > 0 {
					p := prevRuneStart(text, i)
					r, _ = runeAt(text, p)
					if textbuf.ClassOf(r, big) != cls {
						break
					}
					i = p
				}
				if i == 0 {
					return 0
				}
				i = prevRuneStart(text, i)
			}
		}
	}

	for i > 0 {
		r, _ := runeAt(text, i)
		if textbuf.ClassOf(r, big) != textbuf.ClassSpace {
			break
		}
		i = prevRuneStart(text, i)
	}
	return i
}

// findInLine seeks the n-th occurrence of char on the current line. The
// till variants land one rune short of the match. Returns found=false
// when there is no n-th occurrence; the cursor must not move.
func findInLine(text string, off int, kind Kind, n int, char rune) (int, bool) {
	ls, le := lineStart(text, off), lineEnd(text, off)

	switch kind {
	case KindFindForward, KindTillForward:
		i := nextRuneStart(text, off)
		seen := 0
		for i < le {
			r, size := runeAt(text, i)
			if r == char {
				seen++
				if seen == n {
					if kind == KindTillForward {
						// Adjacent target: till has nowhere to land.
						if p := prevRuneStart(text, i); p != off {
							return p, true
						}
						return off, false
					}
					return i, true
				}
			}
			i += size
		}
	case KindFindBackward, KindTillBackward:
		i := off
		seen := 0
		for i > ls {
			i = prevRuneStart(text, i)
			r, _ := runeAt(text, i)
			if r == char {
				seen++
				if seen == n {
					if kind == KindTillBackward {
						if p := nextRuneStart(text, i); p != off {
							return p, true
						}
						return off, false
					}
					return i, true
				}
			}
		}
	}
	return off, false
}

func stepParagraphForward(text string, off int) int {
	i := lineEnd(text, off)
	for i < len(text) {
		ls := i + 1
		le := lineEnd(text, ls)
		if ls == le {
			return ls
		}
		i = le
	}
	return len(text)
}

func stepParagraphBackward(text string, off int) int {
	ls := lineStart(text, off)
	for ls > 0 {
		pe := ls - 1
		pls := lineStart(text, pe)
		if pls == pe {
			return pls
		}
		ls = pls
	}
	return 0
}

// sentenceStarts collects every sentence start: the document start plus
// the first non-space rune after a terminator (. ! ?) followed by
// whitespace.
func sentenceStarts(text string) []int {
	starts := []int{0}
	i := 0
	for i < len(text) {
		r, size := runeAt(text, i)
		if r != '.' && r != '!' && r != '?' {
			i += size
			continue
		}
		j := i + size
		saw := false
		for j < len(text) {
			r2, s2 := runeAt(text, j)
			if !unicode.IsSpace(r2) {
				break
			}
			saw = true
			j += s2
		}
		if saw && j < len(text) {
			starts = append(starts, j)
			i = j
			continue
		}
		i = j
	}
	return starts
}

func nextSentenceStart(text string, starts []int, off int) int {
	for _, s := range starts {
		if s > off {
			return s
		}
	}
	return len(text)
}

func prevSentenceStart(starts []int, off int) int {
	prev := 0
	for _, s := range starts {
		if s >= off {
			break
		}
		prev = s
	}
	return prev
}

// Bracket pairs for the match-pair motion.

func isBracketRune(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	default:
		return false
	}
}

// matchingBracketFor returns the counterpart bracket and the scan
// direction for r.
func matchingBracketFor(r rune) (match rune, forward bool) {
	switch r {
	case '(':
		return ')', true
	case '[':
		return ']', true
	case '{':
		return '}', true
	case ')':
		return '(', false
	case ']':
		return '[', false
	case '}':
		return '{', false
	default:
		return 0, false
	}
}

// matchPair finds the first bracket at or after off on the current line
// and returns the offset of its depth-balanced counterpart.
func matchPair(text string, off int) (int, bool) {
	le := lineEnd(text, off)
	i := off
	bracket := -1
	var open rune
	for i < le {
		r, size := runeAt(text, i)
		if isBracketRune(r) {
			bracket, open = i, r
			break
		}
		i += size
	}
	if bracket < 0 {
		return 0, false
	}

	match, forward := matchingBracketFor(open)
	depth := 0
	if forward {
		j := bracket
		for j < len(text) {
			r, size := runeAt(text, j)
			switch r {
			case open:
				depth++
			case match:
				depth--
				if depth == 0 {
					return j, true
				}
			}
			j += size
		}
		return 0, false
	}

	j := bracket
	for {
		r, _ := runeAt(text, j)
		switch r {
		case open:
			depth++
		case match:
			depth--
			if depth == 0 {
				return j, true
			}
		}
		if j == 0 {
			return 0, false
		}
		j = prevRuneStart(text, j)
	}
}
