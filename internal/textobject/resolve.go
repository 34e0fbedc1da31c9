package textobject

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/textbuf"
)

// Resolve locates the object under (or after) the cursor and returns its
// range with Anchor at the start and Head one past the end. Paragraph
// objects are linewise with Head on the last covered line. Resolve
// returns nil when no such object exists; callers treat that as a no-op.
func Resolve(buf textbuf.Adapter, from textbuf.Position, mod Modifier, kind Kind) *motion.Result {
	off, err := buf.PositionToOffset(from)
	if err != nil {
		return nil
	}
	text := buf.DocumentText()
	around := mod == ModifierAround

	var start, end int
	var ok bool
	rk := textbuf.RangeChar

	switch kind {
	case KindWord:
		start, end, ok = wordObject(text, off, false, around)
	case KindBigWord:
		start, end, ok = wordObject(text, off, true, around)
	case KindQuoteDouble, KindQuoteSingle, KindQuoteBack:
		start, end, ok = quoteObject(text, off, kind.quoteRune(), around)
	case KindParen, KindBracket, KindBrace, KindAngle:
		open, close := kind.bracketRunes()
		start, end, ok = bracketObject(text, off, open, close, around)
	case KindSentence:
		start, end, ok = sentenceObject(text, off, around)
	case KindParagraph:
		start, end, ok = paragraphObject(text, off, around)
		rk = textbuf.RangeLine
	case KindTag:
		start, end, ok = tagObject(text, off, around)
	default:
		return nil
	}
	if !ok {
		return nil
	}

	return &motion.Result{
		Kind:      rk,
		Anchor:    buf.OffsetToPosition(start),
		Head:      buf.OffsetToPosition(end),
		Inclusive: false,
	}
}

// Offset primitives, byte offsets kept on rune boundaries.

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

func lineStart(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	return strings.LastIndexByte(text[:off], '\n') + 1
}

func lineEnd(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(text)
}

func runStart(text string, off int, cls textbuf.CharClass, big bool) int {
	for off > 0 {
		p := prevRuneStart(text, off)
		r, _ := runeAt(text, p)
		if textbuf.ClassOf(r, big) != cls {
			break
		}
		off = p
	}
	return off
}

func runEnd(text string, off int, cls textbuf.CharClass, big bool) int {
	for off < len(text) {
		r, size := runeAt(text, off)
		if textbuf.ClassOf(r, big) != cls {
			break
		}
		off += size
	}
	return off
}

// wordObject spans the word or punctuation run under the cursor, or the
// next run forward when the cursor sits on whitespace. Around extends
// over trailing blanks on the line, falling back to leading blanks when
// there are none.
func wordObject(text string, off int, big, around bool) (int, int, bool) {
	if len(text) == 0 {
		return 0, 0, false
	}
	if off >= len(text) {
		off = prevRuneStart(text, len(text))
	}

	r, _ := runeAt(text, off)
	cls := textbuf.ClassOf(r, big)

	var start, end int
	if cls == textbuf.ClassSpace {
		i := off
		for i < len(text) {
			r, size := runeAt(text, i)
			if textbuf.ClassOf(r, big) != textbuf.ClassSpace {
				break
			}
			i += size
		}
		if i >= len(text) {
			return 0, 0, false
		}
		r, _ = runeAt(text, i)
		cls = textbuf.ClassOf(r, big)
		start, end = i, runEnd(text, i, cls, big)
	} else {
		start, end = runStart(text, off, cls, big), runEnd(text, off, cls, big)
	}

	if around {
		extended := end
		for extended < len(text) {
			r, size := runeAt(text, extended)
			if r != ' ' && r != '\t' {
				break
			}
			extended += size
		}
		if extended > end {
			end = extended
		} else {
			for start > 0 {
				p := prevRuneStart(text, start)
				r, _ := runeAt(text, p)
				if r != ' ' && r != '\t' {
					break
				}
				start = p
			}
		}
	}
	return start, end, true
}

// escapedAt reports whether the rune at off is preceded by an odd run of
// backslashes within the same line.
func escapedAt(text string, ls, off int) bool {
	n := 0
	for off > ls {
		p := prevRuneStart(text, off)
		if text[p] != '\\' {
			break
		}
		n++
		off = p
	}
	return n%2 == 1
}

// quoteObject pairs unescaped quote runes on the current line in reading
// order and selects the pair straddling the cursor, or the next pair to
// its right.
func quoteObject(text string, off int, q rune, around bool) (int, int, bool) {
	ls, le := lineStart(text, off), lineEnd(text, off)

	var marks []int
	i := ls
	for i < le {
		r, size := runeAt(text, i)
		if r == q && !escapedAt(text, ls, i) {
			marks = append(marks, i)
		}
		i += size
	}

	qsize := utf8.RuneLen(q)
	for i := 0; i+1 < len(marks); i += 2 {
		open, close := marks[i], marks[i+1]
		if off > close {
			continue
		}
		if around {
			return open, close + qsize, true
		}
		return open + qsize, close, true
	}
	return 0, 0, false
}

// scanToClose finds the depth-balanced close for the open delimiter at
// from.
func scanToClose(text string, from int, open, close rune) (int, bool) {
	depth := 0
	i := from
	for i < len(text) {
		r, size := runeAt(text, i)
		switch r {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, true
			}
		}
		i += size
	}
	return 0, false
}

// scanToOpen finds the depth-balanced open for the close delimiter at
// from.
func scanToOpen(text string, from int, open, close rune) (int, bool) {
	depth := 0
	i := from
	for {
		r, _ := runeAt(text, i)
		switch r {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i, true
			}
		}
		if i == 0 {
			return 0, false
		}
		i = prevRuneStart(text, i)
	}
}

// enclosingOpen finds the nearest unmatched open delimiter strictly left
// of off.
func enclosingOpen(text string, off int, open, close rune) (int, bool) {
	depth := 0
	i := off
	for i > 0 {
		i = prevRuneStart(text, i)
		r, _ := runeAt(text, i)
		switch r {
		case close:
			depth++
		case open:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// bracketObject resolves the pair the cursor is on or strictly inside.
func bracketObject(text string, off int, open, close rune, around bool) (int, int, bool) {
	var o, c int
	var ok bool

	if off < len(text) {
		switch r, _ := runeAt(text, off); r {
		case open:
			o = off
			c, ok = scanToClose(text, off, open, close)
		case close:
			c = off
			o, ok = scanToOpen(text, off, open, close)
		}
	}
	if !ok {
		o, ok = enclosingOpen(text, off, open, close)
		if !ok {
			return 0, 0, false
		}
		c, ok = scanToClose(text, o, open, close)
		if !ok {
			return 0, 0, false
		}
	}

	if around {
		return o, c + utf8.RuneLen(close), true
	}
	return o + utf8.RuneLen(open), c, true
}

// sentenceStarts collects sentence starts: the document start plus the
// first non-space rune after a terminator (. ! ?) followed by whitespace.
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

// sentenceObject spans the sentence containing the cursor. Inner trims
// the trailing whitespace run; around keeps it.
func sentenceObject(text string, off int, around bool) (int, int, bool) {
	starts := sentenceStarts(text)

	cur := 0
	for _, s := range starts {
		if s > off {
			break
		}
		cur = s
	}
	next := len(text)
	for _, s := range starts {
		if s > off {
			next = s
			break
		}
	}

	if around {
		return cur, next, true
	}
	end := next
	for end > cur {
		p := prevRuneStart(text, end)
		r, _ := runeAt(text, p)
		if !unicode.IsSpace(r) {
			break
		}
		end = p
	}
	return cur, end, true
}

func lineBlankAt(text string, ls int) bool {
	return ls == lineEnd(text, ls)
}

// paragraphObject spans the run of lines sharing the cursor line's
// blankness. Around extends over trailing blank lines; from a blank line
// it extends through the following paragraph instead. Returns the start
// offsets of the first and last covered lines.
func paragraphObject(text string, off int, around bool) (int, int, bool) {
	ls := lineStart(text, off)
	blank := lineBlankAt(text, ls)

	first := ls
	for first > 0 {
		pls := lineStart(text, first-1)
		if lineBlankAt(text, pls) != blank {
			break
		}
		first = pls
	}
	last := ls
	for {
		le := lineEnd(text, last)
		if le >= len(text) {
			break
		}
		nls := le + 1
		if lineBlankAt(text, nls) != blank {
			break
		}
		last = nls
	}

	if around {
		for {
			le := lineEnd(text, last)
			if le >= len(text) {
				break
			}
			nls := le + 1
			if lineBlankAt(text, nls) == blank {
				break
			}
			last = nls
		}
	}
	return first, last, true
}

// Tag scanning for the it/at objects.

type tagToken struct {
	name  string
	start int // offset of <
	end   int // offset past >
	close bool
}

func tagNameRune(r rune) bool {
	return textbuf.IsWordRune(r) || r == '-' || r == ':' || r == '.'
}

// scanTags tokenizes <name ...>, </name>, skipping self-closing tags,
// comments, and declarations.
func scanTags(text string) []tagToken {
	var toks []tagToken
	pos := 0
	for {
		lt := strings.IndexByte(text[pos:], '<')
		if lt < 0 {
			return toks
		}
		lt += pos
		gt := strings.IndexByte(text[lt:], '>')
		if gt < 0 {
			return toks
		}
		gt += lt
		body := text[lt+1 : gt]
		pos = gt + 1

		closing := strings.HasPrefix(body, "/")
		if closing {
			body = body[1:]
		}
		if strings.HasSuffix(body, "/") || strings.HasPrefix(body, "!") || strings.HasPrefix(body, "?") {
			continue
		}
		nameEnd := 0
		for nameEnd < len(body) {
			r, size := utf8.DecodeRuneInString(body[nameEnd:])
			if !tagNameRune(r) {
				break
			}
			nameEnd += size
		}
		if nameEnd == 0 {
			continue
		}
		toks = append(toks, tagToken{
			name:  body[:nameEnd],
			start: lt,
			end:   gt + 1,
			close: closing,
		})
	}
}

// tagObject finds the innermost name-matched tag pair enclosing the
// cursor. Inner spans the content between the tags; around spans the
// tags too.
func tagObject(text string, off int, around bool) (int, int, bool) {
	toks := scanTags(text)

	var stack []tagToken
	for _, tok := range toks {
		if !tok.close {
			stack = append(stack, tok)
			continue
		}
		// Pop to the matching open, discarding unclosed tags.
		match := -1
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].name == tok.name {
				match = i
				break
			}
		}
		if match < 0 {
			continue
		}
		open := stack[match]
		stack = stack[:match]
		if open.start <= off && off < tok.end {
			if around {
				return open.start, tok.end, true
			}
			return open.end, tok.start, true
		}
	}
	return 0, 0, false
}
