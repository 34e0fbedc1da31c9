package operator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/register"
	"github.com/dshills/vicore/internal/textbuf"
)

// DefaultShiftWidth is the indent width used when no configuration is
// applied.
const DefaultShiftWidth = 4

// Executor applies operators to a buffer and records cut/copied text in
// the register bank.
type Executor struct {
	registers  *register.Store
	shiftWidth int
}

// NewExecutor creates an executor over the given register bank.
func NewExecutor(regs *register.Store) *Executor {
	return &Executor{registers: regs, shiftWidth: DefaultShiftWidth}
}

// SetShiftWidth sets the indent width used by > and <.
func (x *Executor) SetShiftWidth(w int) {
	if w > 0 {
		x.shiftWidth = w
	}
}

// FilterRequest reports a range the host should reformat or filter
// externally. The engine resolves = / gq / ! ranges but never rewrites
// text itself.
type FilterRequest struct {
	Start int
	End   int
	Kind  textbuf.RangeKind
}

// Outcome reports the result of applying an operator.
type Outcome struct {
	// Cursor is the post-operation cursor position.
	Cursor textbuf.Position

	// EnterInsert requests a transition to insert mode (change).
	EnterInsert bool

	// Mutated reports whether the buffer changed.
	Mutated bool

	// Filter is non-nil for the format/filter/reflow operators.
	Filter *FilterRequest
}

// Apply executes op over the resolved range. res must be non-nil; a nil
// resolution is the caller's no-op. regName is the explicitly selected
// register (0 for none).
func (x *Executor) Apply(buf textbuf.Adapter, op Kind, res *motion.Result, regName rune) (Outcome, error) {
	if op == KindNone {
		return Outcome{Cursor: res.Anchor}, nil
	}
	if res.Kind == textbuf.RangeBlock {
		return x.applyBlock(buf, op, res, regName)
	}

	text := buf.DocumentText()
	anchor, err := buf.PositionToOffset(res.Anchor)
	if err != nil {
		return Outcome{}, err
	}
	head, err := buf.PositionToOffset(res.Head)
	if err != nil {
		return Outcome{}, err
	}

	start, end := charSpan(text, anchor, head, res.Inclusive)
	linewise := res.Kind == textbuf.RangeLine
	var ls, le int
	if linewise {
		ls, le = lineSpan(text, start, end)
	}

	switch op {
	case KindDelete, KindChange:
		return x.applyDelete(buf, text, op, start, end, ls, le, linewise, regName)

	case KindYank:
		return x.applyYank(buf, text, start, end, ls, le, linewise, anchor, head, regName)

	case KindIndent, KindOutdent:
		if !linewise {
			ls, le = lineSpan(text, start, end)
		}
		return x.applyIndent(buf, text, op, ls, le)

	case KindToggleCase, KindLowercase, KindUppercase:
		if linewise {
			start, end = ls, le
		}
		return x.applyCase(buf, text, op, start, end)

	case KindFormat, KindFilter, KindReflow:
		if linewise {
			start, end = ls, le
		}
		rk := textbuf.RangeChar
		if linewise {
			rk = textbuf.RangeLine
		}
		return Outcome{
			Cursor: buf.OffsetToPosition(start),
			Filter: &FilterRequest{Start: start, End: end, Kind: rk},
		}, nil

	default:
		return Outcome{Cursor: res.Anchor}, nil
	}
}

// applyDelete removes the range (and for change leaves insert mode
// pending). Linewise deletes take the joining newline with them; linewise
// changes keep an empty line open.
func (x *Executor) applyDelete(buf textbuf.Adapter, text string, op Kind, start, end, ls, le int, linewise bool, regName rune) (Outcome, error) {
	var content string
	var delStart, delEnd int
	kind := textbuf.RangeChar

	if linewise {
		kind = textbuf.RangeLine
		content = text[ls:le] + "\n"
		delStart, delEnd = ls, le
		if op == KindDelete {
			switch {
			case le < len(text):
				delEnd = le + 1
			case ls > 0:
				delStart = ls - 1
			}
		}
	} else {
		content = text[start:end]
		delStart, delEnd = start, end
	}

	if content == "" && !linewise {
		return Outcome{Cursor: buf.OffsetToPosition(start)}, nil
	}

	x.registers.Delete(content, kind, regName)
	if err := buf.SetRange(delStart, delEnd, ""); err != nil {
		return Outcome{}, err
	}

	cursor := delStart
	if linewise && op == KindDelete {
		cursor = linewiseLanding(buf.DocumentText(), ls)
	}
	if linewise && op == KindChange {
		cursor = ls
	}
	return Outcome{
		Cursor:      buf.OffsetToPosition(cursor),
		EnterInsert: op == KindChange,
		Mutated:     true,
	}, nil
}

// applyYank records the range without mutating the buffer. The cursor
// moves to the range start only for backward charwise yanks.
func (x *Executor) applyYank(buf textbuf.Adapter, text string, start, end, ls, le int, linewise bool, anchor, head int, regName rune) (Outcome, error) {
	var content string
	kind := textbuf.RangeChar
	if linewise {
		kind = textbuf.RangeLine
		content = text[ls:le] + "\n"
	} else {
		content = text[start:end]
	}

	x.registers.Yank(content, kind, regName)

	cursor := anchor
	if !linewise && head < anchor {
		cursor = start
	}
	return Outcome{Cursor: buf.OffsetToPosition(cursor)}, nil
}

// applyIndent shifts every touched line right or left by one shift
// width. Blank lines are left alone on indent; outdent removes up to one
// shift width of leading whitespace.
func (x *Executor) applyIndent(buf textbuf.Adapter, text string, op Kind, ls, le int) (Outcome, error) {
	lines := strings.Split(text[ls:le], "\n")
	pad := strings.Repeat(" ", x.shiftWidth)

	for i, line := range lines {
		if op == KindIndent {
			if line != "" {
				lines[i] = pad + line
			}
			continue
		}
		lines[i] = outdentLine(line, x.shiftWidth)
	}

	if err := buf.SetRange(ls, le, strings.Join(lines, "\n")); err != nil {
		return Outcome{}, err
	}

	newText := buf.DocumentText()
	cursor := firstNonBlank(newText, ls, lineEnd(newText, ls))
	return Outcome{Cursor: buf.OffsetToPosition(cursor), Mutated: true}, nil
}

// outdentLine removes up to width columns of leading whitespace, where a
// tab counts as one column stop.
func outdentLine(line string, width int) string {
	removed := 0
	i := 0
	for i < len(line) && removed < width {
		switch line[i] {
		case ' ':
			removed++
		case '\t':
			removed = width
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}

// applyCase rewrites the case of the range in place. Length never
// changes.
func (x *Executor) applyCase(buf textbuf.Adapter, text string, op Kind, start, end int) (Outcome, error) {
	var mapper func(rune) rune
	switch op {
	case KindLowercase:
		mapper = unicode.ToLower
	case KindUppercase:
		mapper = unicode.ToUpper
	default:
		mapper = toggleRune
	}

	replaced := strings.Map(mapper, text[start:end])
	if replaced == text[start:end] {
		return Outcome{Cursor: buf.OffsetToPosition(start)}, nil
	}
	if err := buf.SetRange(start, end, replaced); err != nil {
		return Outcome{}, err
	}
	return Outcome{Cursor: buf.OffsetToPosition(start), Mutated: true}, nil
}

func toggleRune(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	if unicode.IsLower(r) {
		return unicode.ToUpper(r)
	}
	return r
}

// applyBlock executes an operator over the rectangle spanned by the
// anchor and head corners.
func (x *Executor) applyBlock(buf textbuf.Adapter, op Kind, res *motion.Result, regName rune) (Outcome, error) {
	text := buf.DocumentText()
	spans := blockSpans(buf, text, res.Anchor, res.Head)
	if len(spans) == 0 {
		return Outcome{Cursor: res.Anchor}, nil
	}

	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i] = text[sp.start:sp.end]
	}
	content := strings.Join(parts, "\n")
	top := spans[0].start

	switch op {
	case KindYank:
		x.registers.Yank(content, textbuf.RangeBlock, regName)
		return Outcome{Cursor: buf.OffsetToPosition(top)}, nil

	case KindDelete, KindChange:
		x.registers.Delete(content, textbuf.RangeBlock, regName)
		// Bottom-up keeps earlier span offsets valid.
		for i := len(spans) - 1; i >= 0; i-- {
			if err := buf.SetRange(spans[i].start, spans[i].end, ""); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{
			Cursor:      buf.OffsetToPosition(top),
			EnterInsert: op == KindChange,
			Mutated:     true,
		}, nil

	case KindToggleCase, KindLowercase, KindUppercase:
		for i := len(spans) - 1; i >= 0; i-- {
			if _, err := x.applyCase(buf, text, op, spans[i].start, spans[i].end); err != nil {
				return Outcome{}, err
			}
		}
		return Outcome{Cursor: buf.OffsetToPosition(top), Mutated: true}, nil

	default:
		return Outcome{Cursor: buf.OffsetToPosition(top)}, nil
	}
}

type span struct {
	start, end int
}

// blockSpans computes the per-line byte spans of the rectangle between
// two corners, clamping to each line's length. The head column is
// included, mirroring visual-block selection.
func blockSpans(buf textbuf.Adapter, text string, a, h textbuf.Position) []span {
	ao, errA := buf.PositionToOffset(a)
	ho, errH := buf.PositionToOffset(h)
	if errA != nil || errH != nil {
		return nil
	}

	colA := runeColumn(text, ao)
	colH := runeColumn(text, ho)
	loCol, hiCol := colA, colH
	if loCol > hiCol {
		loCol, hiCol = hiCol, loCol
	}
	hiCol++ // include the head column

	lo, hi := ao, ho
	if lo > hi {
		lo, hi = hi, lo
	}

	var spans []span
	ls := lineStart(text, lo)
	for {
		le := lineEnd(text, ls)
		s := offsetAtColumn(text, ls, le, loCol)
		e := offsetAtColumn(text, ls, le, hiCol)
		if s < e {
			spans = append(spans, span{start: s, end: e})
		}
		if le >= len(text) || le >= lineEnd(text, hi) {
			break
		}
		ls = le + 1
	}
	return spans
}

// Range expansion helpers.

// charSpan orders anchor/head and widens the end by one rune for
// inclusive motions.
func charSpan(text string, anchor, head int, inclusive bool) (int, int) {
	start, end := anchor, head
	if start > end {
		start, end = end, start
	}
	if inclusive {
		end = nextRuneStart(text, end)
	}
	return start, end
}

// lineSpan widens [start, end) to whole lines, excluding the trailing
// newline.
func lineSpan(text string, start, end int) (int, int) {
	return lineStart(text, start), lineEnd(text, end)
}

// linewiseLanding returns the first non-blank of the line at or before
// ls in the post-mutation text.
func linewiseLanding(text string, ls int) int {
	if ls > len(text) {
		ls = len(text)
	}
	ls = lineStart(text, ls)
	return firstNonBlank(text, ls, lineEnd(text, ls))
}

// Offset primitives, byte offsets kept on rune boundaries.

func runeAt(text string, off int) (rune, int) {
	return utf8.DecodeRuneInString(text[off:])
}

func nextRuneStart(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[off:])
	return off + size
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

func firstNonBlank(text string, ls, le int) int {
	off := ls
	for off < le {
		r, size := runeAt(text, off)
		if !unicode.IsSpace(r) {
			return off
		}
		off += size
	}
	return le
}

func runeColumn(text string, off int) int {
	ls := lineStart(text, off)
	return utf8.RuneCountInString(text[ls:off])
}

func offsetAtColumn(text string, ls, le, col int) int {
	off := ls
	for c := 0; c < col && off < le; c++ {
		_, size := utf8.DecodeRuneInString(text[off:])
		off += size
	}
	return off
}
