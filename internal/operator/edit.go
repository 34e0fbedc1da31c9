package operator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vicore/internal/textbuf"
)

// Single-position edits: paste, x/X, r, ~, J. These never go through the
// motion engine; they operate at the cursor with an optional count.

// Paste inserts the selected register at the cursor. Charwise content
// goes inline before or after the cursor character; linewise content
// opens whole lines below or above the current line; block content is
// inserted column-aligned into successive lines. count repeats the
// content.
func (x *Executor) Paste(buf textbuf.Adapter, at textbuf.Position, regName rune, after bool, count int) (Outcome, error) {
	name := regName
	if name == 0 {
		name = '"'
	}
	reg, ok := x.registers.Get(name)
	if !ok || reg.Content == "" {
		return Outcome{Cursor: at}, nil
	}
	if count < 1 {
		count = 1
	}

	text := buf.DocumentText()
	off, err := buf.PositionToOffset(at)
	if err != nil {
		return Outcome{}, err
	}

	switch reg.Kind {
	case textbuf.RangeLine:
		return x.pasteLines(buf, text, off, reg.Content, after, count)
	case textbuf.RangeBlock:
		return x.pasteBlock(buf, text, off, reg.Content, after, count)
	default:
		return x.pasteInline(buf, text, off, reg.Content, after, count)
	}
}

func (x *Executor) pasteInline(buf textbuf.Adapter, text string, off int, content string, after bool, count int) (Outcome, error) {
	insertAt := off
	if after && off < lineEnd(text, off) {
		insertAt = nextRuneStart(text, off)
	}
	body := strings.Repeat(content, count)
	if err := buf.InsertAt(insertAt, body); err != nil {
		return Outcome{}, err
	}
	// Cursor lands on the last pasted character.
	cursor := prevRuneStart(buf.DocumentText(), insertAt+len(body))
	return Outcome{Cursor: buf.OffsetToPosition(cursor), Mutated: true}, nil
}

func (x *Executor) pasteLines(buf textbuf.Adapter, text string, off int, content string, after bool, count int) (Outcome, error) {
	body := strings.Repeat(content, count)
	// Register content for linewise text always carries a trailing
	// newline; the insertion point decides above vs. below.
	var insertAt int
	if after {
		le := lineEnd(text, off)
		if le >= len(text) {
			// Pasting below the last line: open the line first.
			body = "\n" + strings.TrimSuffix(body, "\n")
			insertAt = le
		} else {
			insertAt = le + 1
		}
	} else {
		insertAt = lineStart(text, off)
	}
	if err := buf.InsertAt(insertAt, body); err != nil {
		return Outcome{}, err
	}

	newText := buf.DocumentText()
	ls := insertAt
	if after && lineEnd(text, off) >= len(text) {
		ls = insertAt + 1
	}
	cursor := firstNonBlank(newText, ls, lineEnd(newText, ls))
	return Outcome{Cursor: buf.OffsetToPosition(cursor), Mutated: true}, nil
}

func (x *Executor) pasteBlock(buf textbuf.Adapter, text string, off int, content string, after bool, count int) (Outcome, error) {
	parts := strings.Split(content, "\n")
	if count > 1 {
		repeated := make([]string, 0, len(parts)*count)
		for i := 0; i < count; i++ {
			repeated = append(repeated, parts...)
		}
		parts = repeated
	}

	col := runeColumn(text, off)
	if after {
		col++
	}

	// Bottom-up keeps earlier insertion offsets valid.
	ls := lineStart(text, off)
	inserts := make([]span, 0, len(parts))
	for range parts {
		le := lineEnd(text, ls)
		at := offsetAtColumn(text, ls, le, col)
		pad := 0
		if cols := utf8.RuneCountInString(text[ls:le]); cols < col && at == le {
			pad = col - cols
		}
		inserts = append(inserts, span{start: at, end: pad})
		if le >= len(text) {
			break
		}
		ls = le + 1
	}
	for i := len(inserts) - 1; i >= 0; i-- {
		if i >= len(parts) {
			continue
		}
		body := strings.Repeat(" ", inserts[i].end) + parts[i]
		if err := buf.InsertAt(inserts[i].start, body); err != nil {
			return Outcome{}, err
		}
	}
	// Lines missing from the buffer get appended wholesale.
	if len(inserts) < len(parts) {
		var sb strings.Builder
		for _, part := range parts[len(inserts):] {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", col))
			sb.WriteString(part)
		}
		if err := buf.InsertAt(len(buf.DocumentText()), sb.String()); err != nil {
			return Outcome{}, err
		}
	}

	return Outcome{Cursor: buf.OffsetToPosition(inserts[0].start), Mutated: true}, nil
}

// DeleteChars removes count characters at the cursor (forward = true)
// or before it (x and X), never crossing the line boundary. The removed
// text is recorded as a delete.
func (x *Executor) DeleteChars(buf textbuf.Adapter, at textbuf.Position, count int, forward bool, regName rune) (Outcome, error) {
	if count < 1 {
		count = 1
	}
	text := buf.DocumentText()
	off, err := buf.PositionToOffset(at)
	if err != nil {
		return Outcome{}, err
	}

	var start, end int
	if forward {
		start = off
		end = off
		le := lineEnd(text, off)
		for i := 0; i < count && end < le; i++ {
			end = nextRuneStart(text, end)
		}
	} else {
		end = off
		start = off
		ls := lineStart(text, off)
		for i := 0; i < count && start > ls; i++ {
			start = prevRuneStart(text, start)
		}
	}
	if start == end {
		return Outcome{Cursor: at}, nil
	}

	x.registers.Delete(text[start:end], textbuf.RangeChar, regName)
	if err := buf.SetRange(start, end, ""); err != nil {
		return Outcome{}, err
	}
	return Outcome{Cursor: buf.OffsetToPosition(start), Mutated: true}, nil
}

// ReplaceChars overwrites count characters at the cursor with char.
// When fewer than count characters remain on the line the whole command
// is a no-op, matching r's all-or-nothing rule.
func (x *Executor) ReplaceChars(buf textbuf.Adapter, at textbuf.Position, count int, char rune) (Outcome, error) {
	if count < 1 {
		count = 1
	}
	text := buf.DocumentText()
	off, err := buf.PositionToOffset(at)
	if err != nil {
		return Outcome{}, err
	}

	le := lineEnd(text, off)
	end := off
	for i := 0; i < count; i++ {
		if end >= le {
			return Outcome{Cursor: at}, nil
		}
		end = nextRuneStart(text, end)
	}

	if err := buf.SetRange(off, end, strings.Repeat(string(char), count)); err != nil {
		return Outcome{}, err
	}
	// Cursor rests on the last replaced character.
	cursor := off + (count-1)*len(string(char))
	return Outcome{Cursor: buf.OffsetToPosition(cursor), Mutated: true}, nil
}

// ToggleChars toggles the case of count characters, advancing the cursor
// past the last one, staying on the current line.
func (x *Executor) ToggleChars(buf textbuf.Adapter, at textbuf.Position, count int) (Outcome, error) {
	if count < 1 {
		count = 1
	}
	text := buf.DocumentText()
	off, err := buf.PositionToOffset(at)
	if err != nil {
		return Outcome{}, err
	}

	le := lineEnd(text, off)
	end := off
	for i := 0; i < count && end < le; i++ {
		end = nextRuneStart(text, end)
	}
	if end == off {
		return Outcome{Cursor: at}, nil
	}

	replaced := strings.Map(toggleRune, text[off:end])
	if err := buf.SetRange(off, end, replaced); err != nil {
		return Outcome{}, err
	}

	newText := buf.DocumentText()
	cursor := end
	if cursor >= lineEnd(newText, off) && cursor > off {
		cursor = prevRuneStart(newText, cursor)
	}
	return Outcome{Cursor: buf.OffsetToPosition(cursor), Mutated: true}, nil
}

// JoinLines joins count+1 lines (minimum two) starting at the cursor
// line. Leading whitespace of each joined line collapses to a single
// space; the cursor lands at the join seam.
func (x *Executor) JoinLines(buf textbuf.Adapter, at textbuf.Position, count int) (Outcome, error) {
	joins := count
	if joins < 2 {
		joins = 2
	}
	joins-- // N lines means N-1 seams

	text := buf.DocumentText()
	off, err := buf.PositionToOffset(at)
	if err != nil {
		return Outcome{}, err
	}

	ls := lineStart(text, off)
	end := lineEnd(text, ls)
	for i := 0; i < joins && end < len(text); i++ {
		end = lineEnd(text, end+1)
	}
	if end == lineEnd(text, ls) {
		return Outcome{Cursor: at}, nil
	}

	lines := strings.Split(text[ls:end], "\n")
	joined := lines[0]
	seam := len(joined)
	for _, line := range lines[1:] {
		seam = len(joined)
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if joined != "" && trimmed != "" && !strings.HasSuffix(joined, " ") {
			joined += " "
		}
		joined += trimmed
	}

	if err := buf.SetRange(ls, end, joined); err != nil {
		return Outcome{}, err
	}
	return Outcome{Cursor: buf.OffsetToPosition(ls + seam), Mutated: true}, nil
}
