package editor

import (
	"strings"

	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/parser"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/textbuf"
)

// execInsertEntry handles the keys that enter insert mode, performing
// any edit they imply first (o, O, s, S, C).
func (e *Engine) execInsertEntry(cmd parser.Command) Result {
	// o in a visual mode swaps the selection ends instead.
	if e.machine.InVisual() {
		if cmd.Action == 'o' {
			e.machine.SwapEnds()
			e.cursor = e.machine.Head()
			return Result{Consumed: true, Executed: true}
		}
		e.leaveVisual()
	}

	text := e.buf.DocumentText()
	off, err := e.buf.PositionToOffset(e.cursor)
	if err != nil {
		return Result{Consumed: true, Err: err}
	}
	mutated := false

	switch cmd.Action {
	case 'i':
		// Insert at the cursor.

	case 'I':
		ls := lineStartAt(text, off)
		off = firstNonBlankAt(text, ls, lineEndAt(text, ls))

	case 'a':
		if off < lineEndAt(text, off) {
			off = nextRune(text, off)
		}

	case 'A':
		off = lineEndAt(text, off)

	case 'o':
		le := lineEndAt(text, off)
		if err := e.buf.InsertAt(le, "\n"); err != nil {
			return Result{Consumed: true, Err: err}
		}
		off = le + 1
		mutated = true

	case 'O':
		ls := lineStartAt(text, off)
		if err := e.buf.InsertAt(ls, "\n"); err != nil {
			return Result{Consumed: true, Err: err}
		}
		off = ls
		mutated = true

	case 's':
		out, err := e.exec.DeleteChars(e.buf, e.cursor, cmd.EffectiveCount(), true, cmd.Register)
		if err != nil {
			return Result{Consumed: true, Err: err}
		}
		e.cursor = out.Cursor
		e.enterInsert()
		return Result{Consumed: true, Executed: true, Mutated: out.Mutated}

	case 'S':
		res := e.linewiseRange(cmd.EffectiveCount())
		return e.applyRange(operator.KindChange, res, cmd)

	case 'C':
		res := &motion.Result{
			Kind:   textbuf.RangeChar,
			Anchor: e.cursor,
			Head:   e.buf.OffsetToPosition(lineEndAt(text, off)),
		}
		return e.applyRange(operator.KindChange, res, cmd)

	default:
		return Result{Consumed: true}
	}

	e.cursor = e.buf.OffsetToPosition(off)
	e.enterInsert()
	return Result{Consumed: true, Executed: true, Mutated: mutated}
}

// execAction handles single-key actions, mode entry, and ':'.
func (e *Engine) execAction(cmd parser.Command) Result {
	count := cmd.EffectiveCount()

	switch cmd.Action {
	case 'v':
		e.enterVisual(mode.Visual)
		return Result{Consumed: true, Executed: true}
	case 'V':
		e.enterVisual(mode.VisualLine)
		return Result{Consumed: true, Executed: true}
	case parser.VisualBlockKey:
		e.enterVisual(mode.VisualBlock)
		return Result{Consumed: true, Executed: true}

	case ':':
		if e.machine.InVisual() {
			e.parser.SetVisual(false)
		}
		e.machine.EnterCommandLine()
		e.cmdline = e.cmdline[:0]
		return Result{Consumed: true, Executed: true}

	case 'u':
		return Result{Consumed: true, Executed: true, Action: HostUndo}
	case 'K':
		return Result{Consumed: true, Executed: true, Action: HostLookup}

	case '.':
		return e.repeatLast()

	case 'x':
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.DeleteChars(e.buf, e.cursor, count, true, cmd.Register)
		})
	case 'X':
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.DeleteChars(e.buf, e.cursor, count, false, cmd.Register)
		})

	case 'p', 'P':
		if e.machine.InVisual() {
			return e.visualPaste(cmd)
		}
		after := cmd.Action == 'p'
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.Paste(e.buf, e.cursor, cmd.Register, after, count)
		})

	case '~':
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.ToggleChars(e.buf, e.cursor, count)
		})

	case 'J':
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.JoinLines(e.buf, e.cursor, count)
		})

	case 'r':
		return e.applyEdit(cmd, func() (operator.Outcome, error) {
			return e.exec.ReplaceChars(e.buf, e.cursor, count, cmd.Char)
		})

	case 'D':
		text := e.buf.DocumentText()
		off, err := e.buf.PositionToOffset(e.cursor)
		if err != nil {
			return Result{Consumed: true, Err: err}
		}
		res := &motion.Result{
			Kind:   textbuf.RangeChar,
			Anchor: e.cursor,
			Head:   e.buf.OffsetToPosition(lineEndAt(text, off)),
		}
		return e.applyRange(operator.KindDelete, res, cmd)

	case 'Y':
		return e.applyRange(operator.KindYank, e.linewiseRange(count), cmd)

	default:
		return Result{Consumed: true}
	}
}

// applyEdit runs a single-position edit and folds its outcome into a
// result, recording it for dot-repeat when it mutated.
func (e *Engine) applyEdit(cmd parser.Command, edit func() (operator.Outcome, error)) Result {
	out, err := edit()
	if err != nil {
		return Result{Consumed: true, Err: err}
	}
	e.cursor = e.clampToLine(out.Cursor)
	if out.Mutated {
		e.recordChange(cmd)
	}
	return Result{Consumed: true, Executed: true, Mutated: out.Mutated}
}

// applyRange runs an operator over a prebuilt range (D, Y, S, C).
func (e *Engine) applyRange(op operator.Kind, res *motion.Result, cmd parser.Command) Result {
	if res == nil {
		return Result{Consumed: true}
	}
	out, err := e.exec.Apply(e.buf, op, res, cmd.Register)
	if err != nil {
		return Result{Consumed: true, Err: err}
	}
	if out.EnterInsert {
		e.cursor = out.Cursor
		e.enterInsert()
	} else {
		e.cursor = e.clampToLine(out.Cursor)
	}
	if out.Mutated {
		e.recordChange(cmd)
	}
	return Result{Consumed: true, Executed: true, Mutated: out.Mutated}
}

// visualPaste replaces the selection with the selected register's
// content as it was before the selection was deleted.
func (e *Engine) visualPaste(cmd parser.Command) Result {
	name := cmd.Register
	var reg struct {
		content string
		kind    textbuf.RangeKind
	}
	if name != 0 {
		if r, ok := e.registers.Get(name); ok {
			reg.content, reg.kind = r.Content, r.Kind
		}
	} else if r, ok := e.registers.Unnamed(); ok {
		reg.content, reg.kind = r.Content, r.Kind
	}

	res := e.visualRange()
	e.leaveVisual()
	if res == nil {
		return Result{Consumed: true}
	}
	out, err := e.exec.Apply(e.buf, operator.KindDelete, res, 0)
	if err != nil {
		return Result{Consumed: true, Err: err}
	}
	e.cursor = out.Cursor
	if reg.content == "" {
		e.recordChange(cmd)
		return Result{Consumed: true, Executed: true, Mutated: out.Mutated}
	}

	text := e.buf.DocumentText()
	off, err := e.buf.PositionToOffset(e.cursor)
	if err != nil {
		return Result{Consumed: true, Err: err}
	}

	if reg.kind == textbuf.RangeLine {
		content := reg.content
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		ls := lineStartAt(text, off)
		if err := e.buf.InsertAt(ls, content); err != nil {
			return Result{Consumed: true, Err: err}
		}
		newText := e.buf.DocumentText()
		e.cursor = e.buf.OffsetToPosition(firstNonBlankAt(newText, ls, lineEndAt(newText, ls)))
	} else {
		if err := e.buf.InsertAt(off, reg.content); err != nil {
			return Result{Consumed: true, Err: err}
		}
		newText := e.buf.DocumentText()
		e.cursor = e.clampToLine(e.buf.OffsetToPosition(prevRune(newText, off+len(reg.content))))
	}

	e.recordChange(cmd)
	return Result{Consumed: true, Executed: true, Mutated: true}
}

// repeatLast replays the most recent mutating command.
func (e *Engine) repeatLast() Result {
	if e.last == nil {
		return Result{Consumed: true}
	}
	return e.ExecuteCommand(*e.last)
}

func firstNonBlankAt(text string, ls, le int) int {
	for i := ls; i < le; i++ {
		if text[i] != ' ' && text[i] != '\t' {
			return i
		}
	}
	return le
}
