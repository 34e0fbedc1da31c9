package editor

import (
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/parser"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/textbuf"
	"github.com/dshills/vicore/internal/textobject"
)

// ExecuteCommand runs one complete parsed command against the buffer.
func (e *Engine) ExecuteCommand(cmd parser.Command) Result {
	switch cmd.Kind {
	case parser.KindMotion:
		return e.execMotion(cmd)
	case parser.KindOperator:
		return e.execOperator(cmd)
	case parser.KindTextObject:
		return e.execTextObject(cmd)
	case parser.KindInsert:
		return e.execInsertEntry(cmd)
	case parser.KindAction:
		return e.execAction(cmd)
	default:
		return Result{Consumed: true}
	}
}

// ExecuteMotion moves the cursor by one motion, outside the key path.
// Returns the new cursor position.
func (e *Engine) ExecuteMotion(kind motion.Kind, count int, char rune) textbuf.Position {
	res := motion.Resolve(e.buf, e.cursor, kind, count, char)
	if res == nil {
		return e.cursor
	}
	e.moveTo(res.Head)
	return e.cursor
}

// FindTextObject resolves a text object at the cursor without executing
// anything. Returns nil when no object is found.
func (e *Engine) FindTextObject(mod textobject.Modifier, kind textobject.Kind) *motion.Result {
	return textobject.Resolve(e.buf, e.cursor, mod, kind)
}

// execMotion moves the cursor; in visual modes it drags the selection
// head along.
func (e *Engine) execMotion(cmd parser.Command) Result {
	res := motion.Resolve(e.buf, e.cursor, cmd.Motion, cmd.Count, cmd.Char)
	if res == nil {
		return Result{Consumed: true}
	}
	e.moveTo(res.Head)
	return Result{Consumed: true, Executed: true}
}

// moveTo places the cursor, clamping onto the line in normal mode and
// updating the selection head in visual modes.
func (e *Engine) moveTo(p textbuf.Position) {
	if e.machine.InVisual() {
		e.machine.SetHead(p)
		e.cursor = p
		return
	}
	e.cursor = e.clampToLine(p)
}

// execOperator resolves the operator's range (visual selection, doubled
// whole-line form, text object, or motion) and applies it.
func (e *Engine) execOperator(cmd parser.Command) Result {
	var res *motion.Result
	wasVisual := e.machine.InVisual()

	switch {
	case wasVisual:
		res = e.visualRange()
		e.leaveVisual()
	case cmd.Linewise:
		res = e.linewiseRange(cmd.EffectiveCount())
	case cmd.TextObject != textobject.KindNone:
		res = textobject.Resolve(e.buf, e.cursor, cmd.TextObjectMod, cmd.TextObject)
	default:
		res = motion.Resolve(e.buf, e.cursor, cmd.Motion, cmd.Count, cmd.Char)
	}

	// A failed resolution (or a find that matched nothing) is a no-op;
	// the pending state is already cleared.
	if res == nil || (res.Kind == textbuf.RangeChar && res.Empty()) {
		return Result{Consumed: true, Executed: true}
	}

	out, err := e.exec.Apply(e.buf, cmd.Operator, res, cmd.Register)
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
	return Result{Consumed: true, Executed: true, Mutated: out.Mutated, Filter: out.Filter}
}

// visualRange converts the selection into an operator range. Charwise
// and blockwise selections include the head character.
func (e *Engine) visualRange() *motion.Result {
	anchor, head := e.machine.Anchor(), e.machine.Head()
	switch e.machine.Mode() {
	case mode.Visual:
		return &motion.Result{Kind: textbuf.RangeChar, Anchor: anchor, Head: head, Inclusive: true}
	case mode.VisualLine:
		return &motion.Result{Kind: textbuf.RangeLine, Anchor: anchor, Head: head}
	case mode.VisualBlock:
		return &motion.Result{Kind: textbuf.RangeBlock, Anchor: anchor, Head: head, Inclusive: true}
	default:
		return nil
	}
}

// linewiseRange covers count lines starting at the cursor, for the
// doubled-key forms and S / Y.
func (e *Engine) linewiseRange(count int) *motion.Result {
	res := &motion.Result{Kind: textbuf.RangeLine, Anchor: e.cursor, Head: e.cursor}
	if count > 1 {
		if down := motion.Resolve(e.buf, e.cursor, motion.KindDown, count-1, 0); down != nil {
			res.Head = down.Head
		}
	}
	return res
}

// execTextObject reshapes the visual selection to the object under the
// cursor.
func (e *Engine) execTextObject(cmd parser.Command) Result {
	if !e.machine.InVisual() {
		return Result{Consumed: true}
	}
	res := textobject.Resolve(e.buf, e.cursor, cmd.TextObjectMod, cmd.TextObject)
	if res == nil {
		return Result{Consumed: true}
	}

	// Charwise resolutions carry an exclusive end, so the selection head
	// sits on the last character. Linewise resolutions carry the start of
	// the last covered line; the head moves to that line's end so the
	// selection spans every covered line.
	head := res.Head
	startOff, errS := e.buf.PositionToOffset(res.Anchor)
	endOff, errE := e.buf.PositionToOffset(res.Head)
	if errS == nil && errE == nil {
		text := e.buf.DocumentText()
		if res.Kind == textbuf.RangeLine {
			head = e.buf.OffsetToPosition(lineEndAt(text, endOff))
		} else if endOff > startOff {
			head = e.buf.OffsetToPosition(prevRune(text, endOff))
		}
	}

	e.machine.SetSelection(res.Anchor, head)
	e.cursor = head
	return Result{Consumed: true, Executed: true}
}

// recordChange remembers a mutating command for dot-repeat.
func (e *Engine) recordChange(cmd parser.Command) {
	c := cmd
	c.Sequence = nil
	e.last = &c
}
