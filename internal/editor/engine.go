// Package editor ties the parser, motion engine, text-object resolver,
// operator executor, register bank, and mode machine together behind one
// Engine facade. The engine owns the cursor and all per-session state;
// multiple independent engines can coexist in a process.
package editor

import (
	"unicode/utf8"

	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/parser"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/register"
	"github.com/dshills/vicore/internal/textbuf"
)

// Engine is one editing session over one buffer adapter. It is
// single-threaded: each keystroke is processed to completion before the
// next is accepted.
type Engine struct {
	buf       textbuf.Adapter
	parser    *parser.Parser
	machine   *mode.Machine
	registers *register.Store
	exec      *operator.Executor

	cursor  textbuf.Position
	cmdline []rune

	// last is the most recent buffer-mutating command, for dot-repeat.
	last *parser.Command
}

// New creates an engine over the given buffer adapter.
func New(buf textbuf.Adapter) *Engine {
	regs := register.NewStore()
	return &Engine{
		buf:       buf,
		parser:    parser.New(),
		machine:   mode.NewMachine(),
		registers: regs,
		exec:      operator.NewExecutor(regs),
	}
}

// Mode returns the current editing mode.
func (e *Engine) Mode() mode.Mode {
	return e.machine.Mode()
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() textbuf.Position {
	return e.cursor
}

// SetCursor moves the cursor. Positions the adapter rejects are ignored.
func (e *Engine) SetCursor(p textbuf.Position) {
	if _, err := e.buf.PositionToOffset(p); err != nil {
		return
	}
	e.cursor = p
}

// PendingKeys returns the accumulated command keys for display.
func (e *Engine) PendingKeys() string {
	return e.parser.PendingKeys()
}

// CommandLine returns the command line being typed after ':'.
func (e *Engine) CommandLine() string {
	return string(e.cmdline)
}

// Registers returns the register bank.
func (e *Engine) Registers() *register.Store {
	return e.registers
}

// Register returns one register by name.
func (e *Engine) Register(name rune) (register.Register, bool) {
	return e.registers.Get(name)
}

// Selection returns the visual anchor and head. Meaningful only while a
// visual mode is active.
func (e *Engine) Selection() (anchor, head textbuf.Position) {
	return e.machine.Anchor(), e.machine.Head()
}

// SetShiftWidth sets the indent width used by > and <.
func (e *Engine) SetShiftWidth(w int) {
	e.exec.SetShiftWidth(w)
}

// SetClipboard installs the system clipboard provider for + and *.
func (e *Engine) SetClipboard(p register.ClipboardProvider) {
	e.registers.SetClipboard(p)
}

// ParseKey feeds one key to the parser without executing anything.
func (e *Engine) ParseKey(ev key.Event) parser.Result {
	return e.parser.Parse(ev)
}

// HandleKey parses and executes one keystroke.
func (e *Engine) HandleKey(ev key.Event) Result {
	switch e.machine.Mode() {
	case mode.Insert:
		return e.handleInsertKey(ev)
	case mode.CommandLine:
		return e.handleCommandLineKey(ev)
	default:
		return e.handleCommandKey(ev)
	}
}

// handleCommandKey routes normal- and visual-mode keys through the
// parser.
func (e *Engine) handleCommandKey(ev key.Event) Result {
	res := e.parser.Parse(ev)
	switch res.Status {
	case parser.StatusPending:
		return Result{Consumed: true, Pending: res.Pending}
	case parser.StatusComplete:
		return e.ExecuteCommand(res.Command)
	case parser.StatusInvalid:
		return Result{Consumed: true}
	default:
		// Escape with nothing pending collapses a visual selection.
		if ev.IsEscape() && e.machine.InVisual() {
			e.leaveVisual()
			return Result{Consumed: true}
		}
		return Result{}
	}
}

// handleInsertKey edits the buffer directly: runes insert, Backspace
// deletes one rune backward, Enter splits the line. Everything else is
// reported unconsumed.
func (e *Engine) handleInsertKey(ev key.Event) Result {
	switch {
	case ev.IsEscape():
		e.machine.EnterNormal()
		e.cursor = e.stepBackInLine(e.cursor)
		return Result{Consumed: true, Executed: true}

	case ev.IsEnter():
		return e.insertText("\n")

	case ev.IsBackspace():
		off, err := e.buf.PositionToOffset(e.cursor)
		if err != nil {
			return Result{Consumed: true, Err: err}
		}
		if off == 0 {
			return Result{Consumed: true}
		}
		start := prevRune(e.buf.DocumentText(), off)
		if err := e.buf.SetRange(start, off, ""); err != nil {
			return Result{Consumed: true, Err: err}
		}
		e.cursor = e.buf.OffsetToPosition(start)
		return Result{Consumed: true, Executed: true, Mutated: true}

	case ev.IsRune() && !ev.IsModified():
		return e.insertText(string(ev.Rune))

	default:
		return Result{}
	}
}

// insertText inserts text at the cursor and advances past it.
func (e *Engine) insertText(text string) Result {
	off, err := e.buf.PositionToOffset(e.cursor)
	if err != nil {
		return Result{Consumed: true, Err: err}
	}
	if err := e.buf.InsertAt(off, text); err != nil {
		return Result{Consumed: true, Err: err}
	}
	e.cursor = e.buf.OffsetToPosition(off + len(text))
	return Result{Consumed: true, Executed: true, Mutated: true}
}

// handleCommandLineKey accumulates the ex command after ':'. Enter
// executes, Escape cancels, Backspace on an empty line cancels too.
func (e *Engine) handleCommandLineKey(ev key.Event) Result {
	switch {
	case ev.IsEscape():
		e.cmdline = e.cmdline[:0]
		e.machine.EnterNormal()
		return Result{Consumed: true}

	case ev.IsEnter():
		line := string(e.cmdline)
		e.cmdline = e.cmdline[:0]
		e.machine.EnterNormal()
		return e.runExCommand(line)

	case ev.IsBackspace():
		if len(e.cmdline) == 0 {
			e.machine.EnterNormal()
			return Result{Consumed: true}
		}
		e.cmdline = e.cmdline[:len(e.cmdline)-1]
		return Result{Consumed: true}

	case ev.IsRune() && !ev.IsModified():
		e.cmdline = append(e.cmdline, ev.Rune)
		return Result{Consumed: true}

	default:
		return Result{}
	}
}

// Mode plumbing. The parser's visual flag follows the machine so i/a and
// the operator aliases parse correctly.

func (e *Engine) enterVisual(flavor mode.Mode) {
	m := e.machine.EnterVisual(flavor, e.cursor)
	e.parser.SetVisual(m.IsVisual())
}

func (e *Engine) leaveVisual() {
	e.machine.EnterNormal()
	e.parser.SetVisual(false)
}

func (e *Engine) enterInsert() {
	e.machine.EnterInsert()
	e.parser.SetVisual(false)
}

// Cursor helpers. Normal mode keeps the cursor on a character, never on
// the newline or past the end of a line.

// clampToLine pulls a position back onto the last character of its line.
func (e *Engine) clampToLine(p textbuf.Position) textbuf.Position {
	off, err := e.buf.PositionToOffset(p)
	if err != nil {
		return p
	}
	text := e.buf.DocumentText()
	if off >= len(text) || text[off] == '\n' {
		ls := lineStartAt(text, off)
		if off > ls {
			return e.buf.OffsetToPosition(prevRune(text, off))
		}
	}
	return p
}

// stepBackInLine moves one rune left without crossing the line start.
func (e *Engine) stepBackInLine(p textbuf.Position) textbuf.Position {
	off, err := e.buf.PositionToOffset(p)
	if err != nil {
		return p
	}
	text := e.buf.DocumentText()
	if ls := lineStartAt(text, off); off > ls {
		return e.buf.OffsetToPosition(prevRune(text, off))
	}
	return p
}

func prevRune(text string, off int) int {
	if off <= 0 {
		return 0
	}
	_, size := utf8.DecodeLastRuneInString(text[:off])
	return off - size
}

func nextRune(text string, off int) int {
	if off >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRuneInString(text[off:])
	return off + size
}

func lineStartAt(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	for i := off - 1; i >= 0; i-- {
		if text[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

func lineEndAt(text string, off int) int {
	for i := off; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return len(text)
}
