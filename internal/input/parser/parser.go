// Package parser assembles vi-style commands one keystroke at a time.
// The parser is pure with respect to the buffer: it classifies keys into
// counts, registers, operators, motions, and text objects, signals when
// a command is complete, and reports unrecognized keys as unconsumed so
// a host can pass them through.
package parser

import (
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/register"
	"github.com/dshills/vicore/internal/textobject"
)

// Status indicates the result of feeding one key to the parser.
type Status uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending Status = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the key invalidated the pending command.
	// The command was reset and the key consumed.
	StatusInvalid

	// StatusPassthrough indicates the key was not consumed; the host
	// may act on it.
	StatusPassthrough
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Parse call.
type Result struct {
	// Status indicates the parse result.
	Status Status

	// Command is the parsed command when Status is StatusComplete.
	Command Command

	// Pending shows the accumulated keys for a status line.
	Pending string
}

// Parser builds commands from key events. One parser serves one editing
// session; it carries no buffer state.
type Parser struct {
	cmd    Command
	count1 CountState // pre-operator count
	count2 CountState // post-operator count

	// visual relaxes two rules: i/a start a text object without a
	// pending operator, and operator keys (plus the x s ~ u U visual
	// aliases) complete immediately against the selection.
	visual bool
}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Reset clears the in-flight command.
func (p *Parser) Reset() {
	p.cmd = Command{}
	p.count1.Reset()
	p.count2.Reset()
}

// SetVisual toggles visual-mode parsing rules. The engine flips this on
// every visual-mode transition.
func (p *Parser) SetVisual(v bool) {
	p.visual = v
}

// PendingKeys returns the accumulated keys for display.
func (p *Parser) PendingKeys() string {
	return string(p.cmd.Sequence)
}

// Pending reports whether any keys are accumulated.
func (p *Parser) Pending() bool {
	return len(p.cmd.Sequence) > 0
}

// Parse feeds one key event to the parser.
func (p *Parser) Parse(ev key.Event) Result {
	if ev.IsEscape() {
		if p.Pending() {
			p.Reset()
			return Result{Status: StatusInvalid}
		}
		return Result{Status: StatusPassthrough}
	}

	// Ctrl-V enters visual-block; every other modified or special key
	// is the host's problem.
	if ev.IsCtrl('v') {
		if p.cmd.Operator == operator.KindNone && p.cmd.WaitingFor == WaitNone {
			p.cmd.Kind = KindAction
			p.cmd.Action = VisualBlockKey
			return p.finish()
		}
		p.Reset()
		return Result{Status: StatusInvalid}
	}
	if !ev.IsRune() || ev.IsModified() {
		return Result{Status: StatusPassthrough}
	}

	r := ev.Rune
	p.cmd.Sequence = append(p.cmd.Sequence, r)

	switch p.cmd.WaitingFor {
	case WaitChar:
		return p.parseChar(r)
	case WaitRegisterName:
		return p.parseRegisterName(r)
	case WaitGCommand:
		return p.parseGCommand(r)
	case WaitTextObject:
		return p.parseTextObject(r)
	default:
		return p.parseKey(r)
	}
}

// parseKey handles a key with no special wait state, honoring the
// pending operator when one is set.
func (p *Parser) parseKey(r rune) Result {
	// Counts accumulate digit by digit; a leading 0 is the line-start
	// motion instead.
	if IsCountDigit(r) {
		count := &p.count1
		if p.cmd.Operator != operator.KindNone {
			count = &p.count2
		}
		if count.AccumulateDigit(r) {
			return p.pending()
		}
	}

	// Register selection.
	if r == '"' && p.cmd.Operator == operator.KindNone && p.cmd.Register == 0 {
		p.cmd.WaitingFor = WaitRegisterName
		return p.pending()
	}

	// Doubled operator key is the whole-line form (dd, yy, g~~).
	if p.cmd.Operator != operator.KindNone && r == p.cmd.Operator.Key() {
		return p.finishLinewise()
	}

	if p.visual {
		if op, ok := visualOperator(r); ok {
			p.cmd.Operator = op
			p.cmd.Kind = KindOperator
			return p.finish()
		}
	}

	if op, ok := operator.FromKey(r); ok {
		if p.cmd.Operator != operator.KindNone {
			p.Reset()
			return Result{Status: StatusInvalid}
		}
		p.cmd.Operator = op
		p.cmd.WaitingFor = WaitMotion
		return p.pending()
	}

	if r == 'g' {
		p.cmd.WaitingFor = WaitGCommand
		return p.pending()
	}

	// Char-seeking keys: f/F/t/T, and r outside operator context.
	if m, ok := motion.FromCharSearchKey(r); ok {
		p.cmd.Motion = m
		p.cmd.WaitingFor = WaitChar
		return p.pending()
	}
	if r == 'r' && p.cmd.Operator == operator.KindNone {
		p.cmd.Action = 'r'
		p.cmd.WaitingFor = WaitChar
		return p.pending()
	}

	// i/a are text-object modifiers under an operator or in visual
	// mode, insert-entry keys otherwise.
	if mod, ok := textobject.ModifierFromKey(r); ok &&
		(p.cmd.Operator != operator.KindNone || p.visual) {
		p.cmd.TextObjectMod = mod
		p.cmd.WaitingFor = WaitTextObject
		return p.pending()
	}

	if m, ok := motion.FromKey(r); ok {
		p.cmd.Motion = m
		if p.cmd.Operator != operator.KindNone {
			p.cmd.Kind = KindOperator
		} else {
			p.cmd.Kind = KindMotion
		}
		return p.finish()
	}

	if p.cmd.Operator != operator.KindNone {
		// Nothing else can give an operator a range.
		p.Reset()
		return Result{Status: StatusInvalid}
	}

	if isInsertEntry(r) {
		p.cmd.Kind = KindInsert
		p.cmd.Action = r
		return p.finish()
	}
	if isActionKey(r) {
		p.cmd.Kind = KindAction
		p.cmd.Action = r
		return p.finish()
	}

	// Unknown key: soft failure, report unconsumed.
	p.Reset()
	return Result{Status: StatusPassthrough}
}

// parseChar completes a char-seeking command with its target character.
func (p *Parser) parseChar(r rune) Result {
	p.cmd.Char = r
	switch {
	case p.cmd.Action == 'r':
		p.cmd.Kind = KindAction
	case p.cmd.Operator != operator.KindNone:
		p.cmd.Kind = KindOperator
	default:
		p.cmd.Kind = KindMotion
	}
	p.cmd.WaitingFor = WaitNone
	return p.finish()
}

// parseRegisterName captures the register name after ".
func (p *Parser) parseRegisterName(r rune) Result {
	if !register.IsValidName(r) {
		p.Reset()
		return Result{Status: StatusInvalid}
	}
	p.cmd.Register = r
	p.cmd.WaitingFor = WaitNone
	return p.pending()
}

// parseGCommand dispatches the key after a g prefix.
func (p *Parser) parseGCommand(r rune) Result {
	p.cmd.WaitingFor = WaitNone

	if m, ok := motion.FromGKey(r); ok {
		p.cmd.Motion = m
		if p.cmd.Operator != operator.KindNone {
			p.cmd.Kind = KindOperator
		} else {
			p.cmd.Kind = KindMotion
		}
		return p.finish()
	}

	if op, ok := operator.FromGKey(r); ok {
		if p.visual {
			p.cmd.Operator = op
			p.cmd.Kind = KindOperator
			return p.finish()
		}
		if p.cmd.Operator == op {
			return p.finishLinewise()
		}
		if p.cmd.Operator != operator.KindNone {
			p.Reset()
			return Result{Status: StatusInvalid}
		}
		p.cmd.Operator = op
		p.cmd.WaitingFor = WaitMotion
		return p.pending()
	}

	p.Reset()
	return Result{Status: StatusInvalid}
}

// parseTextObject completes the object after an i/a modifier.
func (p *Parser) parseTextObject(r rune) Result {
	obj, ok := textobject.FromKey(r)
	if !ok {
		p.Reset()
		return Result{Status: StatusInvalid}
	}
	p.cmd.TextObject = obj
	p.cmd.WaitingFor = WaitNone
	if p.cmd.Operator != operator.KindNone {
		p.cmd.Kind = KindOperator
	} else {
		p.cmd.Kind = KindTextObject
	}
	return p.finish()
}

// pending reports an incomplete command.
func (p *Parser) pending() Result {
	return Result{Status: StatusPending, Pending: p.PendingKeys()}
}

// finishLinewise completes the doubled-key whole-line form.
func (p *Parser) finishLinewise() Result {
	p.cmd.Kind = KindOperator
	p.cmd.Linewise = true
	p.cmd.WaitingFor = WaitNone
	return p.finish()
}

// finish folds the counts into the command, hands it out, and resets.
func (p *Parser) finish() Result {
	if p.count1.Active || p.count2.Active {
		p.cmd.Count = CombineCounts(p.count1.Value, p.count2.Value)
		p.cmd.CountGiven = true
	}
	cmd := p.cmd
	p.Reset()
	return Result{Status: StatusComplete, Command: cmd}
}

// insertEntryKeys enter insert mode, possibly after an edit (s S C).
var insertEntryKeys = map[rune]bool{
	'i': true, 'I': true, 'a': true, 'A': true,
	'o': true, 'O': true, 's': true, 'S': true, 'C': true,
}

// actionKeys are single-key actions, mode-entry keys, and ':'.
var actionKeys = map[rune]bool{
	'x': true, 'X': true, 'p': true, 'P': true,
	'u': true, '.': true, '~': true, 'J': true, 'K': true,
	'D': true, 'Y': true,
	'v': true, 'V': true, ':': true,
}

func isInsertEntry(r rune) bool {
	return insertEntryKeys[r]
}

func isActionKey(r rune) bool {
	return actionKeys[r]
}

// visualOperator maps the extra operator keys visual mode accepts.
func visualOperator(r rune) (operator.Kind, bool) {
	if op, ok := operator.FromKey(r); ok {
		return op, true
	}
	switch r {
	case 'x':
		return operator.KindDelete, true
	case 's':
		return operator.KindChange, true
	case '~':
		return operator.KindToggleCase, true
	case 'u':
		return operator.KindLowercase, true
	case 'U':
		return operator.KindUppercase, true
	default:
		return operator.KindNone, false
	}
}
