package parser

import (
	"github.com/dshills/vicore/internal/motion"
	"github.com/dshills/vicore/internal/operator"
	"github.com/dshills/vicore/internal/textobject"
)

// Kind classifies a completed command.
type Kind uint8

const (
	// KindIncomplete marks a command still being assembled.
	KindIncomplete Kind = iota

	// KindMotion is a bare motion (cursor movement).
	KindMotion

	// KindOperator is an operator plus the motion, text object, or
	// doubled-key line form that gives it a range.
	KindOperator

	// KindTextObject is a text object with no operator (visual mode
	// reshapes the selection with it).
	KindTextObject

	// KindInsert is an insert-entry key (i I a A o O s S C).
	KindInsert

	// KindAction is a single-key action (x p J ...), a mode-entry key,
	// or the ':' command-line key.
	KindAction
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIncomplete:
		return "incomplete"
	case KindMotion:
		return "motion"
	case KindOperator:
		return "operator"
	case KindTextObject:
		return "text-object"
	case KindInsert:
		return "insert"
	case KindAction:
		return "action"
	default:
		return "unknown"
	}
}

// Wait identifies what the parser needs next to finish the command.
type Wait uint8

const (
	// WaitNone means nothing is pending.
	WaitNone Wait = iota

	// WaitChar awaits the target character for f/F/t/T/r.
	WaitChar

	// WaitMotion awaits a motion after an operator.
	WaitMotion

	// WaitTextObject awaits the object key after i or a.
	WaitTextObject

	// WaitRegisterName awaits the register name after ".
	WaitRegisterName

	// WaitGCommand awaits the key after a g prefix.
	WaitGCommand
)

// String returns the wait-state name.
func (w Wait) String() string {
	switch w {
	case WaitNone:
		return "none"
	case WaitChar:
		return "char"
	case WaitMotion:
		return "motion"
	case WaitTextObject:
		return "text-object"
	case WaitRegisterName:
		return "register-name"
	case WaitGCommand:
		return "g-command"
	default:
		return "unknown"
	}
}

// VisualBlockKey is the Action rune reported for Ctrl-V.
const VisualBlockKey rune = 0x16

// Command is one assembled editing command. It is built key by key and
// consumed as a value once complete.
type Command struct {
	// Kind classifies the completed command.
	Kind Kind

	// Count is the combined repeat count (0 when none was typed).
	Count int

	// CountGiven reports whether an explicit count was typed. G uses
	// this to distinguish "last line" from "line N".
	CountGiven bool

	// Register is the explicitly selected register (0 for none).
	Register rune

	// Operator is the pending or completed operator.
	Operator operator.Kind

	// Motion is the motion, when one was parsed.
	Motion motion.Kind

	// TextObjectMod is the inner/around modifier.
	TextObjectMod textobject.Modifier

	// TextObject is the object, when one was parsed.
	TextObject textobject.Kind

	// Char is the target character for find motions and replace.
	Char rune

	// Action is the completing key for insert and action commands
	// (VisualBlockKey for Ctrl-V).
	Action rune

	// Linewise marks doubled-key whole-line forms (dd, cc, yy, g~~).
	Linewise bool

	// WaitingFor is what the parser still needs.
	WaitingFor Wait

	// Sequence is the raw keys accumulated so far.
	Sequence []rune
}

// Complete reports whether the command is ready to execute. It is the
// only signal a caller needs to decide between executing and feeding
// more keys.
func (c *Command) Complete() bool {
	return c.Kind != KindIncomplete && c.WaitingFor == WaitNone
}

// EffectiveCount returns the count to apply (1 when none was typed).
func (c *Command) EffectiveCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}
