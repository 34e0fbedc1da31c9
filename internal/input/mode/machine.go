package mode

import "github.com/dshills/vicore/internal/textbuf"

// Machine is the mode state machine. The zero value is usable and starts
// in Normal mode.
type Machine struct {
	mode   Mode
	anchor textbuf.Position
	head   textbuf.Position
}

// NewMachine creates a machine in Normal mode.
func NewMachine() *Machine {
	return &Machine{}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// InVisual reports whether a visual mode is active.
func (m *Machine) InVisual() bool {
	return m.mode.IsVisual()
}

// EnterInsert switches to insert mode. Any selection is dropped.
func (m *Machine) EnterInsert() {
	m.clearSelection()
	m.mode = Insert
}

// EnterNormal returns to normal mode and collapses any selection.
func (m *Machine) EnterNormal() {
	m.clearSelection()
	m.mode = Normal
}

// EnterCommandLine opens command-line mode. The selection is dropped.
func (m *Machine) EnterCommandLine() {
	m.clearSelection()
	m.mode = CommandLine
}

// EnterVisual switches to the given visual flavor with anchor and head at
// the cursor. Repeating the active flavor exits to normal; a different
// flavor switches in place and keeps the selection. Returns the resulting
// mode.
func (m *Machine) EnterVisual(flavor Mode, at textbuf.Position) Mode {
	if !flavor.IsVisual() {
		return m.mode
	}
	switch {
	case m.mode == flavor:
		m.EnterNormal()
	case m.mode.IsVisual():
		m.mode = flavor
	default:
		m.mode = flavor
		m.anchor = at
		m.head = at
	}
	return m.mode
}

// Anchor returns the fixed end of the selection.
func (m *Machine) Anchor() textbuf.Position {
	return m.anchor
}

// Head returns the moving end of the selection.
func (m *Machine) Head() textbuf.Position {
	return m.head
}

// SetHead moves the selection head. Ignored outside visual modes.
func (m *Machine) SetHead(p textbuf.Position) {
	if m.mode.IsVisual() {
		m.head = p
	}
}

// SetSelection replaces both ends, for text objects reshaping the
// selection. Ignored outside visual modes.
func (m *Machine) SetSelection(anchor, head textbuf.Position) {
	if m.mode.IsVisual() {
		m.anchor = anchor
		m.head = head
	}
}

// SwapEnds exchanges anchor and head (the o key in visual mode).
func (m *Machine) SwapEnds() {
	if m.mode.IsVisual() {
		m.anchor, m.head = m.head, m.anchor
	}
}

func (m *Machine) clearSelection() {
	m.anchor = textbuf.Position{}
	m.head = textbuf.Position{}
}
