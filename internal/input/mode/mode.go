// Package mode tracks the editing mode and the visual selection. The set
// of modes is closed; transitions go through Machine so the visual
// anchor/head cannot outlive the mode that owns them.
package mode

// Mode identifies an editing mode.
type Mode uint8

const (
	// Normal is the command mode; the initial state.
	Normal Mode = iota

	// Insert accepts typed text.
	Insert

	// Visual is charwise selection.
	Visual

	// VisualLine is linewise selection.
	VisualLine

	// VisualBlock is rectangular selection.
	VisualBlock

	// CommandLine is ex-command entry after ':'.
	CommandLine
)

// String returns the mode name as shown in a status line.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Visual:
		return "visual"
	case VisualLine:
		return "visual-line"
	case VisualBlock:
		return "visual-block"
	case CommandLine:
		return "command-line"
	default:
		return "unknown"
	}
}

// IsVisual reports whether the mode carries a selection.
func (m Mode) IsVisual() bool {
	switch m {
	case Visual, VisualLine, VisualBlock:
		return true
	default:
		return false
	}
}
