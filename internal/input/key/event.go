package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// Rune is a shorthand for an unmodified character event.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if any modifier is pressed. For character
// events Shift alone is not considered modified, since Shift already
// changed the character.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}

// IsBackspace returns true if this is Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// IsCtrl returns true if this is Ctrl plus the given character.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Modifiers.HasCtrl() &&
		!e.Modifiers.HasAlt() && !e.Modifiers.HasMeta()
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// String returns a canonical representation like "a", "Esc", or "C-v".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	if e.Modifiers.HasMeta() {
		parts = append(parts, "M")
	}
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	var keyName string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			keyName = "Space"
		} else {
			keyName = string(e.Rune)
		}
	case KeyEscape:
		keyName = "Esc"
	case KeyEnter:
		keyName = "Enter"
	case KeyBackspace:
		keyName = "BS"
	case KeyDelete:
		keyName = "Del"
	case KeyPageUp:
		keyName = "PgUp"
	case KeyPageDown:
		keyName = "PgDn"
	default:
		keyName = e.Key.String()
	}

	parts = append(parts, keyName)
	return strings.Join(parts, "-")
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
