package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/input/key"
)

// translateKey converts a tcell key event into the engine's key
// vocabulary. Unmapped keys come back as KeyNone and are dropped.
func translateKey(ev *tcell.EventKey) key.Event {
	mods := translateModifiers(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyRune:
		return key.Event{Key: key.KeyRune, Rune: ev.Rune(), Modifiers: mods}
	case tcell.KeyEscape:
		return key.Event{Key: key.KeyEscape, Modifiers: mods}
	case tcell.KeyEnter:
		return key.Event{Key: key.KeyEnter, Modifiers: mods}
	case tcell.KeyTab:
		return key.Event{Key: key.KeyTab, Modifiers: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.Event{Key: key.KeyBackspace, Modifiers: mods}
	case tcell.KeyDelete:
		return key.Event{Key: key.KeyDelete, Modifiers: mods}
	case tcell.KeyHome:
		return key.Event{Key: key.KeyHome, Modifiers: mods}
	case tcell.KeyEnd:
		return key.Event{Key: key.KeyEnd, Modifiers: mods}
	case tcell.KeyPgUp:
		return key.Event{Key: key.KeyPageUp, Modifiers: mods}
	case tcell.KeyPgDn:
		return key.Event{Key: key.KeyPageDown, Modifiers: mods}
	case tcell.KeyUp:
		return key.Event{Key: key.KeyUp, Modifiers: mods}
	case tcell.KeyDown:
		return key.Event{Key: key.KeyDown, Modifiers: mods}
	case tcell.KeyLeft:
		return key.Event{Key: key.KeyLeft, Modifiers: mods}
	case tcell.KeyRight:
		return key.Event{Key: key.KeyRight, Modifiers: mods}
	case tcell.KeyCtrlV:
		// tcell reports Ctrl-V as its own key, not a modified rune.
		return key.Event{Key: key.KeyRune, Rune: 'v', Modifiers: mods | key.ModCtrl}
	default:
		return key.Event{}
	}
}

func translateModifiers(mods tcell.ModMask) key.Modifier {
	var m key.Modifier
	if mods&tcell.ModShift != 0 {
		m |= key.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		m |= key.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		m |= key.ModAlt
	}
	if mods&tcell.ModMeta != 0 {
		m |= key.ModMeta
	}
	return m
}
