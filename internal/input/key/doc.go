// Package key defines the keystroke vocabulary the editing engine
// consumes: a Key identifier for special keys, a Modifier bitmask, and
// the Event value hosts construct from their input source. The engine
// never reads terminal escape sequences itself; hosts translate their
// native key events (tcell, GUI toolkits) into key.Event once at the
// boundary.
package key
