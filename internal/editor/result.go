package editor

import "github.com/dshills/vicore/internal/operator"

// HostAction is a request the engine surfaces to its host. The engine
// performs no file I/O and keeps no undo history; saving, quitting, undo,
// and keyword lookup are the host's job.
type HostAction uint8

const (
	// HostNone requests nothing.
	HostNone HostAction = iota

	// HostSave requests writing the buffer (:w).
	HostSave

	// HostQuit requests closing the session (:q).
	HostQuit

	// HostSaveQuit requests save then quit (:wq, :x).
	HostSaveQuit

	// HostForceQuit requests quit discarding changes (:q!).
	HostForceQuit

	// HostUndo requests an undo step (u).
	HostUndo

	// HostLookup requests keyword lookup under the cursor (K).
	HostLookup
)

// String returns the action name.
func (a HostAction) String() string {
	switch a {
	case HostNone:
		return "none"
	case HostSave:
		return "save"
	case HostQuit:
		return "quit"
	case HostSaveQuit:
		return "save-quit"
	case HostForceQuit:
		return "force-quit"
	case HostUndo:
		return "undo"
	case HostLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

// Result reports what one keystroke (or one executed command) did.
type Result struct {
	// Consumed reports whether the engine used the key. An unconsumed
	// key may be handled by the host.
	Consumed bool

	// Executed reports whether a complete command ran.
	Executed bool

	// Mutated reports whether the buffer changed.
	Mutated bool

	// Pending shows accumulated command keys for a status line.
	Pending string

	// Status is a user-visible message (unknown ex command, etc).
	Status string

	// Action is a request for the host.
	Action HostAction

	// FileName is the filename argument of :w / :wq, when given.
	FileName string

	// Filter is the resolved range of a = / gq / ! operator; the host
	// reformats or filters it externally.
	Filter *operator.FilterRequest

	// Err carries adapter failures through to the host. The engine has
	// already cleared its pending state.
	Err error
}
