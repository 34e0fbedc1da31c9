package editor

import "strings"

// runExCommand executes the minimal ex-command language: w, q, wq, x,
// q!, with an optional filename on the writing forms. The engine does no
// file I/O itself; save and quit surface as host actions. Unknown input
// produces a status message, never an error.
func (e *Engine) runExCommand(line string) Result {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Result{Consumed: true}
	}

	name := fields[0]
	var arg string
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch name {
	case "w":
		return Result{Consumed: true, Executed: true, Action: HostSave, FileName: arg}
	case "q":
		return Result{Consumed: true, Executed: true, Action: HostQuit}
	case "wq", "x":
		return Result{Consumed: true, Executed: true, Action: HostSaveQuit, FileName: arg}
	case "q!":
		return Result{Consumed: true, Executed: true, Action: HostForceQuit}
	default:
		return Result{Consumed: true, Status: "unknown command: " + name}
	}
}
