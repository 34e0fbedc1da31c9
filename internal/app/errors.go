package app

import "errors"

// ErrQuit signals a normal user-initiated exit from the event loop.
var ErrQuit = errors.New("quit")
