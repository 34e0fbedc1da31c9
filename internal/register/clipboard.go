package register

import "github.com/atotto/clipboard"

// ClipboardProvider abstracts system clipboard access for the + and *
// registers.
type ClipboardProvider interface {
	// Get returns the current clipboard content.
	Get() (string, error)

	// Set sets the clipboard content.
	Set(content string) error
}

// SystemClipboard is a ClipboardProvider over the platform clipboard.
type SystemClipboard struct{}

// NewSystemClipboard returns a provider for the platform clipboard, or
// nil when no clipboard mechanism is available (headless systems).
func NewSystemClipboard() *SystemClipboard {
	if clipboard.Unsupported {
		return nil
	}
	return &SystemClipboard{}
}

// Get reads the clipboard.
func (c *SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the clipboard.
func (c *SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}
