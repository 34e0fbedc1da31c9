// Package textbuf defines the text-buffer contract the editing engine
// depends on, plus a reference in-memory implementation.
//
// The engine never owns the document. A host exposes its document through
// the Adapter interface as an ordered sequence of segments (the reference
// implementation uses one segment per line) and the engine addresses text
// with absolute UTF-8 byte offsets over the joined document. Hosts with
// tree-shaped documents flatten them once in Segments; the engine never
// walks host-specific structures.
package textbuf

import "errors"

// Errors reported by adapter implementations.
var (
	// ErrOffsetOutOfRange indicates an offset beyond the document bounds.
	ErrOffsetOutOfRange = errors.New("textbuf: offset out of range")

	// ErrRangeInvalid indicates start > end or a range outside the document.
	ErrRangeInvalid = errors.New("textbuf: invalid range")

	// ErrSegmentUnknown indicates a Position referencing a segment the
	// buffer does not contain.
	ErrSegmentUnknown = errors.New("textbuf: unknown segment")
)

// Segment is one addressable piece of the document. Segment text never
// contains the separator that joins segments (a single newline).
type Segment struct {
	// ID identifies the segment within its snapshot.
	ID int

	// Text is the segment content without a trailing newline.
	Text string
}

// Adapter is the single integration surface between the engine and a host
// document. All offsets are UTF-8 byte offsets over DocumentText, and
// segments are joined by exactly one newline.
//
// A Position or offset is valid only for the buffer snapshot it was derived
// from; after SetRange or InsertAt it must be re-resolved.
type Adapter interface {
	// DocumentText returns the full document as a single string.
	DocumentText() string

	// Segments returns the document pieces in order.
	Segments() []Segment

	// PositionToOffset converts a segment-relative position to an absolute
	// byte offset. It fails with ErrSegmentUnknown when the position names
	// a segment the buffer does not contain.
	PositionToOffset(pos Position) (int, error)

	// OffsetToPosition converts an absolute byte offset to a position,
	// clamping offsets outside the document to the nearest boundary.
	OffsetToPosition(offset int) Position

	// SetRange replaces the bytes in [start, end) with text.
	SetRange(start, end int, text string) error

	// InsertAt inserts text at the given byte offset.
	InsertAt(offset int, text string) error
}
