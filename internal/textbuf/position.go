package textbuf

import "fmt"

// Position identifies a location in a buffer as a segment plus a local
// byte offset within that segment. Offset may equal the segment length
// (the slot just past the last byte, where the joining newline sits).
type Position struct {
	// Segment is the segment identifier.
	Segment int

	// Offset is the byte offset within the segment.
	Offset int
}

// Compare returns -1 if p is before other, 0 if equal, 1 if after.
func (p Position) Compare(other Position) int {
	if p.Segment != other.Segment {
		if p.Segment < other.Segment {
			return -1
		}
		return 1
	}
	if p.Offset != other.Offset {
		if p.Offset < other.Offset {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// String returns a human-readable representation.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Segment, p.Offset)
}
