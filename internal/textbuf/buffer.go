package textbuf

import "strings"

// Buffer is the reference Adapter implementation: the document held in
// memory as one segment per line. It backs the demo host and the engine
// test suites; real hosts supply their own Adapter.
//
// Buffer is not safe for concurrent mutation. The engine's processing
// model is one keystroke at a time, so no locking is needed here.
type Buffer struct {
	lines    []string
	revision uint64
}

// NewBuffer creates a buffer from text. Line endings are normalized to
// a single newline. An empty document holds one empty segment.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: strings.Split(normalize(text), "\n")}
}

// normalize rewrites CRLF and bare CR line endings to LF.
func normalize(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// DocumentText returns the full document joined by newlines.
func (b *Buffer) DocumentText() string {
	return strings.Join(b.lines, "\n")
}

// Segments returns one segment per line, in order.
func (b *Buffer) Segments() []Segment {
	segs := make([]Segment, len(b.lines))
	for i, line := range b.lines {
		segs[i] = Segment{ID: i, Text: line}
	}
	return segs
}

// Len returns the document length in bytes.
func (b *Buffer) Len() int {
	n := 0
	for _, line := range b.lines {
		n += len(line)
	}
	if len(b.lines) > 1 {
		n += len(b.lines) - 1
	}
	return n
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of line i without its newline.
func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Revision returns a counter incremented by every mutation. Hosts compare
// revisions to detect unsaved changes.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// PositionToOffset converts a position to an absolute byte offset. The
// local offset is clamped to the segment length (the newline slot).
func (b *Buffer) PositionToOffset(pos Position) (int, error) {
	if pos.Segment < 0 || pos.Segment >= len(b.lines) {
		return 0, ErrSegmentUnknown
	}
	abs := 0
	for i := 0; i < pos.Segment; i++ {
		abs += len(b.lines[i]) + 1
	}
	local := pos.Offset
	if local < 0 {
		local = 0
	}
	if max := len(b.lines[pos.Segment]); local > max {
		local = max
	}
	return abs + local, nil
}

// OffsetToPosition converts an absolute byte offset to a position,
// clamping out-of-range offsets to the document boundaries. An offset on
// a joining newline resolves to the end of the preceding segment.
func (b *Buffer) OffsetToPosition(offset int) Position {
	if offset <= 0 {
		return Position{}
	}
	remaining := offset
	for i, line := range b.lines {
		if remaining <= len(line) {
			return Position{Segment: i, Offset: remaining}
		}
		remaining -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Position{Segment: last, Offset: len(b.lines[last])}
}

// SetRange replaces the bytes in [start, end) with text.
func (b *Buffer) SetRange(start, end int, text string) error {
	if start < 0 || end < start || end > b.Len() {
		return ErrRangeInvalid
	}
	b.splice(start, end, text)
	return nil
}

// InsertAt inserts text at the given byte offset.
func (b *Buffer) InsertAt(offset int, text string) error {
	if offset < 0 || offset > b.Len() {
		return ErrOffsetOutOfRange
	}
	b.splice(offset, offset, text)
	return nil
}

func (b *Buffer) splice(start, end int, text string) {
	doc := b.DocumentText()
	var sb strings.Builder
	sb.Grow(len(doc) - (end - start) + len(text))
	sb.WriteString(doc[:start])
	sb.WriteString(normalize(text))
	sb.WriteString(doc[end:])
	b.lines = strings.Split(sb.String(), "\n")
	b.revision++
}
