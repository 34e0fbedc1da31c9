package textbuf

import "github.com/rivo/uniseg"

// Grapheme helpers for hosts that render buffer content. Engine motion and
// object resolution work on runes and byte offsets; displays work on
// grapheme clusters and terminal cells, and these functions bridge the two.

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// DisplayWidth returns the terminal cell width of s.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// WidthAt returns the terminal cell width of s up to (not including) the
// given byte offset. Offsets inside a cluster count the whole cluster.
func WidthAt(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	width := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, w, next := uniseg.StepString(s, state)
		if pos >= offset {
			break
		}
		width += w >> uniseg.ShiftWidth
		pos += len(cluster)
		s = rest
		state = next
	}
	return width
}

// GraphemeStart returns the byte offset of the start of the grapheme
// cluster containing offset, so cursors never land mid-cluster.
func GraphemeStart(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(s) {
		offset = len(s)
	}
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, next := uniseg.StepString(s, state)
		end := pos + len(cluster)
		if offset < end {
			return pos
		}
		pos = end
		s = rest
		state = next
	}
	return pos
}

// NextGrapheme returns the byte offset just past the grapheme cluster
// starting at offset. Returns len(s) when offset is at or past the end.
func NextGrapheme(s string, offset int) int {
	if offset >= len(s) {
		return len(s)
	}
	if offset < 0 {
		offset = 0
	}
	cluster, _, _, _ := uniseg.StepString(s[offset:], -1)
	return offset + len(cluster)
}
