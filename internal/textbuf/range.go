package textbuf

// RangeKind classifies a span of buffer text. Character ranges cover an
// arbitrary byte span, line ranges cover whole lines including trailing
// newlines, and block ranges cover a column rectangle across lines.
type RangeKind int

const (
	// RangeChar is a character-wise span.
	RangeChar RangeKind = iota

	// RangeLine is a line-wise span.
	RangeLine

	// RangeBlock is a block-wise (rectangular) span.
	RangeBlock
)

// String returns the kind name.
func (k RangeKind) String() string {
	switch k {
	case RangeChar:
		return "char"
	case RangeLine:
		return "line"
	case RangeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// ParseRangeKind converts a kind name back to its value. Unknown names
// default to RangeChar.
func ParseRangeKind(s string) RangeKind {
	switch s {
	case "line":
		return RangeLine
	case "block":
		return RangeBlock
	default:
		return RangeChar
	}
}
