package motion

import (
	"testing"

	"github.com/dshills/vicore/internal/textbuf"
)

// resolveOffset runs a motion from a byte offset and reports the head
// byte offset, using nil results as -1.
func resolveOffset(t *testing.T, text string, from int, kind Kind, count int, char rune) int {
	t.Helper()
	buf := textbuf.NewBuffer(text)
	res := Resolve(buf, buf.OffsetToPosition(from), kind, count, char)
	if res == nil {
		return -1
	}
	head, err := buf.PositionToOffset(res.Head)
	if err != nil {
		t.Fatalf("head position %v not convertible: %v", res.Head, err)
	}
	return head
}

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Kind
	}{
		{'h', KindLeft},
		{'j', KindDown},
		{'k', KindUp},
		{'l', KindRight},
		{'w', KindWordForward},
		{'W', KindBigWordForward},
		{'b', KindWordBackward},
		{'B', KindBigWordBackward},
		{'e', KindWordEnd},
		{'E', KindBigWordEnd},
		{'0', KindLineStart},
		{'^', KindFirstNonBlank},
		{'$', KindLineEnd},
		{'{', KindParagraphBackward},
		{'}', KindParagraphForward},
		{'(', KindSentenceBackward},
		{')', KindSentenceForward},
		{'G', KindDocumentEnd},
		{'%', KindMatchPair},
		{'q', KindNone},
		{'f', KindNone}, // char-seeking keys resolve via FromCharSearchKey
	}
	for _, tt := range tests {
		if got, _ := FromKey(tt.key); got != tt.want {
			t.Errorf("FromKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFromCharSearchKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Kind
	}{
		{'f', KindFindForward},
		{'F', KindFindBackward},
		{'t', KindTillForward},
		{'T', KindTillBackward},
		{'w', KindNone},
	}
	for _, tt := range tests {
		if got, _ := FromCharSearchKey(tt.key); got != tt.want {
			t.Errorf("FromCharSearchKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestFromGKey(t *testing.T) {
	tests := []struct {
		key  rune
		want Kind
	}{
		{'g', KindDocumentStart},
		{'e', KindWordEndBackward},
		{'E', KindBigWordEndBackward},
		{'_', KindLastNonBlank},
		{'x', KindNone},
	}
	for _, tt := range tests {
		if got, _ := FromGKey(tt.key); got != tt.want {
			t.Errorf("FromGKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestHorizontalSteps(t *testing.T) {
	text := "abc\ndef\n"
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"l advances", 0, KindRight, 1, 1},
		{"l stops at newline slot", 2, KindRight, 1, 3},
		{"l never crosses lines", 2, KindRight, 5, 3},
		{"h retreats", 2, KindLeft, 1, 1},
		{"h stops at line start", 4, KindLeft, 3, 4},
		{"count compounds", 0, KindRight, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerticalGoalColumn(t *testing.T) {
	// Columns:      0123     01      0123456
	text := "abcd\nxy\nlonger line"
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"j keeps column", 2, KindDown, 1, 7},  // abcd col2 -> xy col2 clamps to newline slot
		{"j to longer line", 1, KindDown, 1, 6}, // col1 of xy
		{"2j restores column past short line", 2, KindDown, 2, 10}, // col2 of "longer line"
		{"k keeps column", 9, KindUp, 1, 6},     // col1 of "longer line" -> col1 of xy
		{"2k restores column", 11, KindUp, 2, 3}, // col3 -> abcd col3
		{"j at last line stays", 9, KindDown, 1, 9},
		{"k at first line stays", 2, KindUp, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVerticalIsLinewise(t *testing.T) {
	buf := textbuf.NewBuffer("one\ntwo\n")
	res := Resolve(buf, buf.OffsetToPosition(0), KindDown, 1, 0)
	if res == nil {
		t.Fatal("expected result")
	}
	if res.Kind != textbuf.RangeLine {
		t.Errorf("j kind = %v, want %v", res.Kind, textbuf.RangeLine)
	}
	res = Resolve(buf, buf.OffsetToPosition(0), KindRight, 1, 0)
	if res == nil {
		t.Fatal("expected result")
	}
	if res.Kind != textbuf.RangeChar {
		t.Errorf("l kind = %v, want %v", res.Kind, textbuf.RangeChar)
	}
}

func TestWordForward(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"word to word", "foo bar baz", 0, KindWordForward, 1, 4},
		{"count compounds", "foo bar baz", 0, KindWordForward, 2, 8},
		{"punctuation is its own word", "foo.bar", 0, KindWordForward, 1, 3},
		{"from punctuation to word", "foo.bar", 3, KindWordForward, 1, 4},
		{"underscore stays in word", "foo_bar baz", 0, KindWordForward, 1, 8},
		{"whitespace start skips to word", "  foo", 0, KindWordForward, 1, 2},
		{"crosses newline", "foo\nbar", 0, KindWordForward, 1, 4},
		{"W ignores punctuation", "foo.bar baz", 0, KindBigWordForward, 1, 8},
		{"stops at document end", "foo", 1, KindWordForward, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, tt.text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordBackward(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"to start of current word", "foo bar", 6, KindWordBackward, 1, 4},
		{"from word start to previous", "foo bar", 4, KindWordBackward, 1, 0},
		{"count compounds", "foo bar baz", 8, KindWordBackward, 2, 0},
		{"punctuation run", "foo..bar", 5, KindWordBackward, 1, 3},
		{"B ignores punctuation", "foo.bar baz", 8, KindBigWordBackward, 1, 0},
		{"stops at document start", "foo bar", 4, KindWordBackward, 5, 0},
		{"crosses newline", "foo\nbar", 4, KindWordBackward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, tt.text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWordEnd(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"to end of current word", "foo bar", 0, KindWordEnd, 1, 2},
		{"from word end to next end", "foo bar", 2, KindWordEnd, 1, 6},
		{"count compounds", "foo bar baz", 0, KindWordEnd, 2, 6},
		{"punctuation end", "foo.bar", 2, KindWordEnd, 1, 3},
		{"E ignores punctuation", "foo.bar baz", 0, KindBigWordEnd, 1, 6},
		{"ge to previous word end", "foo bar", 4, KindWordEndBackward, 1, 2},
		{"ge from mid word", "foo bar", 6, KindWordEndBackward, 1, 2},
		{"ge lands on punctuation run", "foo. bar", 5, KindWordEndBackward, 1, 3},
		{"gE ignores punctuation", "foo. bar", 5, KindBigWordEndBackward, 1, 3},
		{"ge at document start stays", "foo", 0, KindWordEndBackward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, tt.text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLineBoundMotions(t *testing.T) {
	text := "  hello  \nplain\n\n"
	tests := []struct {
		name string
		from int
		kind Kind
		want int
	}{
		{"0 to line start", 7, KindLineStart, 0},
		{"caret to first non blank", 7, KindFirstNonBlank, 2},
		{"dollar to last char", 2, KindLineEnd, 8},
		{"g_ to last non blank", 2, KindLastNonBlank, 6},
		{"0 on second line", 12, KindLineStart, 10},
		{"dollar on empty line", 16, KindLineEnd, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, 1, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLineEndInclusive(t *testing.T) {
	buf := textbuf.NewBuffer("abc\n")
	res := Resolve(buf, buf.OffsetToPosition(0), KindLineEnd, 1, 0)
	if res == nil {
		t.Fatal("expected result")
	}
	if !res.Inclusive {
		t.Error("$ should be inclusive")
	}

	// On an empty line $ has nothing to include.
	buf = textbuf.NewBuffer("\nabc\n")
	res = Resolve(buf, buf.OffsetToPosition(0), KindLineEnd, 1, 0)
	if res == nil {
		t.Fatal("expected result")
	}
	if res.Inclusive {
		t.Error("$ on empty line should not be inclusive")
	}
	if !res.Empty() {
		t.Error("$ on empty line should span nothing")
	}
}

func TestFindMotions(t *testing.T) {
	text := "axbxcx\nrest"
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		char  rune
		want  int
	}{
		{"f finds forward", 0, KindFindForward, 1, 'x', 1},
		{"2f finds second occurrence", 0, KindFindForward, 2, 'x', 3},
		{"3f finds third occurrence", 0, KindFindForward, 3, 'x', 5},
		{"t lands before match", 0, KindTillForward, 1, 'b', 1},
		{"2t before second occurrence", 0, KindTillForward, 2, 'x', 2},
		{"F finds backward", 5, KindFindBackward, 1, 'x', 3},
		{"2F second backward", 5, KindFindBackward, 2, 'x', 1},
		{"T lands after match", 5, KindTillBackward, 1, 'b', 3},
		{"f no match stays", 0, KindFindForward, 1, 'z', 0},
		{"count beyond occurrences stays", 0, KindFindForward, 4, 'x', 0},
		{"f does not cross newline", 3, KindFindForward, 1, 'r', 3},
		{"t adjacent target stays", 0, KindTillForward, 1, 'x', 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, tt.char)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindNoMatchCompletes(t *testing.T) {
	buf := textbuf.NewBuffer("hello\n")
	res := Resolve(buf, buf.OffsetToPosition(0), KindFindForward, 1, 'z')
	if res == nil {
		t.Fatal("fz must complete as a no-op, not fail")
	}
	if !res.Empty() {
		t.Errorf("fz should span nothing, got anchor %v head %v inclusive %v",
			res.Anchor, res.Head, res.Inclusive)
	}
}

func TestParagraphMotions(t *testing.T) {
	text := "one\ntwo\n\nthree\nfour\n\n\nfive\n"
	// Offsets: one=0 two=4 blank=8 three=9 four=15 blank=20 blank=21 five=22
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"} to next blank line", 0, KindParagraphForward, 1, 8},
		{"} from mid paragraph", 10, KindParagraphForward, 1, 20},
		{"2} compounds", 0, KindParagraphForward, 2, 20},
		{"} from blank line to next blank", 8, KindParagraphForward, 1, 20},
		{"} at tail goes to document end", 23, KindParagraphForward, 1, 27},
		{"{ to previous blank line", 15, KindParagraphBackward, 1, 8},
		{"{ from blank to previous blank", 20, KindParagraphBackward, 1, 8},
		{"{ at head goes to document start", 5, KindParagraphBackward, 1, 0},
		{"2{ compounds", 22, KindParagraphBackward, 2, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSentenceMotions(t *testing.T) {
	text := "One two. Three four! Five?\nSix."
	// Sentence starts: 0, 9 ("Three"), 21 ("Five"), 27 ("Six").
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{") to next sentence", 0, KindSentenceForward, 1, 9},
		{") from mid sentence", 3, KindSentenceForward, 1, 9},
		{"2) compounds", 0, KindSentenceForward, 2, 21},
		{") over newline separator", 22, KindSentenceForward, 1, 27},
		{") at last sentence goes to end", 28, KindSentenceForward, 1, 31},
		{"( to sentence start", 12, KindSentenceBackward, 1, 9},
		{"( at start goes to previous", 9, KindSentenceBackward, 1, 0},
		{"2( compounds", 22, KindSentenceBackward, 2, 9},
		{"( at document start stays", 0, KindSentenceBackward, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocumentMotions(t *testing.T) {
	text := "  first\nsecond\nthird\n  fourth"
	tests := []struct {
		name  string
		from  int
		kind  Kind
		count int
		want  int
	}{
		{"gg to first non blank", 20, KindDocumentStart, 0, 2},
		{"G to last line first non blank", 0, KindDocumentEnd, 0, 23},
		{"3G jumps directly to line 3", 0, KindDocumentEnd, 3, 15},
		{"1G jumps to line 1", 20, KindDocumentEnd, 1, 2},
		{"count past last line clamps", 0, KindDocumentEnd, 99, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, text, tt.from, tt.kind, tt.count, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDocumentMotionsAreLinewise(t *testing.T) {
	buf := textbuf.NewBuffer("a\nb\nc\n")
	for _, kind := range []Kind{KindDocumentStart, KindDocumentEnd} {
		res := Resolve(buf, buf.OffsetToPosition(2), kind, 0, 0)
		if res == nil {
			t.Fatalf("%v: expected result", kind)
		}
		if res.Kind != textbuf.RangeLine {
			t.Errorf("%v kind = %v, want %v", kind, res.Kind, textbuf.RangeLine)
		}
	}
	// Paragraph motions stay characterwise so d} keeps the blank line.
	for _, kind := range []Kind{KindParagraphForward, KindParagraphBackward} {
		res := Resolve(buf, buf.OffsetToPosition(2), kind, 0, 0)
		if res == nil {
			t.Fatalf("%v: expected result", kind)
		}
		if res.Kind != textbuf.RangeChar {
			t.Errorf("%v kind = %v, want %v", kind, res.Kind, textbuf.RangeChar)
		}
	}
}

func TestMatchPair(t *testing.T) {
	tests := []struct {
		name string
		text string
		from int
		want int
	}{
		{"on open paren", "a(b)c", 1, 3},
		{"on close paren", "a(b)c", 3, 1},
		{"before bracket scans forward on line", "ab(cd)", 0, 5},
		{"nested pairs", "(a(b)c)", 0, 6},
		{"inner nested", "(a(b)c)", 2, 4},
		{"square brackets", "x[y]z", 1, 3},
		{"curly braces", "{a}", 0, 2},
		{"match crosses lines", "(a\nb)", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveOffset(t, tt.text, tt.from, KindMatchPair, 1, 0)
			if got != tt.want {
				t.Errorf("got offset %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMatchPairFails(t *testing.T) {
	tests := []struct {
		name string
		text string
		from int
	}{
		{"no bracket on line", "plain text", 0},
		{"unbalanced open", "(abc", 0},
		{"unbalanced close", "abc)", 3},
		{"bracket on next line only", "ab\n(c)", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := textbuf.NewBuffer(tt.text)
			if res := Resolve(buf, buf.OffsetToPosition(tt.from), KindMatchPair, 1, 0); res != nil {
				t.Errorf("expected nil result, got head %v", res.Head)
			}
		})
	}
}

func TestInclusiveFlags(t *testing.T) {
	buf := textbuf.NewBuffer("foo bar\n")
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindWordForward, false},
		{KindWordEnd, true},
		{KindWordBackward, false},
		{KindFindForward, true},
		{KindFindBackward, false},
		{KindTillForward, true},
		{KindLineStart, false},
	}
	for _, tt := range tests {
		char := rune(0)
		if tt.kind.NeedsChar() {
			char = 'b'
		}
		res := Resolve(buf, buf.OffsetToPosition(0), tt.kind, 1, char)
		if res == nil {
			t.Fatalf("%v: expected result", tt.kind)
		}
		if res.Inclusive != tt.want {
			t.Errorf("%v inclusive = %v, want %v", tt.kind, res.Inclusive, tt.want)
		}
	}
}
