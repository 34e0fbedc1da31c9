package editor

import (
	"testing"

	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/textbuf"
)

// testEngine builds an engine over a reference buffer with the cursor at
// a byte offset.
func testEngine(text string, off int) (*Engine, *textbuf.Buffer) {
	buf := textbuf.NewBuffer(text)
	e := New(buf)
	e.SetCursor(buf.OffsetToPosition(off))
	return e, buf
}

// typeKeys feeds a rune sequence and returns the last result.
func typeKeys(t *testing.T, e *Engine, keys string) Result {
	t.Helper()
	var res Result
	for _, r := range keys {
		res = e.HandleKey(key.Rune(r))
	}
	return res
}

func escape(e *Engine) Result {
	return e.HandleKey(key.NewSpecialEvent(key.KeyEscape, key.ModNone))
}

func cursorOffset(t *testing.T, e *Engine, buf *textbuf.Buffer) int {
	t.Helper()
	off, err := buf.PositionToOffset(e.Cursor())
	if err != nil {
		t.Fatalf("cursor %v invalid: %v", e.Cursor(), err)
	}
	return off
}

func TestMotionKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		off  int
		keys string
		want int
	}{
		{name: "word forward", text: "foo bar baz", off: 0, keys: "w", want: 4},
		{name: "word back returns", text: "foo bar baz", off: 0, keys: "wb", want: 0},
		{name: "counted word", text: "a b c d", off: 0, keys: "2w", want: 4},
		{name: "line end clamps to last char", text: "abc\ndef", off: 0, keys: "$", want: 2},
		{name: "down keeps column", text: "abcd\nwxyz", off: 2, keys: "j", want: 7},
		{name: "first non-blank", text: "   abc", off: 5, keys: "^", want: 3},
		{name: "document start", text: "one\ntwo", off: 5, keys: "gg", want: 0},
		{name: "line number jump", text: "a\nb\nc", off: 0, keys: "2G", want: 2},
		{name: "find forward", text: "hello", off: 0, keys: "fl", want: 2},
		{name: "find with no match is a no-op", text: "hello world", off: 0, keys: "fz", want: 0},
		{name: "match pair", text: "(abc)", off: 0, keys: "%", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, buf := testEngine(tt.text, tt.off)
			res := typeKeys(t, e, tt.keys)
			if res.Err != nil {
				t.Fatalf("err = %v", res.Err)
			}
			if got := cursorOffset(t, e, buf); got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDeleteInnerWord(t *testing.T) {
	e, buf := testEngine("hello world foo", 6)
	res := typeKeys(t, e, "diw")
	if res.Err != nil {
		t.Fatalf("err = %v", res.Err)
	}
	if got := buf.DocumentText(); got != "hello  foo" {
		t.Errorf("text = %q, want %q", got, "hello  foo")
	}
	if reg, ok := e.Registers().Unnamed(); !ok || reg.Content != "world" {
		t.Errorf("unnamed = %+v, want %q", reg, "world")
	}
	if reg, ok := e.Register('1'); !ok || reg.Content != "world" {
		t.Errorf("register 1 = %+v, want %q", reg, "world")
	}
}

func TestDeleteAroundWord(t *testing.T) {
	e, buf := testEngine("hello world foo", 6)
	typeKeys(t, e, "daw")
	if got := buf.DocumentText(); got != "hello foo" {
		t.Errorf("text = %q, want %q", got, "hello foo")
	}
}

func TestDeleteLines(t *testing.T) {
	e, buf := testEngine("line one\nline two\nline three", 9)
	res := typeKeys(t, e, "2dd")
	if res.Err != nil {
		t.Fatalf("err = %v", res.Err)
	}
	if got := buf.DocumentText(); got != "line one" {
		t.Errorf("text = %q, want %q", got, "line one")
	}
	want := "line two\nline three\n"
	if reg, ok := e.Registers().Unnamed(); !ok || reg.Content != want {
		t.Errorf("unnamed = %+v, want %q", reg, want)
	}
	if reg, ok := e.Register('1'); !ok || reg.Content != want || reg.Kind != textbuf.RangeLine {
		t.Errorf("register 1 = %+v, want linewise %q", reg, want)
	}
}

func TestCountsMultiplyAcrossOperator(t *testing.T) {
	e, buf := testEngine("a b c d e f g h", 0)
	typeKeys(t, e, "2d3w")
	if got := buf.DocumentText(); got != "g h" {
		t.Errorf("text = %q, want %q", got, "g h")
	}
}

func TestDeleteThenPasteRoundTrip(t *testing.T) {
	const original = "a\nb\nc"
	e, buf := testEngine(original, 4)
	typeKeys(t, e, "dd")
	if got := buf.DocumentText(); got != "a\nb" {
		t.Fatalf("text after dd = %q, want %q", got, "a\nb")
	}
	typeKeys(t, e, "p")
	if got := buf.DocumentText(); got != original {
		t.Errorf("text after p = %q, want %q", got, original)
	}
}

func TestYankPasteTwice(t *testing.T) {
	e, buf := testEngine("alpha\nbeta", 0)
	typeKeys(t, e, "yypp")
	want := "alpha\nalpha\nalpha\nbeta"
	if got := buf.DocumentText(); got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if reg, ok := e.Register('0'); !ok || reg.Content != "alpha\n" {
		t.Errorf("register 0 = %+v, want %q", reg, "alpha\n")
	}
}

func TestNumberedRegisterShift(t *testing.T) {
	e, _ := testEngine("one\ntwo\nthree\nfour", 0)
	typeKeys(t, e, "dddddd")

	wants := map[rune]string{
		'1': "three\n",
		'2': "two\n",
		'3': "one\n",
	}
	for name, want := range wants {
		reg, ok := e.Register(name)
		if !ok || reg.Content != want {
			t.Errorf("register %c = %+v, want %q", name, reg, want)
		}
	}
}

func TestNamedRegister(t *testing.T) {
	e, buf := testEngine("foo bar", 0)
	typeKeys(t, e, "\"ayw")
	if reg, ok := e.Register('a'); !ok || reg.Content != "foo " {
		t.Errorf("register a = %+v, want %q", reg, "foo ")
	}
	typeKeys(t, e, "$\"ap")
	if got := buf.DocumentText(); got != "foo barfoo " {
		t.Errorf("text = %q, want %q", got, "foo barfoo ")
	}
}

func TestBlackHoleRegister(t *testing.T) {
	e, buf := testEngine("one\ntwo", 0)
	typeKeys(t, e, "yy\"_dd")
	if got := buf.DocumentText(); got != "two" {
		t.Errorf("text = %q, want %q", got, "two")
	}
	if reg, ok := e.Registers().Unnamed(); !ok || reg.Content != "one\n" {
		t.Errorf("unnamed = %+v, want yank preserved", reg)
	}
	if _, ok := e.Register('1'); ok {
		t.Error("black-hole delete shifted register 1")
	}
}

func TestChangeEntersInsert(t *testing.T) {
	e, buf := testEngine("hello world", 0)
	typeKeys(t, e, "cw")
	if e.Mode() != mode.Insert {
		t.Fatalf("mode = %v, want insert", e.Mode())
	}
	if got := buf.DocumentText(); got != "world" {
		t.Errorf("text = %q, want %q", got, "world")
	}
	typeKeys(t, e, "goodbye ")
	if got := buf.DocumentText(); got != "goodbye world" {
		t.Errorf("text = %q, want %q", got, "goodbye world")
	}
}

func TestChangeLineKeepsEmptyLine(t *testing.T) {
	e, buf := testEngine("one\ntwo", 0)
	typeKeys(t, e, "cc")
	if e.Mode() != mode.Insert {
		t.Fatalf("mode = %v, want insert", e.Mode())
	}
	if got := buf.DocumentText(); got != "\ntwo" {
		t.Errorf("text = %q, want %q", got, "\ntwo")
	}
}

func TestIndentOutdent(t *testing.T) {
	e, buf := testEngine("one\ntwo", 0)
	typeKeys(t, e, ">j")
	if got := buf.DocumentText(); got != "    one\n    two" {
		t.Fatalf("text = %q after indent", got)
	}
	typeKeys(t, e, "<j")
	if got := buf.DocumentText(); got != "one\ntwo" {
		t.Errorf("text = %q after outdent", got)
	}
}

func TestCaseOperators(t *testing.T) {
	e, buf := testEngine("hello World", 0)
	typeKeys(t, e, "gUw")
	if got := buf.DocumentText(); got != "HELLO World" {
		t.Errorf("text = %q, want %q", got, "HELLO World")
	}
	typeKeys(t, e, "g~g~")
	if got := buf.DocumentText(); got != "hello wORLD" {
		t.Errorf("text = %q, want %q", got, "hello wORLD")
	}
}

func TestFormatSurfacesFilterRequest(t *testing.T) {
	e, buf := testEngine("one\ntwo\nthree", 0)
	res := typeKeys(t, e, "=j")
	if res.Filter == nil {
		t.Fatal("no filter request")
	}
	if res.Filter.Start != 0 || res.Filter.End != 7 {
		t.Errorf("filter range = [%d, %d), want [0, 7)", res.Filter.Start, res.Filter.End)
	}
	if got := buf.DocumentText(); got != "one\ntwo\nthree" {
		t.Errorf("text mutated to %q by format", got)
	}
}

func TestDotRepeat(t *testing.T) {
	e, buf := testEngine("abcd", 0)
	typeKeys(t, e, "x")
	if got := buf.DocumentText(); got != "bcd" {
		t.Fatalf("text = %q after x", got)
	}
	typeKeys(t, e, ".")
	if got := buf.DocumentText(); got != "cd" {
		t.Errorf("text = %q after repeat", got)
	}
}

func TestDotRepeatOperator(t *testing.T) {
	e, buf := testEngine("one two three four", 0)
	typeKeys(t, e, "dw.")
	if got := buf.DocumentText(); got != "three four" {
		t.Errorf("text = %q, want %q", got, "three four")
	}
}

func TestUnknownKeyNotConsumed(t *testing.T) {
	e, _ := testEngine("abc", 0)
	res := e.HandleKey(key.Rune('q'))
	if res.Consumed {
		t.Error("unknown key reported consumed")
	}
}

func TestPendingKeysSurface(t *testing.T) {
	e, _ := testEngine("abc", 0)
	res := typeKeys(t, e, "2d")
	if res.Pending != "2d" {
		t.Errorf("pending = %q, want %q", res.Pending, "2d")
	}
	if e.PendingKeys() != "2d" {
		t.Errorf("PendingKeys() = %q, want %q", e.PendingKeys(), "2d")
	}
	escape(e)
	if e.PendingKeys() != "" {
		t.Error("pending keys survived escape")
	}
}

func TestStaleCursorIsInert(t *testing.T) {
	e, buf := testEngine("abc\ndef", 0)
	// Mutate the buffer behind the engine so the cursor goes stale.
	if err := buf.SetRange(0, 7, "x"); err != nil {
		t.Fatal(err)
	}
	e.cursor = textbuf.Position{Segment: 1, Offset: 2}
	res := typeKeys(t, e, "dw")
	if res.Err != nil {
		t.Fatalf("err = %v", res.Err)
	}
	if res.Mutated || buf.DocumentText() != "x" {
		t.Error("stale cursor mutated the buffer")
	}
	if e.PendingKeys() != "" {
		t.Error("pending state survived the no-op")
	}
}
