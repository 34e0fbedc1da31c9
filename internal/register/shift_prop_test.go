package register

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/vicore/internal/textbuf"
)

// The numbered chain must always hold the most recent deletes in order,
// regardless of how deletes and yanks interleave.
func TestNumberedChainHoldsRecentDeletes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewStore()
		var deletes []string

		n := rapid.IntRange(1, 30).Draw(t, "ops")
		for i := 0; i < n; i++ {
			content := rapid.StringN(1, 12, 24).Draw(t, "content")
			if rapid.Bool().Draw(t, "isDelete") {
				s.Delete(content, textbuf.RangeChar, 0)
				deletes = append(deletes, content)
			} else {
				s.Yank(content, textbuf.RangeChar, 0)
			}
		}

		for i := 1; i <= 9; i++ {
			name := rune('0' + i)
			reg, ok := s.Get(name)
			if i > len(deletes) {
				if ok {
					t.Fatalf("register %q populated after only %d deletes", name, len(deletes))
				}
				continue
			}
			want := deletes[len(deletes)-i]
			if !ok || reg.Content != want {
				t.Fatalf("register %q = %q, %v; want %q", name, reg.Content, ok, want)
			}
		}

		if len(deletes) > 0 {
			reg, _ := s.Get('1')
			if reg.Content != deletes[len(deletes)-1] {
				t.Fatalf("register 1 = %q, want most recent delete %q", reg.Content, deletes[len(deletes)-1])
			}
		}
	})
}

// Register 0 tracks only the most recent yank, never deletes.
func TestYankRegisterIgnoresDeletes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewStore()
		lastYank := ""

		n := rapid.IntRange(1, 20).Draw(t, "ops")
		for i := 0; i < n; i++ {
			content := rapid.StringN(1, 8, 16).Draw(t, "content")
			if rapid.Bool().Draw(t, "isYank") {
				s.Yank(content, textbuf.RangeChar, 0)
				lastYank = content
			} else {
				s.Delete(content, textbuf.RangeChar, 0)
			}
		}

		reg, ok := s.Get('0')
		if lastYank == "" {
			if ok {
				t.Fatal("register 0 populated without any yank")
			}
			return
		}
		if !ok || reg.Content != lastYank {
			t.Fatalf("register 0 = %q, %v; want %q", reg.Content, ok, lastYank)
		}
	})
}
