package register

import (
	"strings"
	"sync"
	"unicode"

	"github.com/dshills/vicore/internal/textbuf"
)

// Store manages all registers for one editing session. It is mutated only
// on the synchronous command-completion path, but carries a lock so hosts
// may inspect registers from other goroutines (status bars, persistence).
type Store struct {
	mu       sync.RWMutex
	unnamed  Register
	numbered [10]Register
	named    map[rune]Register
	present  map[rune]bool

	// clipboard provides system clipboard access for + and *. When nil,
	// the two names behave as ordinary in-memory slots.
	clipboard ClipboardProvider
}

// NewStore creates an empty register store.
func NewStore() *Store {
	return &Store{
		named:   make(map[rune]Register),
		present: make(map[rune]bool),
	}
}

// SetClipboard installs the system clipboard provider.
func (s *Store) SetClipboard(p ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = p
}

// Yank records a yank: the unnamed register and register 0 always receive
// the content; an explicit register other than " and 0 receives it too
// (uppercase names append to their lowercase slot). Yanks into the black
// hole leave every register untouched.
func (s *Store) Yank(content string, kind textbuf.RangeKind, name rune) {
	if TypeOf(name) == TypeBlackHole {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unnamed = Register{Content: content, Kind: kind}
	s.numbered[0] = Register{Content: content, Kind: kind}
	s.present['"'] = true
	s.present['0'] = true

	if name != 0 && name != '"' && name != '0' {
		s.writeExplicit(name, content, kind)
	}
}

// Delete records a delete: the unnamed register always receives the
// content; registers 9..2 shift down by one and the new content lands in
// register 1. An explicit named register receives the content additionally
// (uppercase appends); explicit digit targets are ignored because the
// numbered chain already owns that semantics. Deletes into the black hole
// discard the content without touching any register.
func (s *Store) Delete(content string, kind textbuf.RangeKind, name rune) {
	if TypeOf(name) == TypeBlackHole {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unnamed = Register{Content: content, Kind: kind}
	s.present['"'] = true

	for i := 9; i > 1; i-- {
		s.numbered[i] = s.numbered[i-1]
		if s.present[rune('0'+i-1)] {
			s.present[rune('0'+i)] = true
		}
	}
	s.numbered[1] = Register{Content: content, Kind: kind}
	s.present['1'] = true

	if TypeOf(name) == TypeNamed || TypeOf(name) == TypeClipboard {
		s.writeExplicit(name, content, kind)
	}
}

// writeExplicit stores content under an explicitly selected register.
// Callers hold the lock.
func (s *Store) writeExplicit(name rune, content string, kind textbuf.RangeKind) {
	switch TypeOf(name) {
	case TypeNumbered:
		s.numbered[name-'0'] = Register{Content: content, Kind: kind}
		s.present[name] = true
	case TypeNamed:
		lower := unicode.ToLower(name)
		if name != lower && s.present[lower] {
			reg := s.named[lower]
			reg.Content += content
			if kind == textbuf.RangeLine {
				reg.Kind = textbuf.RangeLine
			}
			s.named[lower] = reg
			return
		}
		s.named[lower] = Register{Content: content, Kind: kind}
		s.present[lower] = true
	case TypeClipboard:
		if s.clipboard != nil {
			_ = s.clipboard.Set(content)
			return
		}
		s.named[name] = Register{Content: content, Kind: kind}
		s.present[name] = true
	}
}

// Get returns the register for name. Uppercase names read their lowercase
// slot. Clipboard names read through the provider when one is installed;
// provider content with a trailing newline is treated as line-wise.
func (s *Store) Get(name rune) (Register, bool) {
	if TypeOf(name) == TypeClipboard {
		s.mu.RLock()
		p := s.clipboard
		s.mu.RUnlock()
		if p != nil {
			content, err := p.Get()
			if err != nil || content == "" {
				return Register{}, false
			}
			kind := textbuf.RangeChar
			if strings.HasSuffix(content, "\n") {
				kind = textbuf.RangeLine
			}
			return Register{Content: content, Kind: kind}, true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	switch TypeOf(name) {
	case TypeUnnamed:
		return s.unnamed, s.present['"']
	case TypeNumbered:
		return s.numbered[name-'0'], s.present[name]
	case TypeNamed, TypeClipboard:
		reg, ok := s.named[name]
		return reg, ok
	default:
		return Register{}, false
	}
}

// Unnamed returns the unnamed register.
func (s *Store) Unnamed() (Register, bool) {
	return s.Get('"')
}

// Restore places content directly into a slot without yank/delete side
// effects. Session loading uses it; clipboard names are ignored.
func (s *Store) Restore(name rune, reg Register) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch TypeOf(name) {
	case TypeUnnamed:
		s.unnamed = reg
		s.present['"'] = true
	case TypeNumbered:
		s.numbered[name-'0'] = reg
		s.present[name] = true
	case TypeNamed:
		lower := unicode.ToLower(name)
		s.named[lower] = reg
		s.present[lower] = true
	}
}

// All returns a snapshot of every populated non-clipboard register keyed
// by name.
func (s *Store) All() map[rune]Register {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[rune]Register)
	if s.present['"'] {
		out['"'] = s.unnamed
	}
	for i := 0; i <= 9; i++ {
		name := rune('0' + i)
		if s.present[name] {
			out[name] = s.numbered[i]
		}
	}
	for name, reg := range s.named {
		if TypeOf(name) == TypeNamed {
			out[name] = reg
		}
	}
	return out
}
