package register

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/vicore/internal/textbuf"
)

// Session persistence: named and numbered registers survive across runs
// the way vim's viminfo keeps them. Clipboard registers are never saved;
// the system clipboard already outlives the process.

// Save writes the populated registers to a JSON session file, stamped
// with the host's session identifier.
func (s *Store) Save(path, session string) error {
	all := s.All()

	names := make([]rune, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	out := "{}"
	var err error
	if out, err = sjson.Set(out, "session", session); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if out, err = sjson.Set(out, "saved_at", time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("encoding timestamp: %w", err)
	}
	for _, name := range names {
		reg := all[name]
		entry := map[string]any{
			"name":    string(name),
			"content": reg.Content,
			"kind":    reg.Kind.String(),
		}
		if out, err = sjson.Set(out, "registers.-1", entry); err != nil {
			return fmt.Errorf("encoding register %q: %w", name, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating session dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Load restores registers from a session file. A missing file is not an
// error. Entries with unknown names are skipped.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("session file %s: malformed JSON", path)
	}

	for _, entry := range gjson.GetBytes(data, "registers").Array() {
		name := []rune(entry.Get("name").String())
		if len(name) != 1 || !IsValidName(name[0]) {
			continue
		}
		s.Restore(name[0], Register{
			Content: entry.Get("content").String(),
			Kind:    textbuf.ParseRangeKind(entry.Get("kind").String()),
		})
	}
	return nil
}

// SessionInfo reads the session stamp from a session file without
// touching the store.
func SessionInfo(path string) (session string, savedAt time.Time, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", time.Time{}, err
	}
	session = gjson.GetBytes(data, "session").String()
	savedAt, _ = time.Parse(time.RFC3339, gjson.GetBytes(data, "saved_at").String())
	return session, savedAt, nil
}
