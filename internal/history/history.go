// Package history implements the persistent input history store: an
// append-only log of submitted lines with recency-ordered substring search
// and a browse cursor for Up/Down navigation.
package history

import (
	"os"
	"strings"
)

// DefaultMaxEntries is the default cap on retained history entries.
const DefaultMaxEntries = 1000

// Store is a persistent, append-only history of submitted input lines.
type Store struct {
	path       string
	maxEntries int
	entries    []string
	position   int // next-slot convention: len(entries) means "no entry selected"
	working    string
}

// Open loads history from path (silently treating any read or decode error
// as empty history, matching the "corrupt persistence is empty
// history" rule) and returns a Store capped at maxEntries.
func Open(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	s := &Store{path: path, maxEntries: maxEntries}
	s.load()
	s.position = len(s.entries)
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.entries = nil
		return
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		s.entries = nil
		return
	}
	lines := strings.Split(text, "\n")
	entries := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, line)
		}
	}
	s.entries = entries
}

func (s *Store) save() {
	start := 0
	if len(s.entries) > s.maxEntries {
		start = len(s.entries) - s.maxEntries
	}
	content := strings.Join(s.entries[start:], "\n") + "\n"
	// Save failures are silent, matching every other persistence path here.
	_ = os.WriteFile(s.path, []byte(content), 0o644)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Add trims entry, rejects it if empty or equal to the current last entry,
// appends and persists it, and resets the browse position to one past the
// last entry.
func (s *Store) Add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if len(s.entries) > 0 && s.entries[len(s.entries)-1] == entry {
		return
	}
	s.entries = append(s.entries, entry)
	s.save()
	s.ResetPosition()
}

// ResetPosition moves the browse cursor back to "newest" (one past the end)
// and clears the cached working draft.
func (s *Store) ResetPosition() {
	s.position = len(s.entries)
	s.working = ""
}

// GoBack moves the browse cursor one step toward older entries (Up arrow).
// On the first step away from "newest", current is cached as the working
// draft to restore on GoForward. Returns current unchanged if history is
// empty.
func (s *Store) GoBack(current string) string {
	if len(s.entries) == 0 {
		return current
	}
	if s.position == len(s.entries) {
		s.working = current
	}
	if s.position > 0 {
		s.position--
		return s.entries[s.position]
	}
	return s.entries[0]
}

// GoForward moves the browse cursor one step toward newer entries (Down
// arrow). Returns the cached working draft once the cursor passes the
// newest entry.
func (s *Store) GoForward() string {
	if s.position < len(s.entries)-1 {
		s.position++
		return s.entries[s.position]
	}
	if s.position == len(s.entries)-1 {
		s.position = len(s.entries)
		return s.working
	}
	return s.working
}

// AtEnd reports whether the browse cursor is at the newest (unselected) slot.
func (s *Store) AtEnd() bool {
	return s.position >= len(s.entries)
}

// AtStart reports whether the browse cursor is at the oldest entry.
func (s *Store) AtStart() bool {
	return s.position <= 0
}

// Search returns entries containing q (case-insensitive), most-recent-first.
// An empty query returns the ten most recent entries, most-recent-first.
func (s *Store) Search(q string) []string {
	if q == "" {
		n := len(s.entries)
		start := 0
		if n > 10 {
			start = n - 10
		}
		return reversed(s.entries[start:])
	}
	needle := strings.ToLower(q)
	var matches []string
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e), needle) {
			matches = append(matches, e)
		}
	}
	return reversed(matches)
}

// SearchBackward scans from startIndex toward index 0 for an entry
// containing q (case-insensitive); on a hit it sets the browse cursor to
// that index and returns the entry. Returns ("", false) on no match or an
// empty query.
func (s *Store) SearchBackward(q string, startIndex int) (string, bool) {
	if q == "" || len(s.entries) == 0 {
		return "", false
	}
	needle := strings.ToLower(q)
	for i := startIndex; i >= 0; i-- {
		if i >= len(s.entries) {
			continue
		}
		if strings.Contains(strings.ToLower(s.entries[i]), needle) {
			s.position = i
			return s.entries[i], true
		}
	}
	return "", false
}

// Position exposes the current browse cursor, mainly so SearchBackward's
// default start index (Position()-1) can be computed by callers.
func (s *Store) Position() int {
	return s.position
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
