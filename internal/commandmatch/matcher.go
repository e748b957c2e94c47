// Package commandmatch implements slash-command detection, prefix/substring
// matching, and tab-cycling autocomplete over the pluggable command
// registry this repo uses (see internal/registry).
package commandmatch

import "strings"

// Descriptor names a single slash command: its invocation name (beginning
// with "/"), its human-readable label, and the agent prompt file it maps to.
type Descriptor struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"display_label"`
	AgentFile    string `json:"agent_file"`
}

// Source supplies the ordered command registry the matcher filters against.
// Registration order is significant: it is the tie-break order within each
// match tier (starts-with, then contains).
type Source interface {
	Commands() []Descriptor
}

// Matcher carries the live state of an active slash-command session: the
// current prefix, the filtered matches, and the selected index.
type Matcher struct {
	source   Source
	active   bool
	prefix   string
	matches  []Descriptor
	selected int
}

// New creates a Matcher backed by source.
func New(source Source) *Matcher {
	return &Matcher{source: source}
}

// Active reports whether command mode is currently engaged.
func (m *Matcher) Active() bool {
	return m.active
}

// Start engages command mode if ch is '/' and the matcher is not already
// active. Returns true if it started.
func (m *Matcher) Start(ch rune) bool {
	if ch != '/' || m.active {
		return false
	}
	m.active = true
	m.prefix = "/"
	m.matches = append([]Descriptor(nil), m.source.Commands()...)
	m.selected = 0
	return true
}

// Update recomputes matches from the current input prefix (which must begin
// with "/"); if it doesn't, command mode is cancelled. Returns the new match
// list. Matching is case-insensitive: commands whose name starts with the
// query come first in registration order, followed by commands that merely
// contain the query, also in registration order; commands matching neither
// are omitted.
func (m *Matcher) Update(prefix string) []Descriptor {
	m.prefix = prefix
	if !strings.HasPrefix(prefix, "/") {
		m.Cancel()
		return nil
	}
	needle := strings.ToLower(prefix[1:])
	all := m.source.Commands()
	if needle == "" {
		m.matches = append([]Descriptor(nil), all...)
	} else {
		var startsWith, contains []Descriptor
		for _, d := range all {
			name := strings.ToLower(strings.TrimPrefix(d.Name, "/"))
			switch {
			case strings.HasPrefix(name, needle):
				startsWith = append(startsWith, d)
			case strings.Contains(name, needle):
				contains = append(contains, d)
			}
		}
		m.matches = append(startsWith, contains...)
	}
	if m.selected >= len(m.matches) {
		m.selected = maxInt(0, len(m.matches)-1)
	}
	return m.matches
}

// Matches returns the current match list.
func (m *Matcher) Matches() []Descriptor {
	return m.matches
}

// SelectedIndex returns the current selection.
func (m *Matcher) SelectedIndex() int {
	return m.selected
}

// MoveUp moves the selection up one slot (no wrap). Returns the new index.
func (m *Matcher) MoveUp() int {
	if len(m.matches) > 0 && m.selected > 0 {
		m.selected--
	}
	return m.selected
}

// MoveDown moves the selection down one slot (no wrap). Returns the new index.
func (m *Matcher) MoveDown() int {
	if len(m.matches) > 0 && m.selected < len(m.matches)-1 {
		m.selected++
	}
	return m.selected
}

// Complete returns the selected command's name and cancels command mode. If
// there are no matches, returns the current prefix unchanged.
func (m *Matcher) Complete() string {
	if len(m.matches) > 0 && m.selected >= 0 && m.selected < len(m.matches) {
		result := m.matches[m.selected].Name
		m.Cancel()
		return result
	}
	return m.prefix
}

// TabComplete implements Tab-key cycling: a single match completes
// immediately (with a trailing space) and exits command mode; multiple
// matches cycle the selection; no matches returns the prefix unchanged.
func (m *Matcher) TabComplete() string {
	if len(m.matches) == 0 {
		return m.prefix
	}
	if len(m.matches) == 1 {
		result := m.matches[0].Name + " "
		m.Cancel()
		return result
	}
	m.selected = (m.selected + 1) % len(m.matches)
	return m.matches[m.selected].Name
}

// Cancel exits command mode and clears all match state.
func (m *Matcher) Cancel() {
	m.active = false
	m.prefix = ""
	m.matches = nil
	m.selected = 0
}

// DropdownLines formats the current matches for display, one line per
// match, truncated to maxWidth runes, with a ">" marker on the selected
// row.
func (m *Matcher) DropdownLines(maxWidth int) []string {
	lines := make([]string, 0, len(m.matches))
	for i, d := range m.matches {
		marker := byte(' ')
		if i == m.selected {
			marker = '>'
		}
		line := string(marker) + " " + padRight(d.Name, 25) + " — " + d.DisplayLabel
		if runes := []rune(line); len(runes) > maxWidth {
			line = string(runes[:maxWidth])
		}
		lines = append(lines, line)
	}
	return lines
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
