// Package clipboard wraps external clipboard access with
// silent-failure-to-no-op semantics: a read that can't reach the system
// clipboard returns an empty string rather than an error, since CtrlV is
// just another source of paste-path text and nothing should crash over it.
package clipboard

import "github.com/atotto/clipboard"

// Manager reads text from the system clipboard.
type Manager struct {
	available *bool
}

// New constructs a Manager. Availability is probed lazily on first use and
// cached, mirroring the original's deferred is_available check.
func New() *Manager {
	return &Manager{}
}

// Read returns the clipboard's text content, or "" if the clipboard is
// unavailable or empty. Errors are never propagated.
func (m *Manager) Read() string {
	text, err := clipboard.ReadAll()
	if err != nil {
		return ""
	}
	return text
}

// IsAvailable reports whether clipboard access appears to work on this
// platform, caching the result for subsequent calls.
func (m *Manager) IsAvailable() bool {
	if m.available != nil {
		return *m.available
	}
	ok := clipboard.Unsupported == false
	m.available = &ok
	return ok
}
