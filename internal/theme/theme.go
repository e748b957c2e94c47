// Package theme provides a named-style table mapping UI roles to opaque
// attribute handles, using lipgloss.Color fields and pre-built
// lipgloss.Style values the way this repository's other packages style
// themselves, repurposed from chat/sidebar styling to the
// prompt/status/border/badge styling this input front-end needs.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"turnline/internal/screen"
)

// Role names a styled UI element.
type Role string

const (
	RoleBorder    Role = "border"
	RolePrompt    Role = "prompt"
	RoleSuccess   Role = "success"
	RoleWarning   Role = "warning"
	RoleError     Role = "error"
	RoleAccent    Role = "accent"
	RoleInfo      Role = "info"
	RoleDim       Role = "dim"
	RoleText      Role = "text"
	RoleTitle     Role = "title"
	RoleSymbol    Role = "symbol"
	RoleBold      Role = "bold"
	RoleUnderline Role = "underline"
	RoleReverse   Role = "reverse"
)

// Theme maps each Role to a lipgloss.Style and, when colour is enabled, an
// ANSI SGR attribute string suitable for internal/screen's Cell.Style.
type Theme struct {
	styles map[Role]lipgloss.Style
	attrs  map[Role]string
	color  bool
}

// sentinel is rendered to peel off lipgloss's leading SGR escape prefix
// without hard-coding the codes ourselves.
const sentinel = "\x00"

// New builds a Theme. When color is false, every attribute handle degrades
// to the empty string (monochrome fallback).
func New(color bool) *Theme {
	t := &Theme{styles: make(map[Role]lipgloss.Style), attrs: make(map[Role]string), color: color}

	border := lipgloss.Color("#6B4FA0")  // mystic_purple family, see internal/config defaults
	prompt := lipgloss.Color("#9B7EDE")
	success := lipgloss.Color("#10B981")
	warning := lipgloss.Color("#F59E0B")
	errColor := lipgloss.Color("#EF4444")
	accent := lipgloss.Color("#06B6D4")
	info := lipgloss.Color("#60A5FA")
	dim := lipgloss.Color("#6B7280")
	text := lipgloss.Color("#E5E7EB")
	symbol := lipgloss.Color("#F59E0B")

	t.set(RoleBorder, lipgloss.NewStyle().Foreground(border))
	t.set(RolePrompt, lipgloss.NewStyle().Foreground(prompt).Bold(true))
	t.set(RoleSuccess, lipgloss.NewStyle().Foreground(success))
	t.set(RoleWarning, lipgloss.NewStyle().Foreground(warning))
	t.set(RoleError, lipgloss.NewStyle().Foreground(errColor).Bold(true))
	t.set(RoleAccent, lipgloss.NewStyle().Foreground(accent))
	t.set(RoleInfo, lipgloss.NewStyle().Foreground(info))
	t.set(RoleDim, lipgloss.NewStyle().Foreground(dim))
	t.set(RoleText, lipgloss.NewStyle().Foreground(text))
	t.set(RoleTitle, lipgloss.NewStyle().Foreground(prompt).Bold(true))
	t.set(RoleSymbol, lipgloss.NewStyle().Foreground(symbol))
	t.set(RoleBold, lipgloss.NewStyle().Bold(true))
	t.set(RoleUnderline, lipgloss.NewStyle().Underline(true))
	t.set(RoleReverse, lipgloss.NewStyle().Reverse(true))

	return t
}

func (t *Theme) set(r Role, style lipgloss.Style) {
	t.styles[r] = style
	if !t.color {
		t.attrs[r] = ""
		return
	}
	rendered := style.Render(sentinel)
	if idx := strings.Index(rendered, sentinel); idx >= 0 {
		t.attrs[r] = rendered[:idx]
	} else {
		t.attrs[r] = ""
	}
}

// GetAttr returns the opaque attribute handle (an ANSI SGR string) for role.
func (t *Theme) GetAttr(r Role) string {
	return t.attrs[r]
}

// StyledText wraps text in the role's full style (including reset), for
// writing directly to the UI stream (stderr).
func (t *Theme) StyledText(r Role, text string) string {
	if !t.color {
		return text
	}
	return t.styles[r].Render(text)
}

// Apply writes text into win at (col, row) carrying role's attribute.
func (t *Theme) Apply(win *screen.Window, col, row int, text string, r Role) {
	win.WriteString(col, row, text, t.GetAttr(r))
}

// Reset writes text into win at (col, row) with no styling.
func (t *Theme) Reset(win *screen.Window, col, row int, text string) {
	win.WriteString(col, row, text, "")
}
