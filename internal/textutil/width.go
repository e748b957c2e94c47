// Package textutil provides display-width math and ANSI stripping for
// terminal rendering: the primitives every other rendering package in this
// repository composes on top of.
package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiPattern matches a CSI sequence: ESC [ optional-? parameter-bytes final-letter.
var ansiPattern = regexp.MustCompile(`\x1b\[\??[0-9;]*[a-zA-Z]`)

// CharWidth returns the number of terminal cells a single rune occupies.
func CharWidth(r rune) int {
	if r < 0x20 || r == 0x7f {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StripANSI removes all CSI/SGR escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// HasANSI reports whether s contains any CSI/SGR escape sequence.
func HasANSI(s string) bool {
	return ansiPattern.MatchString(s)
}

// VisibleLen returns the total display width of s after stripping ANSI codes.
func VisibleLen(s string) int {
	clean := StripANSI(s)
	total := 0
	for _, r := range clean {
		total += CharWidth(r)
	}
	return total
}

// Align describes how PadText positions content within its target width.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// PadText returns a string whose VisibleLen is exactly w. When s is wider
// than w and truncate is true, trailing runes are dropped — a rune is
// dropped whole rather than split, so truncation never leaves a half-wide
// character on screen. When truncate is false and s is wider than w, s is
// returned unmodified (callers that disallow truncation accept overflow).
func PadText(s string, w int, align Align, fill rune, truncate bool) string {
	visible := VisibleLen(s)
	if visible > w {
		if !truncate {
			return s
		}
		return PadText(truncateToWidth(s, w), w, align, fill, true)
	}
	gap := w - visible
	if gap == 0 {
		return s
	}
	padding := strings.Repeat(string(fill), gap)
	switch align {
	case AlignRight:
		return padding + s
	case AlignCenter:
		left := gap / 2
		right := gap - left
		return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), right)
	default:
		return s + padding
	}
}

func truncateToWidth(s string, w int) string {
	var b strings.Builder
	used := 0
	for _, r := range s {
		cw := CharWidth(r)
		if used+cw > w {
			break
		}
		b.WriteRune(r)
		used += cw
	}
	return b.String()
}
