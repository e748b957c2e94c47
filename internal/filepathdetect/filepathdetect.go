// Package filepathdetect provides the cheap syntactic check the
// application loop uses to decide whether a pasted single-line blob should
// be wrapped as a file-path badge rather than inserted as plain text.
package filepathdetect

import "regexp"

var (
	windowsDrive = regexp.MustCompile(`^[A-Za-z]:[\\/][^\n]*$`)
	uncPath      = regexp.MustCompile(`^\\\\[^\\]+\\[^\n]+$`)
	unixAbs      = regexp.MustCompile(`^/[^\n]+$`)
	unixRel      = regexp.MustCompile(`^\.\.?/[^\n]+$`)
	extension    = regexp.MustCompile(`\.[A-Za-z0-9]{1,8}$`)
)

// Looks is a syntactic test, not a stat call: it reports whether s (assumed
// single-line) looks enough like a file path to justify wrapping it as a
// file-path badge rather than plain text. Multi-line blobs are never
// treated as file paths — callers must reject those before calling Looks.
func Looks(s string) bool {
	if s == "" {
		return false
	}
	matchesShape := windowsDrive.MatchString(s) || uncPath.MatchString(s) ||
		unixAbs.MatchString(s) || unixRel.MatchString(s)
	if !matchesShape {
		return false
	}
	return extension.MatchString(lastComponent(s))
}

// lastComponent returns the final path component (after the last '/' or
// '\'), since the extension check applies only to it.
func lastComponent(s string) string {
	last := s
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' || s[i] == '\\' {
			last = s[i+1:]
			break
		}
	}
	return last
}
