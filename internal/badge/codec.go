package badge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RenderForDisplay replaces every marker in s with its bracketed label,
// leaving ordinary text untouched. This is what the screen compositor shows.
func RenderForDisplay(s string) string {
	return rewrite(s, func(sp Span) string {
		switch sp.Kind {
		case KindFile:
			path := payload(sp.Raw, fileOpen, fileClose, 1, 1)
			return fmt.Sprintf("[ %s ]", filepath.Base(path))
		case KindPaste:
			n := pasteLineCount(sp.Raw)
			return fmt.Sprintf("[ Pasted %d Lines ]", n)
		}
		return sp.Raw
	})
}

// ExpandMarkers replaces every marker in s with its original payload,
// restoring newlines in paste markers. This is the submission-text form.
func ExpandMarkers(s string) string {
	return rewrite(s, func(sp Span) string {
		switch sp.Kind {
		case KindFile:
			return payload(sp.Raw, fileOpen, fileClose, 1, 1)
		case KindPaste:
			body := pastePayload(sp.Raw)
			return strings.ReplaceAll(body, string(newlineGlyph), "\n")
		}
		return sp.Raw
	})
}

func rewrite(s string, replace func(Span) string) string {
	spans := FindMarkers(s)
	if len(spans) == 0 {
		return s
	}
	var b strings.Builder
	cursor := 0
	for _, sp := range spans {
		b.WriteString(s[cursor:sp.Start])
		b.WriteString(replace(sp))
		cursor = sp.End
	}
	b.WriteString(s[cursor:])
	return b.String()
}

// payload extracts the text between the nth-from-start and nth-from-end
// rune boundaries of a simple open/close-delimited marker.
func payload(raw string, open, close rune, openWidth, closeWidth int) string {
	runes := []rune(raw)
	if len(runes) < openWidth+closeWidth {
		return ""
	}
	return string(runes[openWidth : len(runes)-closeWidth])
}

func pasteLineCount(raw string) int {
	rest := strings.TrimPrefix(raw, string(pasteOpen)+pasteTag)
	end := strings.IndexRune(rest, pasteEnd)
	if end < 0 {
		return 1
	}
	n := 0
	fmt.Sscanf(rest[:end], "%d", &n)
	return n
}

func pastePayload(raw string) string {
	rest := strings.TrimPrefix(raw, string(pasteOpen)+pasteTag)
	headerEnd := strings.IndexRune(rest, pasteEnd)
	if headerEnd < 0 {
		return ""
	}
	body := rest[headerEnd+len(string(pasteEnd)):]
	return strings.TrimSuffix(body, pasteClose)
}
