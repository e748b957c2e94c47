// Package badge implements the in-band marker codec: compact visual
// representations of file paths and pasted blocks that live inside the edit
// buffer's own text and expand losslessly back to their original payload on
// submission.
package badge

import (
	"errors"
	"strconv"
	"strings"
)

// Kind identifies which marker variant a span represents.
type Kind int

const (
	KindFile Kind = iota
	KindPaste
)

const (
	fileOpen  = '«'
	fileClose = '»'
	pasteOpen = '‹'
	pasteTag  = "PASTE:"
	pasteEnd  = '›'
	pasteClose = "‹/PASTE›"
	newlineGlyph = '⏎'
)

// ErrMarkerCollision is returned by the constructors when a payload already
// contains one of the marker glyphs and therefore cannot round-trip.
var ErrMarkerCollision = errors.New("badge: payload contains a marker glyph")

// Span describes one marker occurrence found by FindMarkers.
type Span struct {
	Start, End int // byte offsets into the original string, End exclusive
	Kind       Kind
	Raw        string // the full marker text, open through close
}

// CreateFileMarker wraps path as a file marker. It rejects paths containing
// the file marker's own glyphs or a newline, since those cannot round-trip.
func CreateFileMarker(path string) (string, error) {
	if strings.ContainsAny(path, string([]rune{fileOpen, fileClose})) || strings.ContainsRune(path, '\n') {
		return "", ErrMarkerCollision
	}
	return string(fileOpen) + path + string(fileClose), nil
}

// CreatePasteMarker wraps content as a paste marker, encoding embedded
// newlines as the reserved glyph and recording the line count.
func CreatePasteMarker(content string) (string, error) {
	if strings.ContainsAny(content, string([]rune{pasteOpen, pasteEnd})) {
		return "", ErrMarkerCollision
	}
	lines := 1 + strings.Count(content, "\n")
	encoded := strings.ReplaceAll(content, "\n", string(newlineGlyph))
	var b strings.Builder
	b.WriteRune(pasteOpen)
	b.WriteString(pasteTag)
	b.WriteString(strconv.Itoa(lines))
	b.WriteRune(pasteEnd)
	b.WriteString(encoded)
	b.WriteString(pasteClose)
	return b.String(), nil
}

// FindMarkers scans s left to right for non-overlapping marker spans.
// Malformed openers with no matching closer are left as ordinary text.
func FindMarkers(s string) []Span {
	var spans []Span
	runes := []rune(s)
	i := 0
	// byteOffset tracks the byte position corresponding to runes[0:i].
	byteOffset := 0
	for i < len(runes) {
		r := runes[i]
		switch r {
		case fileOpen:
			if end := indexRune(runes, i+1, fileClose); end >= 0 {
				start := byteOffset
				raw := string(runes[i : end+1])
				spans = append(spans, Span{Start: start, End: start + len(raw), Kind: KindFile, Raw: raw})
				byteOffset += len(raw)
				i = end + 1
				continue
			}
		case pasteOpen:
			if closeIdx, ok := matchPasteMarker(runes, i); ok {
				raw := string(runes[i:closeIdx])
				start := byteOffset
				spans = append(spans, Span{Start: start, End: start + len(raw), Kind: KindPaste, Raw: raw})
				byteOffset += len(raw)
				i = closeIdx
				continue
			}
		}
		byteOffset += len(string(r))
		i++
	}
	return spans
}

// matchPasteMarker checks whether runes[start:] begins a well-formed paste
// marker (‹PASTE:N›...‹/PASTE›) and returns the rune index just past its
// closing tag.
func matchPasteMarker(runes []rune, start int) (int, bool) {
	rest := string(runes[start:])
	if !strings.HasPrefix(rest, string(pasteOpen)+pasteTag) {
		return 0, false
	}
	afterTag := rest[len(string(pasteOpen)+pasteTag):]
	digitEnd := 0
	for digitEnd < len(afterTag) && afterTag[digitEnd] >= '0' && afterTag[digitEnd] <= '9' {
		digitEnd++
	}
	if digitEnd == 0 {
		return 0, false
	}
	if !strings.HasPrefix(afterTag[digitEnd:], string(pasteEnd)) {
		return 0, false
	}
	afterHeader := afterTag[digitEnd+len(string(pasteEnd)):]
	closeAt := strings.Index(afterHeader, pasteClose)
	if closeAt < 0 {
		return 0, false
	}
	fullRaw := rest[:len(string(pasteOpen)+pasteTag)+digitEnd+len(string(pasteEnd))+closeAt+len(pasteClose)]
	return start + len([]rune(fullRaw)), true
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}

// GetMarkerAtPosition returns the marker whose half-open byte span contains
// col, if any.
func GetMarkerAtPosition(s string, col int) (Span, bool) {
	for _, sp := range FindMarkers(s) {
		if col >= sp.Start && col < sp.End {
			return sp, true
		}
	}
	return Span{}, false
}
