// Package editbuffer implements the multi-line text buffer the application
// loop mutates on every keystroke: an ordered line sequence, a cursor, and a
// viewport scroll offset, with badge-atomic motion and deletion layered on
// top of a plain line-splitting approach.
package editbuffer

import (
	"strings"

	"turnline/internal/badge"
)

// Buffer is a multi-line text buffer with cursor management.
type Buffer struct {
	lines        []string
	cursorRow    int
	cursorCol    int
	scrollOffset int
}

// New returns an empty buffer: one empty line, cursor at the origin.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// Text returns the full buffer content with lines joined by '\n'.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() (row, col int) {
	return b.cursorRow, b.cursorCol
}

// Line returns the content of line i.
func (b *Buffer) Line(i int) string {
	return b.lines[i]
}

// InsertChar inserts a single rune at the cursor and advances the cursor.
func (b *Buffer) InsertChar(c rune) {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	ch := string(c)
	b.lines[b.cursorRow] = line[:col] + ch + line[col:]
	b.cursorCol = col + len(ch)
	b.snapOutOfMarker()
}

// InsertText inserts s, splitting on '\n' into new lines. '\r' is dropped.
func (b *Buffer) InsertText(s string) {
	for _, r := range s {
		switch r {
		case '\n':
			b.Newline()
		case '\r':
			// dropped
		default:
			b.InsertChar(r)
		}
	}
}

// InsertFormattedPaste normalizes CRLF/CR to LF, right-trims each line, and
// drops leading/trailing empty lines before inserting.
func (b *Buffer) InsertFormattedPaste(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		if i > 0 {
			b.Newline()
		}
		for _, c := range l {
			b.InsertChar(c)
		}
	}
}

// Newline splits the current line at the cursor column; the cursor moves to
// the start of the new line below.
func (b *Buffer) Newline() {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	head := line[:col]
	tail := line[col:]
	b.lines[b.cursorRow] = head
	rest := append([]string{tail}, b.lines[b.cursorRow+1:]...)
	b.lines = append(b.lines[:b.cursorRow+1], rest...)
	b.cursorRow++
	b.cursorCol = 0
}

// Backspace deletes the rune before the cursor, or the whole marker if the
// preceding glyph closes one, or joins with the previous line at column 0.
// Returns true if a deletion occurred.
func (b *Buffer) Backspace() bool {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	if sp, ok := badge.GetMarkerAtPosition(line, col-1); ok && col > 0 {
		b.lines[b.cursorRow] = line[:sp.Start] + line[sp.End:]
		b.cursorCol = sp.Start
		return true
	}
	if col > 0 {
		prevRuneStart := prevRuneBoundary(line, col)
		b.lines[b.cursorRow] = line[:prevRuneStart] + line[col:]
		b.cursorCol = prevRuneStart
		return true
	}
	if b.cursorRow > 0 {
		prev := b.lines[b.cursorRow-1]
		curr := b.lines[b.cursorRow]
		b.lines[b.cursorRow-1] = prev + curr
		b.lines = append(b.lines[:b.cursorRow], b.lines[b.cursorRow+1:]...)
		b.cursorRow--
		b.cursorCol = len(prev)
		return true
	}
	return false
}

// Delete deletes the rune at the cursor (forward delete), or the whole
// marker if the cursor sits at a marker's opening glyph, or joins with the
// next line at end-of-line. Returns true if a deletion occurred.
func (b *Buffer) Delete() bool {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	if sp, ok := badge.GetMarkerAtPosition(line, col); ok {
		b.lines[b.cursorRow] = line[:sp.Start] + line[sp.End:]
		return true
	}
	if col < len(line) {
		nextRuneEnd := nextRuneBoundary(line, col)
		b.lines[b.cursorRow] = line[:col] + line[nextRuneEnd:]
		return true
	}
	if b.cursorRow < len(b.lines)-1 {
		next := b.lines[b.cursorRow+1]
		b.lines[b.cursorRow] = line + next
		b.lines = append(b.lines[:b.cursorRow+1], b.lines[b.cursorRow+2:]...)
		return true
	}
	return false
}

// MoveLeft moves the cursor back one rune, wrapping to the previous line at
// column 0. If the motion would land inside a marker, it snaps to the
// marker's opening boundary instead.
func (b *Buffer) MoveLeft() bool {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	if col > 0 {
		b.cursorCol = prevRuneBoundary(line, col)
		if sp, ok := badge.GetMarkerAtPosition(line, b.cursorCol); ok && b.cursorCol != sp.Start {
			b.cursorCol = sp.Start
		}
		return true
	}
	if b.cursorRow > 0 {
		b.cursorRow--
		b.cursorCol = len(b.lines[b.cursorRow])
		return true
	}
	return false
}

// MoveRight moves the cursor forward one rune, wrapping to the next line at
// end-of-line. If the motion would land inside a marker, it snaps to the
// marker's closing boundary instead.
func (b *Buffer) MoveRight() bool {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	if col < len(line) {
		b.cursorCol = nextRuneBoundary(line, col)
		b.snapOutOfMarker()
		return true
	}
	if b.cursorRow < len(b.lines)-1 {
		b.cursorRow++
		b.cursorCol = 0
		return true
	}
	return false
}

// MoveUp moves the cursor up one line, preserving column (clamped).
func (b *Buffer) MoveUp() bool {
	if b.cursorRow == 0 {
		return false
	}
	b.cursorRow--
	b.clampColToLine()
	b.snapOutOfMarker()
	return true
}

// MoveDown moves the cursor down one line, preserving column (clamped).
func (b *Buffer) MoveDown() bool {
	if b.cursorRow >= len(b.lines)-1 {
		return false
	}
	b.cursorRow++
	b.clampColToLine()
	b.snapOutOfMarker()
	return true
}

// Home moves the cursor to the start of the current line.
func (b *Buffer) Home() {
	b.cursorCol = 0
}

// End moves the cursor to the end of the current line.
func (b *Buffer) End() {
	b.cursorCol = len(b.lines[b.cursorRow])
}

// WordLeft moves the cursor to the start of the previous whitespace-delimited word.
func (b *Buffer) WordLeft() {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	for col > 0 && col <= len(line) && isSpaceByte(line, col-1) {
		col = prevRuneBoundary(line, col)
	}
	for col > 0 && col <= len(line) && !isSpaceByte(line, col-1) {
		col = prevRuneBoundary(line, col)
	}
	b.cursorCol = col
}

// WordRight moves the cursor to the start of the next whitespace-delimited word.
func (b *Buffer) WordRight() {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	n := len(line)
	for col < n && !isSpaceByte(line, col) {
		col = nextRuneBoundary(line, col)
	}
	for col < n && isSpaceByte(line, col) {
		col = nextRuneBoundary(line, col)
	}
	b.cursorCol = col
}

// Clear resets the buffer to a single empty line.
func (b *Buffer) Clear() {
	b.lines = []string{""}
	b.cursorRow = 0
	b.cursorCol = 0
	b.scrollOffset = 0
}

// ClearLine empties the current line and moves the cursor to its start.
func (b *Buffer) ClearLine() {
	b.lines[b.cursorRow] = ""
	b.cursorCol = 0
}

// ClearToEnd deletes from the cursor to the end of the current line.
func (b *Buffer) ClearToEnd() {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	b.lines[b.cursorRow] = line[:col]
}

// GetVisibleLines adjusts the scroll offset so the cursor row stays within
// the viewport, then returns the visible slice of lines.
func (b *Buffer) GetVisibleLines(viewportHeight int) []string {
	if b.cursorRow < b.scrollOffset {
		b.scrollOffset = b.cursorRow
	} else if b.cursorRow >= b.scrollOffset+viewportHeight {
		b.scrollOffset = b.cursorRow - viewportHeight + 1
	}
	start := b.scrollOffset
	end := start + viewportHeight
	if end > len(b.lines) {
		end = len(b.lines)
	}
	return b.lines[start:end]
}

// VisibleCursorRow returns the cursor row relative to the current viewport.
func (b *Buffer) VisibleCursorRow() int {
	return b.cursorRow - b.scrollOffset
}

func (b *Buffer) clampColToLine() {
	line := b.lines[b.cursorRow]
	if b.cursorCol > len(line) {
		b.cursorCol = len(line)
	}
}

// snapOutOfMarker enforces the invariant that the cursor never resolves
// inside a marker: if it does, it snaps to the marker's trailing boundary.
func (b *Buffer) snapOutOfMarker() {
	line := b.lines[b.cursorRow]
	col := clampByteCol(line, b.cursorCol)
	if sp, ok := badge.GetMarkerAtPosition(line, col); ok && col != sp.Start {
		b.cursorCol = sp.End
	}
}

func clampRuneCol(line []rune, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}

func clampByteCol(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}

func prevRuneBoundary(s string, col int) int {
	if col == 0 {
		return 0
	}
	i := col - 1
	for i > 0 && isUTF8Continuation(s[i]) {
		i--
	}
	return i
}

func nextRuneBoundary(s string, col int) int {
	if col >= len(s) {
		return len(s)
	}
	i := col + 1
	for i < len(s) && isUTF8Continuation(s[i]) {
		i++
	}
	return i
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}

func isSpaceByte(s string, i int) bool {
	c := s[i]
	return c == ' ' || c == '\t'
}
