// Package screen implements a double-buffered cell-grid compositor with
// dirty-row diff repainting, grounded on stlalpha-vision3's incremental
// editor/screen.go repaint core (physicalLines cache, RefreshLine,
// FullRedraw) and its SIGWINCH resize handling.
package screen

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"turnline/internal/textutil"
)

// Cell is one terminal cell: a rune plus an opaque style attribute (an ANSI
// SGR string, see internal/theme).
type Cell struct {
	Ch    rune
	Style string
}

// MinWidth and MinHeight are the smallest terminal dimensions this screen
// will compose a normal layout for; below this, ShouldShowResizeHint
// reports true and Render draws a centered "Resize" message instead.
const (
	MinWidth  = 20
	MinHeight = 5
)

const (
	altScreenEnable  = "\x1b[?1049h"
	altScreenDisable = "\x1b[?1049l"
	cursorHide       = "\x1b[?25l"
	cursorShow       = "\x1b[?25h"
	clearScreenSeq   = "\x1b[2J\x1b[H"
	clearEOLSeq      = "\x1b[K"
)

// Screen is a process-wide singleton owned by the application loop: the
// current and previous cell buffers, a resize signal channel, and the
// underlying UI writer (stderr).
type Screen struct {
	mu       sync.Mutex
	w, h     int
	current  [][]Cell
	previous [][]Cell
	lineCache []string // one slot per row, allocated on resize; diffing does not read it
	dirty    map[int]bool
	out      *os.File
	altScreen bool
	sigwinch chan os.Signal
	resized  chan struct{}
}

// New probes the terminal size and constructs a Screen writing UI output to
// out (normally os.Stderr, kept separate from the output stream).
func New(out *os.File, altScreen bool) (*Screen, error) {
	w, h, err := term.GetSize(int(out.Fd()))
	if err != nil {
		w, h = 80, 24
	}
	s := &Screen{
		out:       out,
		altScreen: altScreen,
		sigwinch:  make(chan os.Signal, 1),
		resized:   make(chan struct{}, 1),
	}
	s.allocate(w, h)
	signal.Notify(s.sigwinch, syscall.SIGWINCH)
	go s.signalLoop()
	return s, nil
}

func (s *Screen) signalLoop() {
	for range s.sigwinch {
		select {
		case s.resized <- struct{}{}:
		default:
		}
	}
}

// ResizePending reports (and consumes) whether a resize signal arrived
// since the last call. The application loop debounces this by ~100ms
// before reflowing.
func (s *Screen) ResizePending() bool {
	select {
	case <-s.resized:
		return true
	default:
		return false
	}
}

// DebounceResize blocks briefly to coalesce a burst of SIGWINCH deliveries,
// then refreshes the screen's own dimensions from the terminal.
func (s *Screen) DebounceResize(debounce time.Duration) {
	time.Sleep(debounce)
	for s.ResizePending() {
		// drain any further signals that arrived during the debounce
	}
	w, h, err := term.GetSize(int(s.out.Fd()))
	if err != nil {
		return
	}
	s.Resize(w, h)
}

// Size returns the current screen dimensions.
func (s *Screen) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w, s.h
}

// ShouldShowResizeHint reports whether the terminal is below the minimum
// composable size.
func (s *Screen) ShouldShowResizeHint() bool {
	w, h := s.Size()
	return w < MinWidth || h < MinHeight
}

// Start switches to the alt-screen (if enabled) and hides the cursor.
func (s *Screen) Start() {
	if s.altScreen {
		s.out.WriteString(altScreenEnable)
	}
	s.out.WriteString(cursorHide)
}

// Stop restores the cursor and leaves the alt-screen, as a best-effort
// shutdown step.
func (s *Screen) Stop() {
	s.out.WriteString(cursorShow)
	if s.altScreen {
		s.out.WriteString(altScreenDisable)
	}
}

func (s *Screen) allocate(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	newCurrent := make([][]Cell, h)
	newPrevious := make([][]Cell, h)
	for y := 0; y < h; y++ {
		newCurrent[y] = make([]Cell, w)
		newPrevious[y] = make([]Cell, w)
		for x := 0; x < w; x++ {
			newCurrent[y][x] = Cell{Ch: ' '}
			newPrevious[y][x] = Cell{Ch: 0} // force first frame fully dirty
		}
	}
	// Preserve overlapping content across a resize.
	for y := 0; y < len(s.current) && y < h; y++ {
		for x := 0; x < len(s.current[y]) && x < w; x++ {
			newCurrent[y][x] = s.current[y][x]
		}
	}
	s.current = newCurrent
	s.previous = newPrevious
	s.lineCache = make([]string, h)
	s.dirty = make(map[int]bool, h)
	for y := 0; y < h; y++ {
		s.dirty[y] = true
	}
	s.w, s.h = w, h
}

// Resize reallocates both buffers preserving overlapping content and marks
// every row dirty.
func (s *Screen) Resize(w, h int) {
	s.allocate(w, h)
}

// SetCell writes one cell into the current buffer, clamped to bounds
// (out-of-bounds writes silently truncate, matching Window.Write below).
func (s *Screen) SetCell(x, y int, ch rune, style string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.h || x < 0 || x >= s.w {
		return
	}
	s.current[y][x] = Cell{Ch: ch, Style: style}
	s.dirty[y] = true
}

// Render writes only the rows that differ from the previous frame, then
// copies current into previous. Cursor visibility is toggled around the
// write to suppress flicker.
func (s *Screen) Render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ShouldShowResizeHintLocked() {
		s.renderResizeHintLocked()
		return
	}
	s.out.WriteString(cursorHide)
	var b strings.Builder
	for y := 0; y < s.h; y++ {
		if !s.rowDiffersLocked(y) {
			continue
		}
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH", y+1, 1))
		b.WriteString(renderRow(s.current[y]))
		b.WriteString(clearEOLSeq)
		copy(s.previous[y], s.current[y])
		delete(s.dirty, y)
	}
	s.out.WriteString(b.String())
	s.out.WriteString(cursorShow)
}

func (s *Screen) rowDiffersLocked(y int) bool {
	if s.dirty[y] {
		return true
	}
	for x := range s.current[y] {
		if s.current[y][x] != s.previous[y][x] {
			return true
		}
	}
	return false
}

// ShouldShowResizeHintLocked is the lock-held variant of ShouldShowResizeHint.
func (s *Screen) ShouldShowResizeHintLocked() bool {
	return s.w < MinWidth || s.h < MinHeight
}

func (s *Screen) renderResizeHintLocked() {
	s.out.WriteString(clearScreenSeq)
	msg := "Resize"
	y := s.h / 2
	x := (s.w - textutil.VisibleLen(msg)) / 2
	if x < 0 {
		x = 0
	}
	s.out.WriteString(fmt.Sprintf("\x1b[%d;%dH%s", y+1, x+1, msg))
}

// FullRedraw clears the dirty cache so every row repaints on the next
// Render, then clears the physical terminal screen.
func (s *Screen) FullRedraw() {
	s.mu.Lock()
	for y := 0; y < s.h; y++ {
		s.dirty[y] = true
		for x := range s.previous[y] {
			s.previous[y][x] = Cell{Ch: 0}
		}
	}
	s.mu.Unlock()
	s.out.WriteString(clearScreenSeq)
}

// MoveCursor positions the terminal cursor (1-based escape coordinates from
// 0-based callers).
func (s *Screen) MoveCursor(x, y int) {
	s.out.WriteString(fmt.Sprintf("\x1b[%d;%dH", y+1, x+1))
}

func renderRow(row []Cell) string {
	var b strings.Builder
	currentStyle := ""
	for _, c := range row {
		if c.Style != currentStyle {
			if currentStyle != "" {
				b.WriteString("\x1b[0m")
			}
			if c.Style != "" {
				b.WriteString(c.Style)
			}
			currentStyle = c.Style
		}
		if c.Ch == 0 {
			b.WriteRune(' ')
		} else {
			b.WriteRune(c.Ch)
		}
	}
	if currentStyle != "" {
		b.WriteString("\x1b[0m")
	}
	return b.String()
}
