package screen

// Window is a rectangle on the screen with its own cell buffer and a dirty
// flag; it holds a pointer to its Screen and writes through to it on
// Refresh. The Screen keeps no reference to its windows (App in
// internal/app holds them), so there is no cyclic reference between a
// window and its screen.
type Window struct {
	screen     *Screen
	y, x, h, w int
	buf        [][]Cell
	dirty      bool
}

// NewWindow creates a window at (x, y) with dimensions (w, h), backed by
// screen for its eventual Refresh.
func NewWindow(s *Screen, x, y, w, h int) *Window {
	buf := make([][]Cell, h)
	for i := range buf {
		buf[i] = make([]Cell, w)
		for j := range buf[i] {
			buf[i][j] = Cell{Ch: ' '}
		}
	}
	return &Window{screen: s, x: x, y: y, w: w, h: h, buf: buf, dirty: true}
}

// Bounds returns the window's rectangle.
func (win *Window) Bounds() (x, y, w, h int) {
	return win.x, win.y, win.w, win.h
}

// Resize changes the window's rectangle, reallocating its buffer and
// marking it dirty.
func (win *Window) Resize(x, y, w, h int) {
	buf := make([][]Cell, h)
	for i := range buf {
		buf[i] = make([]Cell, w)
		for j := range buf[i] {
			buf[i][j] = Cell{Ch: ' '}
		}
	}
	win.x, win.y, win.w, win.h = x, y, w, h
	win.buf = buf
	win.dirty = true
}

// Write places a single rune at the window-relative position (col, row).
// Writes outside the window bounds are silently truncated (no error, no
// panic).
func (win *Window) Write(col, row int, ch rune, style string) {
	if row < 0 || row >= win.h || col < 0 || col >= win.w {
		return
	}
	win.buf[row][col] = Cell{Ch: ch, Style: style}
	win.dirty = true
}

// WriteString writes a string starting at (col, row), clamping at the
// window's right edge.
func (win *Window) WriteString(col, row int, s string, style string) {
	for _, r := range s {
		if col >= win.w {
			return
		}
		win.Write(col, row, r, style)
		col++
	}
}

// Clear resets every cell in the window to a blank space.
func (win *Window) Clear() {
	for y := range win.buf {
		for x := range win.buf[y] {
			win.buf[y][x] = Cell{Ch: ' '}
		}
	}
	win.dirty = true
}

// Refresh copies this window's buffer into the screen's current buffer at
// its screen-space offset.
func (win *Window) Refresh() {
	if !win.dirty {
		return
	}
	for row := 0; row < win.h; row++ {
		for col := 0; col < win.w; col++ {
			c := win.buf[row][col]
			win.screen.SetCell(win.x+col, win.y+row, c.Ch, c.Style)
		}
	}
	win.dirty = false
}
