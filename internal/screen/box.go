package screen

// BoxStyle selects one of the four box-drawing character sets.
type BoxStyle int

const (
	BoxRounded BoxStyle = iota
	BoxSquare
	BoxDouble
	BoxASCII
)

// boxChars holds, in order: top-left, top-right, bottom-left, bottom-right,
// horizontal, vertical.
var boxChars = map[BoxStyle][6]rune{
	BoxRounded: {'╭', '╮', '╰', '╯', '─', '│'},
	BoxSquare:  {'┌', '┐', '└', '┘', '─', '│'},
	BoxDouble:  {'╔', '╗', '╚', '╝', '═', '║'},
	BoxASCII:   {'+', '+', '+', '+', '-', '|'},
}

// DrawBox draws a border around the window's full bounds using the given
// style and attribute string.
func (win *Window) DrawBox(style BoxStyle, attr string) {
	chars, ok := boxChars[style]
	if !ok {
		chars = boxChars[BoxASCII]
	}
	tl, tr, bl, br, h, v := chars[0], chars[1], chars[2], chars[3], chars[4], chars[5]

	if win.w < 2 || win.h < 2 {
		return
	}
	win.Write(0, 0, tl, attr)
	win.Write(win.w-1, 0, tr, attr)
	win.Write(0, win.h-1, bl, attr)
	win.Write(win.w-1, win.h-1, br, attr)
	for x := 1; x < win.w-1; x++ {
		win.Write(x, 0, h, attr)
		win.Write(x, win.h-1, h, attr)
	}
	for y := 1; y < win.h-1; y++ {
		win.Write(0, y, v, attr)
		win.Write(win.w-1, y, v, attr)
	}
}
