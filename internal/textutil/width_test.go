package textutil

import "testing"

func TestCharWidthControl(t *testing.T) {
	for _, r := range []rune{0x00, 0x1f, 0x7f} {
		if got := CharWidth(r); got != 0 {
			t.Errorf("CharWidth(%U) = %d, want 0", r, got)
		}
	}
}

func TestCharWidthASCII(t *testing.T) {
	if got := CharWidth('a'); got != 1 {
		t.Errorf("CharWidth('a') = %d, want 1", got)
	}
}

func TestCharWidthWide(t *testing.T) {
	// CJK ideograph, East Asian Wide.
	if got := CharWidth('中'); got != 2 {
		t.Errorf("CharWidth('中') = %d, want 2", got)
	}
	// Fullwidth Latin letter.
	if got := CharWidth('Ａ'); got != 2 {
		t.Errorf("CharWidth('Ａ') = %d, want 2", got)
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct{ in, want string }{
		{"\x1b[31mred\x1b[0m", "red"},
		{"\x1b[?25lhidden\x1b[?25h", "hidden"},
		{"plain", "plain"},
		{"\x1b[1;5Hxy", "xy"},
	}
	for _, c := range cases {
		if got := StripANSI(c.in); got != c.want {
			t.Errorf("StripANSI(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestVisibleLenProperty(t *testing.T) {
	samples := []string{
		"",
		"hello",
		"\x1b[31mred\x1b[0m",
		"中文字符",
		"mix中x",
		"\x1b[1mtab\there\x1b[0m",
	}
	for _, s := range samples {
		want := 0
		for _, r := range StripANSI(s) {
			want += CharWidth(r)
		}
		if got := VisibleLen(s); got != want {
			t.Errorf("VisibleLen(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestPadTextLeftRightCenter(t *testing.T) {
	if got := PadText("ab", 5, AlignLeft, ' ', true); got != "ab   " {
		t.Errorf("left pad = %q", got)
	}
	if got := PadText("ab", 5, AlignRight, ' ', true); got != "   ab" {
		t.Errorf("right pad = %q", got)
	}
	if got := PadText("ab", 6, AlignCenter, ' ', true); got != "  ab  " {
		t.Errorf("center pad = %q", got)
	}
}

func TestPadTextTruncateDropsWholeWideRune(t *testing.T) {
	// "中" is width 2; truncating to width 3 must not emit a half rune.
	got := PadText("中中", 3, AlignLeft, ' ', true)
	if VisibleLen(got) > 3 {
		t.Errorf("PadText truncate exceeded width: %q has visible len %d", got, VisibleLen(got))
	}
	if got != "中 " {
		t.Errorf("PadText truncate = %q, want %q", got, "中 ")
	}
}
