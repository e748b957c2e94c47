package keyboard

import (
	"testing"
	"time"
)

// fakeSource replays a fixed byte sequence, ignoring timeouts.
type fakeSource struct {
	bytes []byte
	pos   int
}

func (f *fakeSource) ReadByte(timeout time.Duration) (byte, bool, error) {
	if f.pos >= len(f.bytes) {
		return 0, false, nil
	}
	b := f.bytes[f.pos]
	f.pos++
	return b, true, nil
}

func (f *fakeSource) Close() error { return nil }

func newTestReader(bytes ...byte) *Reader {
	return &Reader{src: &fakeSource{bytes: bytes}}
}

func TestDecodePlainRune(t *testing.T) {
	r := newTestReader('a')
	ev, ok, err := r.Read(0)
	if err != nil || !ok {
		t.Fatalf("Read error=%v ok=%v", err, ok)
	}
	if ev.Rune != 'a' || ev.Symbol != SymNone {
		t.Errorf("got %+v, want rune 'a'", ev)
	}
}

func TestDecodeArrowUp(t *testing.T) {
	r := newTestReader(0x1b, '[', 'A')
	ev, ok, err := r.Read(0)
	if err != nil || !ok {
		t.Fatalf("Read error=%v ok=%v", err, ok)
	}
	if ev.Symbol != SymUp {
		t.Errorf("got %+v, want SymUp", ev)
	}
}

func TestDecodeCtrlArrow(t *testing.T) {
	r := newTestReader(0x1b, '[', '1', ';', '5', 'C')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymCtrlRight {
		t.Errorf("got %+v, want SymCtrlRight", ev)
	}
}

func TestDecodeCtrlShiftEnter(t *testing.T) {
	r := newTestReader(0x1b, '[', '1', '3', ';', '6', 'u')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymCtrlShiftEnter {
		t.Errorf("got %+v, want SymCtrlShiftEnter", ev)
	}
}

func TestDecodeDeleteTilde(t *testing.T) {
	r := newTestReader(0x1b, '[', '3', '~')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymDelete {
		t.Errorf("got %+v, want SymDelete", ev)
	}
}

func TestDecodeBareEscapeTimesOut(t *testing.T) {
	r := newTestReader(0x1b)
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymEscape {
		t.Errorf("got %+v, want SymEscape", ev)
	}
}

func TestDecodeAltEnter(t *testing.T) {
	r := newTestReader(0x1b, '\r')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymAltEnter {
		t.Errorf("got %+v, want SymAltEnter", ev)
	}
}

func TestDecodeBareEnter(t *testing.T) {
	r := newTestReader('\r')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymEnter {
		t.Errorf("got %+v, want SymEnter", ev)
	}
}

func TestDecodeCRLF(t *testing.T) {
	r := newTestReader('\r', '\n')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymCtrlEnter {
		t.Errorf("got %+v, want SymCtrlEnter", ev)
	}
}

func TestDecodeSoftNewline(t *testing.T) {
	r := newTestReader('\n')
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Symbol != SymShiftEnter {
		t.Errorf("got %+v, want SymShiftEnter", ev)
	}
}

func TestDecodeCtrlLetters(t *testing.T) {
	r := newTestReader(0x03, 0x04, 0x12)
	for _, want := range []Symbol{SymCtrlC, SymCtrlD, SymCtrlR} {
		ev, ok, err := r.Read(0)
		if err != nil || !ok {
			t.Fatalf("Read error=%v ok=%v", err, ok)
		}
		if ev.Symbol != want {
			t.Errorf("got %v, want %v", ev.Symbol, want)
		}
	}
}

func TestDecodeUTF8MultiByte(t *testing.T) {
	// '中' U+4E2D encodes as E4 B8 AD.
	r := newTestReader(0xE4, 0xB8, 0xAD)
	ev, _, err := r.Read(0)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Rune != '中' {
		t.Errorf("got rune %q, want 中", ev.Rune)
	}
}

func TestPasteBurstHeuristic(t *testing.T) {
	r := newTestReader('a', 'b')
	ev1, _, _ := r.Read(0)
	if ev1.IsPasting {
		t.Error("first event should not be marked as pasting")
	}
	ev2, _, _ := r.Read(0)
	if !ev2.IsPasting {
		t.Error("second event arriving within the burst threshold should be marked as pasting")
	}
}
