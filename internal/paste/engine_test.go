package paste

import "testing"

func TestSequenceParserRecognizesPasteStart(t *testing.T) {
	p := NewSequenceParser()
	seq := []byte("\x1b[200~")
	var last Result
	for _, b := range seq {
		last, _ = p.Feed(b)
	}
	if last != ResultPasteStart {
		t.Errorf("got %v, want ResultPasteStart", last)
	}
}

func TestSequenceParserRecognizesPasteEnd(t *testing.T) {
	p := NewSequenceParser()
	seq := []byte("\x1b[201~")
	var last Result
	for _, b := range seq {
		last, _ = p.Feed(b)
	}
	if last != ResultPasteEnd {
		t.Errorf("got %v, want ResultPasteEnd", last)
	}
}

func TestSequenceParserFlushesOnMismatch(t *testing.T) {
	p := NewSequenceParser()
	// ESC [ A is a plain arrow-up CSI, not a paste sequence.
	r1, f1 := p.Feed(0x1b)
	if r1 != ResultBuffering || f1 != nil {
		t.Fatalf("after ESC: %v %v", r1, f1)
	}
	r2, f2 := p.Feed('[')
	if r2 != ResultBuffering || f2 != nil {
		t.Fatalf("after [: %v %v", r2, f2)
	}
	r3, f3 := p.Feed('A')
	if r3 != ResultBuffering {
		t.Fatalf("after A: %v", r3)
	}
	if string(f3) != "\x1b[A" {
		t.Errorf("flushed = %q, want %q", f3, "\x1b[A")
	}
}

func TestSequenceParserPlainCharIsImmediate(t *testing.T) {
	p := NewSequenceParser()
	res, flushed := p.Feed('x')
	if res != ResultChar || flushed != nil {
		t.Errorf("got %v %v, want ResultChar nil", res, flushed)
	}
}

func TestSequenceParserResetsAfterPasteStart(t *testing.T) {
	p := NewSequenceParser()
	for _, b := range []byte("\x1b[200~") {
		p.Feed(b)
	}
	// Parser should be back to Normal and ready for ordinary chars.
	res, _ := p.Feed('x')
	if res != ResultChar {
		t.Errorf("after paste-start, plain char got %v, want ResultChar", res)
	}
}
