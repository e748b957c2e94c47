// Package paste implements bracketed-paste enable/disable and the
// in-stream six-state machine that separates pasted spans from typed keys.
package paste

import (
	"time"

	"turnline/internal/keyboard"
)

const (
	enableSeq  = "\x1b[?2004h"
	disableSeq = "\x1b[?2004l"
)

type writer interface {
	WriteString(string) (int, error)
}

// Enable writes the bracketed-paste enable sequence to the UI stream.
func Enable(w writer) {
	w.WriteString(enableSeq)
}

// Disable writes the bracketed-paste disable sequence to the UI stream.
// Callers should register this as a best-effort shutdown hook.
func Disable(w writer) {
	w.WriteString(disableSeq)
}

// state is one of the six states of the bracketed-paste byte parser.
type state int

const (
	stateNormal state = iota
	stateEsc
	stateBracket
	stateTwo
	stateZero
	stateDigit
)

// Result is the tagged outcome of feeding one byte to the parser.
type Result int

const (
	ResultBuffering Result = iota
	ResultChar
	ResultPasteStart
	ResultPasteEnd
)

// SequenceParser recognises ESC[200~ (paste-start) and ESC[201~ (paste-end)
// byte-by-byte. On a mismatched byte it flushes the accumulated prefix
// (including the mismatching byte) as ordinary bytes for the caller to
// redecode.
type SequenceParser struct {
	st      state
	pending []byte
}

// NewSequenceParser returns a parser in the Normal state.
func NewSequenceParser() *SequenceParser {
	return &SequenceParser{st: stateNormal}
}

// Feed processes one byte and returns the tagged result plus, on a
// mismatch, the buffered bytes (ESC-prefix + mismatching byte) that must be
// redecoded as ordinary input.
func (p *SequenceParser) Feed(b byte) (Result, []byte) {
	switch p.st {
	case stateNormal:
		if b == 0x1b {
			p.st = stateEsc
			p.pending = []byte{b}
			return ResultBuffering, nil
		}
		return ResultChar, nil
	case stateEsc:
		if b == '[' {
			p.st = stateBracket
			p.pending = append(p.pending, b)
			return ResultBuffering, nil
		}
		return p.flush(b)
	case stateBracket:
		if b == '2' {
			p.st = stateTwo
			p.pending = append(p.pending, b)
			return ResultBuffering, nil
		}
		return p.flush(b)
	case stateTwo:
		if b == '0' {
			p.st = stateZero
			p.pending = append(p.pending, b)
			return ResultBuffering, nil
		}
		return p.flush(b)
	case stateZero:
		if b == '0' || b == '1' {
			p.st = stateDigit
			p.pending = append(p.pending, b)
			return ResultBuffering, nil
		}
		return p.flush(b)
	case stateDigit:
		if b == '~' {
			last := p.pending[len(p.pending)-1]
			p.reset()
			if last == '0' {
				return ResultPasteStart, nil
			}
			return ResultPasteEnd, nil
		}
		return p.flush(b)
	}
	return ResultChar, nil
}

func (p *SequenceParser) flush(mismatch byte) (Result, []byte) {
	flushed := append(append([]byte{}, p.pending...), mismatch)
	p.reset()
	return ResultBuffering, flushed
}

func (p *SequenceParser) reset() {
	p.st = stateNormal
	p.pending = nil
}

// startSeq is the literal byte sequence a nested paste-start resolves to
// when treated defensively as literal text inside a collection.
const (
	startSeq = "\x1b[200~"
)

// Engine sits below keyboard.Reader's symbolic decoding: it inspects the
// raw byte stream for bracketed-paste framing and only hands non-paste
// bytes up to the Reader's own escape/UTF-8 decoding.
type Engine struct {
	kb     *keyboard.Reader
	parser *SequenceParser
}

// NewEngine wraps a keyboard reader with bracketed-paste detection.
func NewEngine(kb *keyboard.Reader) *Engine {
	return &Engine{kb: kb, parser: NewSequenceParser()}
}

// CollectionBudget is the overall time budget for a paste span once
// paste-start has been observed.
const CollectionBudget = 30 * time.Second

// stepTimeout is the per-step budget while resolving an ambiguous byte
// mid-stream, matching the ~50ms lookahead the keyboard reader itself uses.
const stepTimeout = 50 * time.Millisecond

// Read returns one event: either a whole collected paste payload
// (isPaste=true), or a plain keyboard event redecoded through the Reader.
func (e *Engine) Read(timeout time.Duration) (payload string, isPaste bool, ev keyboard.Event, gotEvent bool, err error) {
	b, ok, rerr := e.kb.ReadRawByte(timeout)
	if rerr != nil || !ok {
		return "", false, keyboard.Event{}, false, rerr
	}

	res, flushed := e.parser.Feed(b)
	switch res {
	case ResultPasteStart:
		p, cerr := e.collect()
		return p, true, keyboard.Event{}, false, cerr
	case ResultBuffering:
		// The parser is mid-sequence; keep pulling raw bytes until it
		// resolves, honoring the same timeout budget for each step.
		return e.Read(stepTimeout)
	default:
		if len(flushed) > 0 {
			e.kb.InjectBytes(flushed)
		} else {
			e.kb.InjectBytes([]byte{b})
		}
		kev, got, kerr := e.kb.Read(timeout)
		return "", false, kev, got, kerr
	}
}

// collect accumulates bytes until PasteEnd or the overall budget elapses.
// A nested paste-start within a collection is treated as literal text,
// since the collection sub-parser is the same state machine
// (PasteTimeout: on budget exhaustion, returns the partial payload).
func (e *Engine) collect() (string, error) {
	deadline := time.Now().Add(CollectionBudget)
	sub := NewSequenceParser()
	var out []byte
	for time.Now().Before(deadline) {
		b, ok, err := e.kb.ReadRawByte(stepTimeout)
		if err != nil {
			return string(out), err
		}
		if !ok {
			continue
		}
		res, flushed := sub.Feed(b)
		switch res {
		case ResultPasteEnd:
			return string(out), nil
		case ResultPasteStart:
			out = append(out, startSeq...)
		case ResultBuffering:
			// still resolving a possible paste-end sequence; any bytes
			// flushed by a mismatched earlier prefix are payload
			out = append(out, flushed...)
		default:
			if len(flushed) > 0 {
				out = append(out, flushed...)
			} else {
				out = append(out, b)
			}
		}
	}
	return string(out), nil
}
