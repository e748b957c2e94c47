// Package output implements the submission-time formatting pipeline and
// its stream-purity guarantee: stdout carries only the final payload,
// stderr carries everything else.
package output

import (
	"io"

	"turnline/internal/badge"
	"turnline/internal/commandmatch"
	"turnline/internal/textutil"
)

// Formatter runs the submission pipeline: expand markers, prepend the
// agent instruction for a recognized slash command, strip ANSI. Each stage
// is independently toggleable via the With* setters.
type Formatter struct {
	commands             commandmatch.Source
	expandMarkers        bool
	prependInstruction   bool
	stripANSI            bool
}

// NewFormatter builds a Formatter with every stage enabled, the default
// this repo always constructs; the individual With* setters exist for
// tests that need to isolate one stage.
func NewFormatter(commands commandmatch.Source) *Formatter {
	return &Formatter{
		commands:           commands,
		expandMarkers:      true,
		prependInstruction: true,
		stripANSI:          true,
	}
}

// WithExpandMarkers toggles marker expansion.
func (f *Formatter) WithExpandMarkers(on bool) *Formatter { f.expandMarkers = on; return f }

// WithPrependInstruction toggles agent-instruction prepending.
func (f *Formatter) WithPrependInstruction(on bool) *Formatter { f.prependInstruction = on; return f }

// WithStripANSI toggles ANSI stripping.
func (f *Formatter) WithStripANSI(on bool) *Formatter { f.stripANSI = on; return f }

// Format runs the configured pipeline over text and returns the result.
func (f *Formatter) Format(text string) string {
	result := text
	if f.expandMarkers {
		result = badge.ExpandMarkers(result)
	}
	if f.prependInstruction {
		result = commandmatch.PrependAgentInstruction(f.commands, result)
	}
	if f.stripANSI {
		result = textutil.StripANSI(result)
	}
	return result
}

// Write formats text and writes it to w followed by a single newline. w is
// normally os.Stdout; callers must never pass the UI stream here.
func (f *Formatter) Write(w io.Writer, text string) error {
	formatted := f.Format(text)
	if _, err := io.WriteString(w, formatted); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteUI writes text verbatim to w (normally os.Stderr) with no trailing
// newline — the UI channel owns its own line discipline.
func WriteUI(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

// WriteUILine writes text to w (normally os.Stderr) followed by a newline.
func WriteUILine(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ValidateOutputPurity reports whether text contains no ANSI escape
// sequences — used by tests asserting the output-purity guarantee.
func ValidateOutputPurity(text string) bool {
	return !textutil.HasANSI(text)
}
