package output

import (
	"strings"
	"testing"

	"turnline/internal/badge"
	"turnline/internal/commandmatch"
)

type fakeSource struct{ cmds []commandmatch.Descriptor }

func (f fakeSource) Commands() []commandmatch.Descriptor { return f.cmds }

func testCommands() fakeSource {
	return fakeSource{cmds: []commandmatch.Descriptor{
		{Name: "/plan", DisplayLabel: "Plan", AgentFile: "plan.agent.md"},
	}}
}

func TestFormatExpandsPrependsAndStrips(t *testing.T) {
	f := NewFormatter(testCommands())
	marker, err := badge.CreateFileMarker("/tmp/notes.md")
	if err != nil {
		t.Fatalf("CreateFileMarker: %v", err)
	}
	input := "/plan \x1b[31mreview\x1b[0m " + marker
	out := f.Format(input)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output should be ANSI-free, got %q", out)
	}
	if !strings.Contains(out, "/tmp/notes.md") {
		t.Errorf("output should contain expanded marker path, got %q", out)
	}
	if !strings.HasPrefix(out, "Follow the prompt '.github/agents/plan.agent.md'\n\n") {
		t.Errorf("output should be prefixed with agent instruction, got %q", out)
	}
}

func TestFormatStagesToggleIndependently(t *testing.T) {
	f := NewFormatter(testCommands()).WithPrependInstruction(false).WithExpandMarkers(false)
	marker, _ := badge.CreateFileMarker("/tmp/x.go")
	out := f.Format("/plan " + marker)
	if !strings.Contains(out, marker) {
		t.Error("with expandMarkers disabled the marker text should survive untouched")
	}
	if strings.Contains(out, "Follow the prompt") {
		t.Error("with prependInstruction disabled no instruction should be added")
	}
}

func TestWriteAppendsSingleTrailingNewline(t *testing.T) {
	f := NewFormatter(testCommands())
	var buf strings.Builder
	if err := f.Write(&buf, "hello"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("got %q, want %q", buf.String(), "hello\n")
	}
}

func TestValidateOutputPurity(t *testing.T) {
	if !ValidateOutputPurity("clean text") {
		t.Error("plain text should be pure")
	}
	if ValidateOutputPurity("\x1b[31mred\x1b[0m") {
		t.Error("text containing ANSI codes should not be pure")
	}
}

func TestWriteUILineWritesNewline(t *testing.T) {
	var buf strings.Builder
	if err := WriteUILine(&buf, "status"); err != nil {
		t.Fatalf("WriteUILine: %v", err)
	}
	if buf.String() != "status\n" {
		t.Errorf("got %q", buf.String())
	}
}
