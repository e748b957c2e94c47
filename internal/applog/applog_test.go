package applog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Info("should not appear")
	l.Warn("should appear")
	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("Info entries should be filtered out at warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Warn entries should pass through at warn level")
	}
}

func TestWithComponentTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug).WithComponent("history")
	l.Info("persisted")
	if !strings.Contains(buf.String(), "history") {
		t.Errorf("expected component tag in output, got %q", buf.String())
	}
}

func TestErrorErrIncludesErrField(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.ErrorErr("save failed", errTest{})
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected underlying error text in output, got %q", buf.String())
	}
}

type errTest struct{}

func (errTest) Error() string { return "boom" }

func TestNewDiscardProducesNoOutput(t *testing.T) {
	l := NewDiscard()
	l.Error("this should go nowhere")
}
