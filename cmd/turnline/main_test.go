package main

import (
	"reflect"
	"testing"

	"turnline/internal/applog"
)

func TestExtractOptionsCollectsUntilNextFlag(t *testing.T) {
	options, rest := extractOptions([]string{"--header", "hi", "--options", "yes", "no", "maybe", "--skip-welcome"})
	if !reflect.DeepEqual(options, []string{"yes", "no", "maybe"}) {
		t.Errorf("unexpected options: %v", options)
	}
	if !reflect.DeepEqual(rest, []string{"--header", "hi", "--skip-welcome"}) {
		t.Errorf("unexpected rest: %v", rest)
	}
}

func TestExtractOptionsAbsent(t *testing.T) {
	options, rest := extractOptions([]string{"--header", "hi"})
	if options != nil {
		t.Errorf("expected no options, got %v", options)
	}
	if !reflect.DeepEqual(rest, []string{"--header", "hi"}) {
		t.Errorf("unexpected rest: %v", rest)
	}
}

func TestResolveLogLevelDefaultsToWarn(t *testing.T) {
	if resolveLogLevel("") != applog.LevelWarn {
		t.Error("expected empty log level to default to warn")
	}
}

func TestResolveLogLevelParsesKnownValues(t *testing.T) {
	cases := map[string]applog.Level{
		"debug": applog.LevelDebug,
		"INFO":  applog.LevelInfo,
		"error": applog.LevelError,
	}
	for input, want := range cases {
		if got := resolveLogLevel(input); got != want {
			t.Errorf("resolveLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
