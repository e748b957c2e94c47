package transcript

import (
	"path/filepath"
	"testing"
)

func TestAppendAndRecentRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	if err := log.Append("first line", false); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := log.Append("second line with «/tmp/x.go»", true); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Text != "first line" || entries[1].Text != "second line with «/tmp/x.go»" {
		t.Errorf("expected oldest-first order, got %+v", entries)
	}
	if entries[0].HadMarkers {
		t.Error("first entry should not be flagged as having markers")
	}
	if !entries[1].HadMarkers {
		t.Error("second entry should be flagged as having markers")
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.db")
	log, _ := Open(path)
	defer log.Close()
	for i := 0; i < 5; i++ {
		log.Append("entry", false)
	}
	entries, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestNilLogIsNoOp(t *testing.T) {
	var log *Log
	if err := log.Append("x", false); err != nil {
		t.Errorf("nil log Append should be a no-op, got %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("nil log Close should be a no-op, got %v", err)
	}
	entries, err := log.Recent(5)
	if err != nil || entries != nil {
		t.Errorf("nil log Recent should return (nil, nil), got %v, %v", entries, err)
	}
}
