// Package transcript is a supplemental write-behind session log: every
// submitted line is appended to a local SQLite database for later replay,
// using the same WAL mode, PRAGMA tuning, and schema-on-open approach as
// the rest of this repository's SQLite-backed stores, narrowed to a single
// table. It is a
// pure diagnostic sink — failures are swallowed exactly like history and
// config persistence failures, and nothing in the core input engine ever
// reads it back, so it cannot affect stdout purity or buffer semantics.
package transcript

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one submitted line, as replayed by the --replay flag.
type Entry struct {
	Timestamp    time.Time
	Text         string
	HadMarkers   bool
}

// Log is the write-behind transcript sink.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the transcript database at dbPath,
// enabling WAL mode for low-latency appends from the single-threaded
// application loop.
func Open(dbPath string) (*Log, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("transcript db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	l := &Log{db: db}
	if err := l.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return l, nil
}

func (l *Log) ensureSchema() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			submitted_at TEXT NOT NULL,
			text        TEXT NOT NULL,
			had_markers INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_submissions_time ON submissions(submitted_at);
	`)
	return err
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append records one submitted line. Callers (the application loop) are
// expected to ignore the returned error — a diagnostic log is not allowed
// to disrupt submission.
func (l *Log) Append(text string, hadMarkers bool) error {
	if l == nil || l.db == nil {
		return nil
	}
	_, err := l.db.Exec(
		`INSERT INTO submissions (submitted_at, text, had_markers) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), text, boolToInt(hadMarkers),
	)
	return err
}

// Recent returns up to limit of the most recently submitted entries,
// oldest first, for the --replay CLI flag to dump to stderr.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	rows, err := l.db.Query(
		`SELECT submitted_at, text, had_markers FROM submissions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var ts, text string
		var hadMarkers int
		if err := rows.Scan(&ts, &text, &hadMarkers); err != nil {
			continue
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			parsed = time.Time{}
		}
		entries = append(entries, Entry{Timestamp: parsed, Text: text, HadMarkers: hadMarkers != 0})
	}
	// Reverse to oldest-first, mirroring a natural replay order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
