// Package history provides an optional, CLI-only append-only log of
// past calculateRamUsage results, keyed by the invocation's trace ID.
// The library itself never reads from or writes to this store: no
// state is published here until the caller explicitly asks for it,
// preserving the "no cross-call cache" rule the analyzer enforces.
package history

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS calculations (
	trace_id     TEXT PRIMARY KEY,
	entry_digest TEXT NOT NULL,
	cost         INTEGER NOT NULL,
	entries_json TEXT NOT NULL,
	created_at   INTEGER NOT NULL
);
`

// Record is one logged calculation.
type Record struct {
	TraceID     string
	EntryDigest string
	Cost        int64
	EntriesJSON string
	CreatedAt   int64
}

// DB wraps the SQLite connection backing the history log.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the history database at dbPath and ensures its
// schema exists.
func Open(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	conn.Exec("PRAGMA busy_timeout=5000")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Insert records one calculation, keyed by its trace ID. Re-inserting
// the same trace ID is idempotent.
func (db *DB) Insert(r Record) error {
	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO calculations (trace_id, entry_digest, cost, entries_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.TraceID, r.EntryDigest, r.Cost, r.EntriesJSON, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting calculation: %w", err)
	}
	return nil
}

// Get retrieves one record by trace ID, or nil if none exists.
func (db *DB) Get(traceID string) (*Record, error) {
	var r Record
	err := db.conn.QueryRow(`
		SELECT trace_id, entry_digest, cost, entries_json, created_at
		FROM calculations WHERE trace_id = ?
	`, traceID).Scan(&r.TraceID, &r.EntryDigest, &r.Cost, &r.EntriesJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying calculation: %w", err)
	}
	return &r, nil
}

// ByEntryDigest returns every recorded calculation for a given
// entry-point digest, ordered oldest first — the drift history of one
// script across edits.
func (db *DB) ByEntryDigest(entryDigest string) ([]*Record, error) {
	rows, err := db.conn.Query(`
		SELECT trace_id, entry_digest, cost, entries_json, created_at
		FROM calculations WHERE entry_digest = ?
		ORDER BY created_at ASC
	`, entryDigest)
	if err != nil {
		return nil, fmt.Errorf("querying calculations: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.TraceID, &r.EntryDigest, &r.Cost, &r.EntriesJSON, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}
