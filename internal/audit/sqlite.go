package audit

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists the trail in an embedded sqlite database so it
// survives restarts. Append order is preserved by the rowid.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS audit_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		notary_id INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		original_file TEXT NOT NULL,
		signed_file TEXT NOT NULL,
		hash TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit db: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, entry Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_entries (id, notary_id, timestamp, original_file, signed_file, hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.NotaryID, entry.Timestamp, entry.OriginalFile, entry.SignedFile, entry.Hash)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, notary_id, timestamp, original_file, signed_file, hash
		 FROM audit_entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.NotaryID, &e.Timestamp, &e.OriginalFile, &e.SignedFile, &e.Hash); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
