package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"iter"
	"os"

	_ "modernc.org/sqlite"

	"tres-rdc/internal/triple"
)

// SQLiteStore reads snapshots from table history(seq, snapshot), where
// snapshot holds the JSON encoding of one triple.
type SQLiteStore struct {
	db *sql.DB
}

// Schema is the DDL of the history table.
const Schema = `CREATE TABLE IF NOT EXISTS history (
  seq      INTEGER PRIMARY KEY,
  snapshot TEXT NOT NULL
)`

// OpenSQLite opens an existing history database read-only.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	var name string
	err = db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'history'`).Scan(&name)
	if err != nil {
		db.Close()
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("open history %s: no history table", path)
		}
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Snapshots(ctx context.Context) iter.Seq2[*triple.Snapshot, error] {
	return func(yield func(*triple.Snapshot, error) bool) {
		rows, err := s.db.QueryContext(ctx, `SELECT seq, snapshot FROM history ORDER BY seq`)
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			var (
				seq  int64
				body string
			)
			if err := rows.Scan(&seq, &body); err != nil {
				yield(nil, err)
				return
			}
			var snap triple.Snapshot
			if err := json.Unmarshal([]byte(body), &snap); err != nil {
				yield(nil, fmt.Errorf("history seq %d: %w", seq, err))
				return
			}
			if !yield(&snap, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
