package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is a durable Store backed by a SQLite database. The
// (stream_id, version) uniqueness constraint enforces the optimistic
// concurrency check inside the append transaction.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL,
	stream_id  TEXT NOT NULL,
	type       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	timestamp  TEXT NOT NULL,
	data       BLOB,
	UNIQUE(stream_id, version)
);
CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream_id, version);
`

// NewSQLiteStore opens (creating if needed) a SQLite-backed store at
// path. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: opening sqlite store: %w", err)
	}
	// Serialized access keeps the version check and insert atomic
	// without busy-retry loops in callers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: initializing schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return -1, ErrNoEvents
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("journal: begin append: %w", err)
	}
	defer tx.Rollback()

	var head int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`, streamID).Scan(&head)
	if err != nil {
		return -1, fmt.Errorf("journal: reading stream head: %w", err)
	}
	if head != expectedVersion {
		return -1, ErrConcurrencyConflict
	}

	for i, e := range events {
		version := head + 1 + i
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (id, stream_id, type, version, timestamp, data) VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, streamID, e.Type, version, e.Timestamp.Format(time.RFC3339Nano), []byte(e.Data))
		if err != nil {
			return -1, fmt.Errorf("journal: inserting event: %w", err)
		}
		e.StreamID = streamID
		e.Version = version
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("journal: commit append: %w", err)
	}
	return head + len(events), nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var out []*Event
	for rows.Next() {
		var (
			e  Event
			ts string
		)
		if err := rows.Scan(&e.ID, &e.StreamID, &e.Type, &e.Version, &ts, (*[]byte)(&e.Data)); err != nil {
			return nil, fmt.Errorf("journal: scanning event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("journal: parsing timestamp: %w", err)
		}
		e.Timestamp = parsed
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stream_id, type, version, timestamp, data FROM events
		 WHERE stream_id = ? AND version >= ? ORDER BY version`, streamID, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("journal: reading stream: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ReadAll implements Store.
func (s *SQLiteStore) ReadAll(ctx context.Context, filter Filter) ([]*Event, error) {
	query := `SELECT id, stream_id, type, version, timestamp, data FROM events`
	var (
		conds []string
		args  []any
	)
	if filter.StreamID != "" {
		conds = append(conds, "stream_id = ?")
		args = append(args, filter.StreamID)
	}
	if len(filter.Types) > 0 {
		placeholders := ""
		for i, t := range filter.Types {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, t)
		}
		conds = append(conds, "type IN ("+placeholders+")")
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: reading all events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// StreamVersion implements Store.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var head int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`, streamID).Scan(&head)
	if err != nil {
		return -1, fmt.Errorf("journal: reading stream head: %w", err)
	}
	return head, nil
}

// DeleteStream implements Store.
func (s *SQLiteStore) DeleteStream(ctx context.Context, streamID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE stream_id = ?`, streamID)
	if err != nil {
		return fmt.Errorf("journal: deleting stream: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
