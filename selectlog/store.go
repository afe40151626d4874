// Package selectlog keeps a SQLite history of cursor selections.
package selectlog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/xwill007/cursor"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  cursor_id   TEXT    NOT NULL,
  target_id   TEXT    NOT NULL,
  mode        TEXT    NOT NULL,
  x           REAL    NOT NULL,
  y           REAL    NOT NULL,
  z           REAL    NOT NULL,
  selected_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS selections_target ON selections(target_id);
`

// Entry is one recorded selection.
type Entry struct {
	ID         int64
	CursorID   string
	TargetID   string
	Mode       cursor.Mode
	Point      cursor.Vec3
	SelectedAt time.Time
}

// Store persists selections in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the selection history at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record inserts one selection. A zero SelectedAt is stamped with the
// current time.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(e.TargetID) == "" {
		return 0, fmt.Errorf("target id is required")
	}
	at := e.SelectedAt
	if at.IsZero() {
		at = s.now()
	}
	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO selections (cursor_id, target_id, mode, x, y, z, selected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.CursorID, e.TargetID, e.Mode.String(), e.Point.X, e.Point.Y, e.Point.Z, toMillis(at),
	)
	if err != nil {
		return 0, fmt.Errorf("insert selection: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert selection id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit selections, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, cursor_id, target_id, mode, x, y, z, selected_at
		   FROM selections
		  ORDER BY selected_at DESC, id DESC
		  LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query selections: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e    Entry
			mode string
			at   int64
		)
		if err := rows.Scan(&e.ID, &e.CursorID, &e.TargetID, &mode, &e.Point.X, &e.Point.Y, &e.Point.Z, &at); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		// Unknown names from older builds read back as pointer.
		e.Mode, _ = cursor.ParseMode(mode)
		e.SelectedAt = fromMillis(at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}
	return out, nil
}

// Counts returns the number of selections per target id.
func (s *Store) Counts(ctx context.Context) (map[string]int, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT target_id, COUNT(*) FROM selections GROUP BY target_id`)
	if err != nil {
		return nil, fmt.Errorf("count selections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// Attach records every select of c. Write failures are logged and never
// reach the cursor.
func (s *Store) Attach(c *cursor.Cursor, log zerolog.Logger) cursor.CallbackHandle {
	return c.OnSelect(func(ev cursor.SelectEvent) {
		_, err := s.Record(context.Background(), Entry{
			CursorID: ev.CursorID,
			TargetID: ev.TargetID,
			Mode:     ev.Mode,
			Point:    ev.Point,
		})
		if err != nil {
			log.Error().Err(err).Str("target", ev.TargetID).Msg("record selection")
		}
	})
}
