package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cadencehq/cadence/internal/domain/entry"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	owner      TEXT NOT NULL,
	week       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	project    TEXT NOT NULL,
	days       REAL NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	written_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_bucket ON entries (owner, kind, week);

CREATE TABLE IF NOT EXISTS nudges (
	id         TEXT PRIMARY KEY,
	from_email TEXT NOT NULL,
	to_email   TEXT NOT NULL,
	message    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	dismissed  INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_nudges_recipient ON nudges (to_email, dismissed);
`

// SQLiteStore implements EntryStore and NudgeStore on a SQLite database.
// The week key is stored as first-class (week, kind) columns.
type SQLiteStore struct {
	db  *sqlx.DB
	cfg storeConfig
}

// NewSQLiteStore opens (or creates) the database at path in WAL mode and
// migrates the schema.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db, cfg: newStoreConfig(opts)}, nil
}

type entryRow struct {
	Owner     string  `db:"owner"`
	Week      string  `db:"week"`
	Kind      string  `db:"kind"`
	Project   string  `db:"project"`
	Days      float64 `db:"days"`
	Notes     string  `db:"notes"`
	WrittenAt string  `db:"written_at"`
}

func (r entryRow) toEntry() (entry.Entry, error) {
	week, err := time.ParseInLocation(time.DateOnly, r.Week, time.UTC)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("parse week key %q: %w", r.Week, err)
	}
	written, err := time.Parse(time.RFC3339, r.WrittenAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("parse written_at %q: %w", r.WrittenAt, err)
	}
	return entry.Entry{
		Owner:     r.Owner,
		WeekKey:   week,
		Kind:      entry.Kind(r.Kind),
		Project:   r.Project,
		Days:      r.Days,
		Notes:     r.Notes,
		WrittenAt: written,
	}, nil
}

// ReplaceWeek deletes and re-inserts the bucket inside one transaction.
func (s *SQLiteStore) ReplaceWeek(ctx context.Context, owner string, kind entry.Kind, week time.Time, rows []entry.Row) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace-week tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	weekKey := week.UTC().Format(time.DateOnly)
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM entries WHERE owner = ? AND kind = ? AND week = ?`,
		owner, kind.String(), weekKey,
	); err != nil {
		return fmt.Errorf("delete week bucket: %w", err)
	}

	writtenAt := s.cfg.now().Format(time.RFC3339)
	for _, r := range rows {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO entries (owner, week, kind, project, days, notes, written_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			owner, weekKey, kind.String(), r.Project, r.Days, r.Notes, writtenAt,
		); err != nil {
			return fmt.Errorf("insert week row: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace-week tx: %w", err)
	}
	return nil
}

// Week returns the rows of one bucket.
func (s *SQLiteStore) Week(ctx context.Context, owner string, kind entry.Kind, week time.Time) ([]entry.Entry, error) {
	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT owner, week, kind, project, days, notes, written_at
		 FROM entries WHERE owner = ? AND kind = ? AND week = ? ORDER BY id`,
		owner, kind.String(), week.UTC().Format(time.DateOnly),
	)
	if err != nil {
		return nil, fmt.Errorf("query week bucket: %w", err)
	}
	return toEntries(rows)
}

// OwnerEntries returns all of an owner's entries of one kind.
func (s *SQLiteStore) OwnerEntries(ctx context.Context, owner string, kind entry.Kind) ([]entry.Entry, error) {
	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT owner, week, kind, project, days, notes, written_at
		 FROM entries WHERE owner = ? AND kind = ? ORDER BY week, id`,
		owner, kind.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("query owner entries: %w", err)
	}
	return toEntries(rows)
}

// LatestWeek returns the most recently dated submitted bucket, any kind.
func (s *SQLiteStore) LatestWeek(ctx context.Context, owner string) ([]entry.Entry, error) {
	var rows []entryRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT owner, week, kind, project, days, notes, written_at
		 FROM entries WHERE owner = ?
		   AND week = (SELECT MAX(week) FROM entries WHERE owner = ?)
		 ORDER BY id`,
		owner, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("query latest week: %w", err)
	}
	return toEntries(rows)
}

// Create stores a new nudge.
func (s *SQLiteStore) Create(ctx context.Context, n Nudge) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO nudges (id, from_email, to_email, message, created_at, dismissed)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		n.ID, n.From, n.To, n.Message, n.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert nudge: %w", err)
	}
	return nil
}

type nudgeRow struct {
	ID        string `db:"id"`
	From      string `db:"from_email"`
	To        string `db:"to_email"`
	Message   string `db:"message"`
	CreatedAt string `db:"created_at"`
	Dismissed bool   `db:"dismissed"`
}

// Undismissed returns the recipient's undismissed nudges, newest first.
func (s *SQLiteStore) Undismissed(ctx context.Context, to string) ([]Nudge, error) {
	var rows []nudgeRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, from_email, to_email, message, created_at, dismissed
		 FROM nudges WHERE to_email = ? AND dismissed = 0 ORDER BY created_at DESC`,
		to,
	)
	if err != nil {
		return nil, fmt.Errorf("query undismissed nudges: %w", err)
	}
	nudges := make([]Nudge, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse nudge created_at %q: %w", r.CreatedAt, err)
		}
		nudges = append(nudges, Nudge{
			ID: r.ID, From: r.From, To: r.To, Message: r.Message,
			CreatedAt: created, Dismissed: r.Dismissed,
		})
	}
	return nudges, nil
}

// Dismiss marks a nudge dismissed.
func (s *SQLiteStore) Dismiss(ctx context.Context, id, to string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE nudges SET dismissed = 1 WHERE id = ? AND to_email = ?`,
		id, to,
	)
	if err != nil {
		return fmt.Errorf("dismiss nudge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("dismiss nudge rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountSince counts the recipient's nudges created at or after since.
func (s *SQLiteStore) CountSince(ctx context.Context, to string, since time.Time) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM nudges WHERE to_email = ? AND created_at >= ?`,
		to, since.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("count nudges: %w", err)
	}
	return count, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite store: %w", err)
	}
	return nil
}

func toEntries(rows []entryRow) ([]entry.Entry, error) {
	entries := make([]entry.Entry, 0, len(rows))
	for _, r := range rows {
		e, err := r.toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
