package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps the hand-written SQL for the entries and taxonomy tables.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type CreateEntryParams struct {
	RecordedAt  string
	Description string
	AmountCents int64
	Category    string
	Method      string
	Card        string
}

// EntryRecord is an entries table row as stored.
type EntryRecord struct {
	ID          int64
	RecordedAt  string
	Description string
	AmountCents int64
	Category    string
	Method      string
	Card        string
	SyncStatus  string
	Version     int64
	CreatedAt   time.Time
}

const entryColumns = `id, recorded_at, description, amount_cents, category, method, card, sync_status, version, created_at`

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (EntryRecord, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO entries (recorded_at, description, amount_cents, category, method, card)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		arg.RecordedAt, arg.Description, arg.AmountCents, arg.Category, arg.Method, arg.Card)
	if err != nil {
		return EntryRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return EntryRecord{}, err
	}
	return q.GetEntry(ctx, id)
}

func (q *Queries) GetEntry(ctx context.Context, id int64) (EntryRecord, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	return scanEntry(row)
}

// ListEntries returns every entry in insertion order.
func (q *Queries) ListEntries(ctx context.Context) ([]EntryRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRecord
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetPendingSyncEntries returns entries still waiting for a sheet sync,
// oldest first.
func (q *Queries) GetPendingSyncEntries(ctx context.Context, limit int64) ([]EntryRecord, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM entries
		 WHERE sync_status IN ('pending', 'error')
		 ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRecord
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (q *Queries) MarkEntrySynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE entries SET sync_status = 'synced' WHERE id = ?`, id)
	return err
}

func (q *Queries) MarkEntrySyncError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE entries SET sync_status = 'error', sync_attempts = sync_attempts + 1 WHERE id = ?`, id)
	return err
}

func (q *Queries) GetCategories(ctx context.Context) ([]string, error) {
	return q.listNames(ctx, `SELECT name FROM categories ORDER BY position`)
}

func (q *Queries) GetCards(ctx context.Context) ([]string, error) {
	return q.listNames(ctx, `SELECT name FROM cards ORDER BY position`)
}

func (q *Queries) listNames(ctx context.Context, query string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (EntryRecord, error) {
	var rec EntryRecord
	err := s.Scan(
		&rec.ID,
		&rec.RecordedAt,
		&rec.Description,
		&rec.AmountCents,
		&rec.Category,
		&rec.Method,
		&rec.Card,
		&rec.SyncStatus,
		&rec.Version,
		&rec.CreatedAt,
	)
	return rec, err
}
