package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gastos/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append stores one entry locally and returns its row id.
func (r *SQLiteRepository) Append(ctx context.Context, e core.Entry) (int64, error) {
	rec, err := r.queries.CreateEntry(ctx, CreateEntryParams{
		RecordedAt:  e.RecordedAt.Format(core.TimestampLayout),
		Description: e.Description,
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Method:      string(e.Method),
		Card:        e.Card,
	})
	if err != nil {
		return 0, fmt.Errorf("create entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved to SQLite",
		"id", rec.ID,
		"description", rec.Description,
		"amount_cents", rec.AmountCents,
		"category", rec.Category)

	return rec.ID, nil
}

// GetEntry retrieves a single entry by ID, decoded to the domain type.
func (r *SQLiteRepository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	rec, err := r.queries.GetEntry(ctx, id)
	if err != nil {
		return core.Entry{}, fmt.Errorf("get entry by id: %w", err)
	}
	return recordToEntry(rec)
}

// Rows returns every stored entry rendered as sheet rows, header first.
// The result has the same shape ReadAllRows produces on the other backends.
func (r *SQLiteRepository) Rows(ctx context.Context) ([][]string, error) {
	recs, err := r.queries.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, core.HeaderRow())
	for _, rec := range recs {
		entry, err := recordToEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("decode entry %d: %w", rec.ID, err)
		}
		rows = append(rows, entry.Row())
	}
	return rows, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := r.queries.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	return cats, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]string, error) {
	cards, err := r.queries.GetCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}
	return cards, nil
}

// PendingEntry is the minimal data needed for sync queue messages.
type PendingEntry struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// GetPendingSync returns entries that still need to be synced to the sheet.
func (r *SQLiteRepository) GetPendingSync(ctx context.Context, limit int) ([]PendingEntry, error) {
	recs, err := r.queries.GetPendingSyncEntries(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync entries: %w", err)
	}

	pending := make([]PendingEntry, len(recs))
	for i, rec := range recs {
		pending[i] = PendingEntry{
			ID:        rec.ID,
			Version:   rec.Version,
			CreatedAt: rec.CreatedAt,
		}
	}
	return pending, nil
}

// MarkSynced marks an entry as successfully synced.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkEntrySynced(ctx, id); err != nil {
		return fmt.Errorf("mark entry synced: %w", err)
	}
	slog.InfoContext(ctx, "Entry marked as synced", "id", id)
	return nil
}

// MarkSyncError marks an entry as having sync errors.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if err := r.queries.MarkEntrySyncError(ctx, id); err != nil {
		return fmt.Errorf("mark entry sync error: %w", err)
	}
	slog.WarnContext(ctx, "Entry marked with sync error", "id", id)
	return nil
}

func recordToEntry(rec EntryRecord) (core.Entry, error) {
	ts, err := time.Parse(core.TimestampLayout, rec.RecordedAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("parse recorded_at: %w", err)
	}
	return core.Entry{
		RecordedAt:  ts,
		Description: rec.Description,
		Amount:      core.Money{Cents: rec.AmountCents},
		Category:    rec.Category,
		Method:      core.PaymentMethod(rec.Method),
		Card:        rec.Card,
	}, nil
}
