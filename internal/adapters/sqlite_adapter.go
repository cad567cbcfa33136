// Package adapters bridges the SQLite backend to the rowstore ports so the
// conversation flow and reports work unchanged against it.
package adapters

import (
	"context"
	"fmt"

	"gastos/internal/core"
	"gastos/internal/rowstore"
	"gastos/internal/services"
	"gastos/internal/storage"
)

// SQLiteAdapter adapts SQLiteRepository and EntryService to the rowstore
// interfaces. Writes go through the service so every commit also queues a
// sheet sync.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.EntryService
}

var _ rowstore.Store = (*SQLiteAdapter)(nil)

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.EntryService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// AppendRow implements rowstore.RowAppender.
func (a *SQLiteAdapter) AppendRow(ctx context.Context, fields []string) error {
	entry, err := core.EntryFromRow(fields)
	if err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validate entry: %w", err)
	}
	if _, err := a.service.CreateEntry(ctx, entry); err != nil {
		return err
	}
	return nil
}

// ReadAllRows implements rowstore.RowReader.
func (a *SQLiteAdapter) ReadAllRows(ctx context.Context) ([][]string, error) {
	return a.storage.Rows(ctx)
}

// ReadColumn implements rowstore.ColumnReader.
func (a *SQLiteAdapter) ReadColumn(ctx context.Context, index int) ([]string, error) {
	rows, err := a.storage.Rows(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if index < len(row) {
			out = append(out, row[index])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

// ListCategories implements rowstore.TaxonomyReader.
func (a *SQLiteAdapter) ListCategories(ctx context.Context) ([]string, error) {
	return a.storage.ListCategories(ctx)
}

// ListCards implements rowstore.TaxonomyReader.
func (a *SQLiteAdapter) ListCards(ctx context.Context) ([]string, error) {
	return a.storage.ListCards(ctx)
}
