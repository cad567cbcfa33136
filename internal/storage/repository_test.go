package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gastos/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gastos.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testEntry() core.Entry {
	return core.Entry{
		RecordedAt:  time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		Description: "Uber",
		Amount:      core.Money{Cents: 2550},
		Category:    "Transporte",
		Method:      core.MethodPix,
		Card:        core.CardNone,
	}
}

func TestAppendAndGetEntry(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id == 0 {
		t.Fatalf("Append returned zero id")
	}

	got, err := repo.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.Description != "Uber" || got.Amount.Cents != 2550 || got.Method != core.MethodPix {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.RecordedAt.Format(core.TimestampLayout) != "10/03/2025 12:30:00" {
		t.Fatalf("unexpected timestamp: %v", got.RecordedAt)
	}
}

func TestRowsIncludeHeader(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Append(ctx, testEntry()); err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows, err := repo.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][core.ColDescription] != "Descrição" {
		t.Fatalf("missing header row: %+v", rows[0])
	}
	want := []string{"10/03/2025 12:30:00", "Uber", "25,50", "Transporte", "PIX", "none"}
	for i, cell := range want {
		if rows[1][i] != cell {
			t.Fatalf("row[1][%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestSeededTaxonomy(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cats, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) == 0 || cats[0] != "Alimentação" {
		t.Fatalf("unexpected categories: %v", cats)
	}

	cards, err := repo.ListCards(ctx)
	if err != nil {
		t.Fatalf("ListCards: %v", err)
	}
	if len(cards) != 2 || cards[0] != "Nubank" {
		t.Fatalf("unexpected cards: %v", cards)
	}
}

func TestSyncLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Append(ctx, testEntry())
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	pending, err := repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != id || pending[0].Version != 1 {
		t.Fatalf("unexpected pending entries: %+v", pending)
	}

	// An errored entry stays in the pending set for retry.
	if err := repo.MarkSyncError(ctx, id); err != nil {
		t.Fatalf("MarkSyncError: %v", err)
	}
	pending, err = repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync after error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("errored entry should stay pending, got %+v", pending)
	}

	if err := repo.MarkSynced(ctx, id); err != nil {
		t.Fatalf("MarkSynced: %v", err)
	}
	pending, err = repo.GetPendingSync(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSync after synced: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("synced entry should not be pending, got %+v", pending)
	}
}
