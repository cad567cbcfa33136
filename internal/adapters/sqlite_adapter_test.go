package adapters

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gastos/internal/core"
	"gastos/internal/services"
	"gastos/internal/storage"
)

func newTestAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "gastos.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	svc := services.NewEntryService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return NewSQLiteAdapter(repo, svc)
}

func TestAppendRowRoundTrip(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	row := []string{"10/03/2025 12:00:00", "Uber", "25,50", "Transporte", "PIX", core.CardNone}
	if err := a.AppendRow(ctx, row); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}

	rows, err := a.ReadAllRows(ctx)
	if err != nil {
		t.Fatalf("ReadAllRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	for i, cell := range row {
		if rows[1][i] != cell {
			t.Fatalf("rows[1][%d] = %q, want %q", i, rows[1][i], cell)
		}
	}
}

func TestAppendRowRejectsInvalidEntry(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	cases := []struct {
		name string
		row  []string
		want error
	}{
		{
			name: "empty description",
			row:  []string{"10/03/2025 12:00:00", "", "25,50", "Transporte", "PIX", core.CardNone},
			want: core.ErrEmptyDescription,
		},
		{
			name: "empty category",
			row:  []string{"10/03/2025 12:00:00", "Uber", "25,50", "", "PIX", core.CardNone},
			want: core.ErrEmptyCategory,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := a.AppendRow(ctx, tc.row); !errors.Is(err, tc.want) {
				t.Fatalf("AppendRow = %v, want %v", err, tc.want)
			}
		})
	}

	if rows, _ := a.ReadAllRows(ctx); len(rows) != 1 {
		t.Fatalf("invalid rows must not be persisted, got %d rows", len(rows))
	}
}

func TestReadColumn(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	a.AppendRow(ctx, []string{"10/03/2025 12:00:00", "Uber", "25,50", "Transporte", "PIX", core.CardNone})
	a.AppendRow(ctx, []string{"11/03/2025 09:00:00", "Padaria", "8,00", "Alimentação", "Dinheiro", core.CardNone})

	values, err := a.ReadColumn(ctx, core.ColAmount)
	if err != nil {
		t.Fatalf("ReadColumn: %v", err)
	}
	if len(values) != 3 || values[1] != "25,50" || values[2] != "8,00" {
		t.Fatalf("unexpected column: %v", values)
	}
}
