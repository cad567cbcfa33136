package report

import (
	"testing"

	"gastos/internal/core"
)

func row(ts, desc, amount, category string) []string {
	return []string{ts, desc, amount, category, "PIX", core.CardNone}
}

func sampleRows() [][]string {
	return [][]string{
		core.HeaderRow(),
		row("05/05/2024 10:00:00", "Mercado", "12,00", "Alimentação"),
		row("07/05/2024 18:30:00", "Padaria", "8,00", "Alimentação"),
		row("10/01/2025 09:00:00", "Uber", "5,00", "Transporte"),
		{"bad date", "x", "1,00", "Outros", "PIX", core.CardNone},
		{"05/05/2024 11:00:00", "curta"}, // too short, skipped
	}
}

func TestBalance(t *testing.T) {
	values := []string{"Valor", "10.00", "20,50", "abc", ""}
	got := Balance(values)
	if got.StringFixed(2) != "30.50" {
		t.Fatalf("Balance = %s, want 30.50", got.StringFixed(2))
	}

	if !Balance(nil).IsZero() || !Balance([]string{"Valor"}).IsZero() {
		t.Fatalf("empty column must sum to zero")
	}
}

func TestMonthsWithActivityDescending(t *testing.T) {
	months := MonthsWithActivity(sampleRows())
	want := []core.MonthKey{{Month: 1, Year: 2025}, {Month: 5, Year: 2024}}
	if len(months) != len(want) {
		t.Fatalf("months = %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("months = %v, want %v", months, want)
		}
	}
}

func TestSpendByCategoryAllTime(t *testing.T) {
	totals := SpendByCategory(sampleRows(), nil)
	// "bad date" row still counts when no month filter is applied.
	if len(totals) != 3 {
		t.Fatalf("totals = %v", totals)
	}
	if totals[0].Category != "Alimentação" || totals[0].Total.StringFixed(2) != "20.00" {
		t.Fatalf("first category = %+v, want Alimentação 20.00", totals[0])
	}
	if totals[1].Category != "Transporte" || totals[1].Total.StringFixed(2) != "5.00" {
		t.Fatalf("second category = %+v, want Transporte 5.00", totals[1])
	}
}

func TestSpendByCategoryMonthFilter(t *testing.T) {
	month := core.MonthKey{Month: 5, Year: 2024}
	totals := SpendByCategory(sampleRows(), &month)
	if len(totals) != 1 || totals[0].Category != "Alimentação" || totals[0].Total.StringFixed(2) != "20.00" {
		t.Fatalf("totals = %v", totals)
	}

	empty := SpendByCategory(sampleRows(), &core.MonthKey{Month: 7, Year: 2030})
	if len(empty) != 0 {
		t.Fatalf("expected empty result for month with no activity, got %v", empty)
	}
}

func TestStatementForMonth(t *testing.T) {
	rows := StatementForMonth(sampleRows(), core.MonthKey{Month: 5, Year: 2024})
	if len(rows) != 2 {
		t.Fatalf("statement rows = %d, want 2", len(rows))
	}
	// Store order preserved.
	if rows[0][core.ColDescription] != "Mercado" || rows[1][core.ColDescription] != "Padaria" {
		t.Fatalf("statement order changed: %v", rows)
	}

	if got := StatementForMonth(sampleRows(), core.MonthKey{Month: 2, Year: 1999}); len(got) != 0 {
		t.Fatalf("expected no rows, got %v", got)
	}
}
