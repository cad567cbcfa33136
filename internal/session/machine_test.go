package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastos/internal/core"
	"gastos/internal/rowstore/memory"
)

func newTestManager(t *testing.T) (*Manager, *memory.Store) {
	t.Helper()
	store := memory.New([]string{"Alimentação", "Transporte"}, []string{"Nubank"})
	m := NewManager(store)
	m.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return m, store
}

func TestStartEntryParsing(t *testing.T) {
	m, _ := newTestManager(t)

	d, err := m.StartEntry(1, "iFood 19,90")
	if err != nil {
		t.Fatalf("StartEntry: %v", err)
	}
	if d.Description != "iFood" || d.Amount.Cents != 1990 || d.State != StateAwaitingCategory {
		t.Fatalf("unexpected draft: %+v", d)
	}

	// Description may itself contain spaces; the split is at the last run.
	d, err = m.StartEntry(1, "Mercado da esquina 103,20")
	if err != nil {
		t.Fatalf("StartEntry: %v", err)
	}
	if d.Description != "Mercado da esquina" || d.Amount.Cents != 10320 {
		t.Fatalf("unexpected draft: %+v", d)
	}
}

func TestStartEntryInvalidFormat(t *testing.T) {
	m, _ := newTestManager(t)

	for _, in := range []string{"iFood", "iFood abc", "12,50", "   ", ""} {
		if _, err := m.StartEntry(7, in); !errors.Is(err, ErrInvalidEntryFormat) {
			t.Errorf("StartEntry(%q) = %v, want ErrInvalidEntryFormat", in, err)
		}
	}
	if _, ok := m.Draft(7); ok {
		t.Fatalf("failed parse must leave no draft")
	}
}

func TestHappyPathPixCommits(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if _, err := m.StartEntry(1, "Uber 25,50"); err != nil {
		t.Fatalf("StartEntry: %v", err)
	}
	if _, err := m.SetCategory(1, "Transporte"); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}
	res, err := m.SetPaymentMethod(ctx, 1, core.MethodPix)
	if err != nil {
		t.Fatalf("SetPaymentMethod: %v", err)
	}
	if res.NeedsCard || res.Entry == nil {
		t.Fatalf("pix must commit directly, got %+v", res)
	}

	rows, _ := store.ReadAllRows(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected exactly one appended row, got %d", len(rows)-1)
	}
	row := rows[1]
	want := []string{"10/03/2025 12:00:00", "Uber", "25,50", "Transporte", "PIX", core.CardNone}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}
	if _, ok := m.Draft(1); ok {
		t.Fatalf("draft must be cleared after commit")
	}
}

func TestCreditRequiresCardStep(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	m.StartEntry(1, "Jantar 80,00")
	m.SetCategory(1, "Alimentação")

	res, err := m.SetPaymentMethod(ctx, 1, core.MethodCredit)
	if err != nil {
		t.Fatalf("SetPaymentMethod: %v", err)
	}
	if !res.NeedsCard || res.Entry != nil {
		t.Fatalf("credit must not commit before the card step")
	}
	if rows, _ := store.ReadAllRows(ctx); len(rows) != 1 {
		t.Fatalf("no row may be appended before the card step")
	}

	entry, err := m.SetCard(ctx, 1, "Nubank")
	if err != nil {
		t.Fatalf("SetCard: %v", err)
	}
	if entry.Card != "Nubank" || entry.Method != core.MethodCredit {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if rows, _ := store.ReadAllRows(ctx); len(rows) != 2 {
		t.Fatalf("expected exactly one appended row")
	}
}

func TestOutOfSequenceEvents(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if _, err := m.SetCategory(1, "Transporte"); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("category with no draft = %v, want ErrNoActiveDraft", err)
	}
	if _, err := m.SetPaymentMethod(ctx, 1, core.MethodPix); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("payment with no draft = %v, want ErrNoActiveDraft", err)
	}
	if _, err := m.SetCard(ctx, 1, "Nubank"); !errors.Is(err, ErrNoActiveDraft) {
		t.Fatalf("card with no draft = %v, want ErrNoActiveDraft", err)
	}

	m.StartEntry(1, "Uber 10,00")
	if _, err := m.SetCard(ctx, 1, "Nubank"); !errors.Is(err, ErrWrongState) {
		t.Fatalf("card before category = %v, want ErrWrongState", err)
	}
	if _, err := m.SetPaymentMethod(ctx, 1, core.MethodPix); !errors.Is(err, ErrWrongState) {
		t.Fatalf("payment before category = %v, want ErrWrongState", err)
	}
	// The draft must survive the rejected steps.
	if d, ok := m.Draft(1); !ok || d.State != StateAwaitingCategory {
		t.Fatalf("draft mutated by rejected steps: %+v ok=%v", d, ok)
	}
}

type failingStore struct {
	fail bool
	rows int
}

func (f *failingStore) AppendRow(context.Context, []string) error {
	if f.fail {
		return errors.New("store unreachable")
	}
	f.rows++
	return nil
}

func TestFailedCommitPreservesDraft(t *testing.T) {
	store := &failingStore{fail: true}
	m := NewManager(store)
	ctx := context.Background()

	m.StartEntry(1, "Uber 25,50")
	m.SetCategory(1, "Transporte")
	if _, err := m.SetPaymentMethod(ctx, 1, core.MethodPix); err == nil {
		t.Fatalf("expected store error")
	}
	d, ok := m.Draft(1)
	if !ok || d.State != StateAwaitingPayment {
		t.Fatalf("draft must survive a failed commit: %+v ok=%v", d, ok)
	}

	// Retry after the store recovers.
	store.fail = false
	res, err := m.SetPaymentMethod(ctx, 1, core.MethodPix)
	if err != nil || res.Entry == nil {
		t.Fatalf("retry failed: %+v err=%v", res, err)
	}
	if store.rows != 1 {
		t.Fatalf("expected exactly one append, got %d", store.rows)
	}
	if _, ok := m.Draft(1); ok {
		t.Fatalf("draft must clear after successful retry")
	}
}

func TestCommitRejectsEmptyCategory(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	// A malformed "cat_" payload echoes back an empty category. The draft
	// still advances, but the commit must refuse to persist it.
	m.StartEntry(1, "Uber 25,50")
	if _, err := m.SetCategory(1, ""); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}
	if _, err := m.SetPaymentMethod(ctx, 1, core.MethodPix); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("SetPaymentMethod = %v, want ErrEmptyCategory", err)
	}
	if rows, _ := store.ReadAllRows(ctx); len(rows) != 1 {
		t.Fatalf("invalid draft must not be appended")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m, _ := newTestManager(t)

	m.StartEntry(1, "Uber 10,00")
	m.StartEntry(2, "iFood 20,00")

	d1, _ := m.Draft(1)
	d2, _ := m.Draft(2)
	if d1.Description != "Uber" || d2.Description != "iFood" {
		t.Fatalf("drafts leaked across sessions: %+v %+v", d1, d2)
	}
}
