package taxonomy

import (
	"context"
	"errors"
	"testing"
)

type stubReader struct {
	cats  []string
	cards []string
	err   error
}

func (s *stubReader) ListCategories(context.Context) ([]string, error) {
	return s.cats, s.err
}

func (s *stubReader) ListCards(context.Context) ([]string, error) {
	return s.cards, s.err
}

func TestReloadAndRead(t *testing.T) {
	r := &stubReader{cats: []string{"Alimentação"}, cards: []string{"Nubank"}}
	c := New(r)

	if got := c.Categories(); len(got) != 0 {
		t.Fatalf("catalog must start empty, got %v", got)
	}
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := c.Categories(); len(got) != 1 || got[0] != "Alimentação" {
		t.Fatalf("Categories = %v", got)
	}
	if got := c.Cards(); len(got) != 1 || got[0] != "Nubank" {
		t.Fatalf("Cards = %v", got)
	}

	// Returned slices are copies.
	c.Categories()[0] = "mutated"
	if c.Categories()[0] != "Alimentação" {
		t.Fatalf("Categories must return a copy")
	}
}

func TestReloadFailureKeepsPrevious(t *testing.T) {
	r := &stubReader{cats: []string{"A"}, cards: []string{"X"}}
	c := New(r)
	if err := c.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	r.err = errors.New("store down")
	if err := c.Reload(context.Background()); err == nil {
		t.Fatalf("expected reload error")
	}
	if got := c.Categories(); len(got) != 1 || got[0] != "A" {
		t.Fatalf("previous catalog lost: %v", got)
	}
}
