// Package memory is an in-memory row store used by tests and by the
// "memory" backend for running the bot without credentials.
package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gastos/internal/core"
	"gastos/internal/rowstore"
)

type Store struct {
	mu    sync.Mutex
	rows  [][]string
	cats  []string
	cards []string
}

var _ rowstore.Store = (*Store)(nil)

func New(cats, cards []string) *Store {
	return &Store{
		rows:  [][]string{core.HeaderRow()},
		cats:  dedupe(cats),
		cards: dedupe(cards),
	}
}

// NewFromFiles seeds the taxonomy from seed_categories.txt and
// seed_cards.txt under base, falling back to defaults when missing.
func NewFromFiles(base string) *Store {
	cats := readLines(filepath.Join(base, "seed_categories.txt"))
	cards := readLines(filepath.Join(base, "seed_cards.txt"))
	if len(cats) == 0 {
		cats = []string{"Alimentação", "Transporte", "Mercado", "Lazer", "Outros"}
	}
	if len(cards) == 0 {
		cards = []string{"Nubank", "Inter"}
	}
	return New(cats, cards)
}

func (s *Store) AppendRow(_ context.Context, fields []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, append([]string(nil), fields...))
	return nil
}

func (s *Store) ReadAllRows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.rows))
	for i, r := range s.rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *Store) ReadColumn(_ context.Context, index int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.rows))
	for _, r := range s.rows {
		if index < len(r) {
			out = append(out, r[index])
		} else {
			out = append(out, "")
		}
	}
	return out, nil
}

func (s *Store) ListCategories(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cats...), nil
}

func (s *Store) ListCards(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cards...), nil
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
