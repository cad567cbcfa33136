// Package taxonomy holds the configured category and card choices offered
// as buttons. The catalog is loaded from the store at startup and refreshed
// only through an explicit Reload, never mutated by the conversation flow.
package taxonomy

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gastos/internal/rowstore"
)

type Catalog struct {
	mu         sync.RWMutex
	reader     rowstore.TaxonomyReader
	categories []string
	cards      []string
}

func New(reader rowstore.TaxonomyReader) *Catalog {
	return &Catalog{reader: reader}
}

// Reload fetches both lists from the store. On failure the previous catalog
// stays in effect.
func (c *Catalog) Reload(ctx context.Context) error {
	cats, err := c.reader.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	cards, err := c.reader.ListCards(ctx)
	if err != nil {
		return fmt.Errorf("list cards: %w", err)
	}

	c.mu.Lock()
	c.categories = cats
	c.cards = cards
	c.mu.Unlock()

	slog.InfoContext(ctx, "Taxonomy reloaded", "categories", len(cats), "cards", len(cards))
	return nil
}

func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.categories...)
}

func (c *Catalog) Cards() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.cards...)
}
