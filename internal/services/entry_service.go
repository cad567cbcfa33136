// Package services orchestrates entry writes across the local database and
// the sync queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/core"
	"gastos/internal/storage"
)

// SyncPublisher notifies the sheet-sync worker that an entry needs pushing.
type SyncPublisher interface {
	PublishEntrySync(ctx context.Context, id, version int64) error
	Close() error
}

// EntryService saves entries to SQLite first and publishes a sync message
// afterwards. The local save is authoritative; a failed publish only delays
// the sheet copy until the worker's periodic catch-up.
type EntryService struct {
	repo      *storage.SQLiteRepository
	publisher SyncPublisher
}

func NewEntryService(repo *storage.SQLiteRepository, publisher SyncPublisher) *EntryService {
	return &EntryService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateEntry saves an entry locally and publishes a sync message.
func (s *EntryService) CreateEntry(ctx context.Context, e core.Entry) (int64, error) {
	id, err := s.repo.Append(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save entry: %w", err)
	}

	// Version 1 for new entries. A publish failure does not fail the
	// request; the entry is saved locally and stays in the pending set.
	if err := s.publishSyncMessage(ctx, id, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", id, "error", err)
	}

	return id, nil
}

func (s *EntryService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message")
		return nil
	}
	return s.publisher.PublishEntrySync(ctx, id, version)
}

// Close closes both the storage and queue connections.
func (s *EntryService) Close() error {
	var errs []error

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close entry service: %v", errs)
	}
	return nil
}
