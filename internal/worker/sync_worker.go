// Package worker pushes locally saved entries to the spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/rowstore"
	"gastos/internal/storage"
)

// EntrySource is the slice of the SQLite repository the worker needs.
type EntrySource interface {
	GetEntry(ctx context.Context, id int64) (core.Entry, error)
	GetPendingSync(ctx context.Context, limit int) ([]storage.PendingEntry, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker copies entries from SQLite to the spreadsheet. Queue messages
// drive the normal path; ProcessPending and StartupSyncCheck recover entries
// whose messages were lost.
type SyncWorker struct {
	source    EntrySource
	sheet     rowstore.RowAppender
	batchSize int
}

func NewSyncWorker(source EntrySource, sheet rowstore.RowAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		source:    source,
		sheet:     sheet,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single entry sync message from the queue.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EntrySyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	if err := w.syncEntry(ctx, msg.ID); err != nil {
		return fmt.Errorf("sync entry %d: %w", msg.ID, err)
	}
	return nil
}

// ProcessPending syncs entries that haven't reached the sheet yet. This is
// the backup mechanism for lost queue messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.source.GetPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending entries: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending entries", "count", len(pending))

	for _, p := range pending {
		if err := w.syncEntry(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry", "id", p.ID, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending batch when the worker starts, to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.source.GetPendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending entries for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending entries found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending entries on startup", "count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		if err := w.syncEntry(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync entry during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

func (w *SyncWorker) syncEntry(ctx context.Context, id int64) error {
	entry, err := w.source.GetEntry(ctx, id)
	if err != nil {
		if markErr := w.source.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if err := w.sheet.AppendRow(ctx, entry.Row()); err != nil {
		if markErr := w.source.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.source.MarkSynced(ctx, id); err != nil {
		// The sheet write worked; log and move on rather than requeue a
		// duplicate append.
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Synced entry to sheet",
		"id", id,
		"description", entry.Description,
		"amount_cents", entry.Amount.Cents)

	return nil
}
