// Package backend selects and builds the row store the bot runs against.
package backend

import (
	"context"

	"gastos/internal/rowstore"
)

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the built store and an optional cleanup function.
type Result struct {
	Store   rowstore.Store
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// SQLite specific
	SQLiteDBPath string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets specific
	GoogleSpreadsheetID string

	// Memory backend specific
	DataDirectory string
}

// Type selects the row store implementation.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
