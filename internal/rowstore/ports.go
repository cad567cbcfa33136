// Package rowstore defines the ports the conversation flow and the reports
// use to talk to the tabular store. The store behind them can be a Google
// spreadsheet, SQLite, or an in-memory fake.
package rowstore

import "context"

type (
	RowAppender interface {
		// AppendRow appends one entry row, columns in store order.
		AppendRow(ctx context.Context, fields []string) error
	}

	RowReader interface {
		// ReadAllRows returns every row in store order, header included.
		ReadAllRows(ctx context.Context) ([][]string, error)
	}

	ColumnReader interface {
		// ReadColumn returns a single column top to bottom, header cell
		// included.
		ReadColumn(ctx context.Context, index int) ([]string, error)
	}

	// TaxonomyReader lists the configured category and card choices.
	TaxonomyReader interface {
		ListCategories(ctx context.Context) ([]string, error)
		ListCards(ctx context.Context) ([]string, error)
	}

	// Store bundles everything a fully wired backend provides.
	Store interface {
		RowAppender
		RowReader
		ColumnReader
		TaxonomyReader
	}
)
