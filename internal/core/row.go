package core

import (
	"fmt"
	"strings"
	"time"
)

// Column positions in the persisted sheet, in store order.
const (
	ColTimestamp = iota
	ColDescription
	ColAmount
	ColCategory
	ColMethod
	ColCard

	RowWidth = 6
)

// HeaderRow is the first row of a fresh entries sheet. Reports skip it.
func HeaderRow() []string {
	return []string{"Data", "Descrição", "Valor", "Categoria", "Pagamento", "Cartão"}
}

// Row encodes the entry in store order. The amount keeps the comma decimal
// separator so round-tripped rows parse the same way user input does.
func (e Entry) Row() []string {
	return []string{
		e.RecordedAt.Format(TimestampLayout),
		e.Description,
		e.Amount.String(),
		e.Category,
		string(e.Method),
		e.Card,
	}
}

// EntryFromRow decodes a store row back into an Entry.
func EntryFromRow(row []string) (Entry, error) {
	if len(row) < RowWidth {
		return Entry{}, fmt.Errorf("row has %d columns, want %d", len(row), RowWidth)
	}
	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(row[ColTimestamp]))
	if err != nil {
		return Entry{}, fmt.Errorf("parse timestamp: %w", err)
	}
	cents, err := ParseDecimalToCents(row[ColAmount])
	if err != nil {
		return Entry{}, fmt.Errorf("parse amount %q: %w", row[ColAmount], err)
	}
	card := strings.TrimSpace(row[ColCard])
	if card == "" {
		card = CardNone
	}
	return Entry{
		RecordedAt:  ts,
		Description: row[ColDescription],
		Amount:      Money{Cents: cents},
		Category:    row[ColCategory],
		Method:      PaymentMethod(row[ColMethod]),
		Card:        card,
	}, nil
}
