package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the date+time format stored in the first column of every
// entry row.
const TimestampLayout = "02/01/2006 15:04:05"

// CardNone marks entries paid without a card (cash, PIX).
const CardNone = "none"

const (
	MethodCredit PaymentMethod = "Crédito"
	MethodDebit  PaymentMethod = "Débito"
	MethodCash   PaymentMethod = "Dinheiro"
	MethodPix    PaymentMethod = "PIX"
)

type (
	PaymentMethod string

	// Entry is a single persisted expense. Entries are append-only: once
	// written to the row store they are never updated or deleted.
	Entry struct {
		RecordedAt  time.Time
		Description string
		Amount      Money
		Category    string
		Method      PaymentMethod
		Card        string
	}

	// MonthKey buckets entries by calendar month for reports.
	MonthKey struct {
		Month int // 1-12
		Year  int
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyMethod      = errors.New("empty payment method")
)

// PaymentMethods returns the four fixed choices in presentation order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCredit, MethodDebit, MethodCash, MethodPix}
}

// NeedsCard reports whether the method requires the card selection step.
// Unrecognized values echoed back by the transport commit directly with the
// "none" card.
func (m PaymentMethod) NeedsCard() bool {
	return m == MethodCredit || m == MethodDebit
}

func (e Entry) Validate() error {
	if e.RecordedAt.IsZero() {
		return errors.New("timestamp cannot be zero")
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(string(e.Method)) == "" {
		return ErrEmptyMethod
	}
	return nil
}

// MonthKeyOf returns the bucket the given timestamp falls in.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Month: int(t.Month()), Year: t.Year()}
}

// ParseMonthKey parses the MM/YYYY form used in callback tags and labels.
func ParseMonthKey(s string) (MonthKey, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("invalid month key %q", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return MonthKey{}, fmt.Errorf("invalid month in %q", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1 {
		return MonthKey{}, fmt.Errorf("invalid year in %q", s)
	}
	return MonthKey{Month: month, Year: year}, nil
}

// String renders the MM/YYYY form.
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d/%04d", k.Month, k.Year)
}

// Before reports calendar order.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// SortMonthsDescending orders months most recent first, for month-picker
// keyboards.
func SortMonthsDescending(months []MonthKey) {
	sort.Slice(months, func(i, j int) bool {
		return months[j].Before(months[i])
	})
}
