// Package report computes read-back reports over raw store rows: balance,
// months with activity, spend by category and monthly statements.
//
// All functions are pure. The first row is treated as the sheet header and
// skipped, and rows that fail to parse are dropped silently: they are
// historical data-entry noise, not operation failures. Sums use decimals
// because the inputs are arbitrary spreadsheet strings, not validated cents.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gastos/internal/core"
)

// CategoryTotal is one line of the spend-by-category report.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Balance sums a raw amount column (header cell included), skipping values
// that do not parse as comma- or dot-decimal numbers.
func Balance(values []string) decimal.Decimal {
	total := decimal.Zero
	if len(values) == 0 {
		return total
	}
	for _, v := range values[1:] {
		amount, ok := parseAmount(v)
		if !ok {
			continue
		}
		total = total.Add(amount)
	}
	return total
}

// MonthsWithActivity returns the distinct months observed in the timestamp
// column, most recent first.
func MonthsWithActivity(rows [][]string) []core.MonthKey {
	seen := map[core.MonthKey]struct{}{}
	var months []core.MonthKey
	for _, row := range dataRows(rows) {
		if len(row) < 1 {
			continue
		}
		key, ok := parseMonth(row[core.ColTimestamp])
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		months = append(months, key)
	}
	core.SortMonthsDescending(months)
	return months
}

// SpendByCategory groups amounts by the category column, preserving
// first-encountered order. A nil month aggregates everything; otherwise only
// rows whose timestamp falls in that month count, and rows with unparsable
// timestamps are excluded from the filtered view.
func SpendByCategory(rows [][]string, month *core.MonthKey) []CategoryTotal {
	totals := map[string]decimal.Decimal{}
	var order []string
	for _, row := range dataRows(rows) {
		if len(row) <= core.ColCategory {
			continue
		}
		if month != nil {
			key, ok := parseMonth(row[core.ColTimestamp])
			if !ok || key != *month {
				continue
			}
		}
		amount, ok := parseAmount(row[core.ColAmount])
		if !ok {
			continue
		}
		category := row[core.ColCategory]
		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}
		totals[category] = totals[category].Add(amount)
	}
	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Total: totals[c]})
	}
	return out
}

// StatementForMonth returns the raw rows of the given month in store order.
func StatementForMonth(rows [][]string, month core.MonthKey) [][]string {
	var out [][]string
	for _, row := range dataRows(rows) {
		if len(row) <= core.ColAmount {
			continue
		}
		key, ok := parseMonth(row[core.ColTimestamp])
		if !ok || key != month {
			continue
		}
		out = append(out, row)
	}
	return out
}

func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseMonth(timestamp string) (core.MonthKey, bool) {
	t, err := time.Parse(core.TimestampLayout, strings.TrimSpace(timestamp))
	if err != nil {
		return core.MonthKey{}, false
	}
	return core.MonthKeyOf(t), true
}
