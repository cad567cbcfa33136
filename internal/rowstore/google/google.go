// Package google implements the row store over a Google spreadsheet using
// Service Account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gastos/internal/cache"
	"gastos/internal/core"
	"gastos/internal/rowstore"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// rowsCacheTTL bounds how stale a report can be right after someone else
// appended a row. Appends from this process invalidate immediately.
const rowsCacheTTL = 10 * time.Second

const rowsCacheKey = "rows"

type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	entriesSheet    string
	categoriesSheet string
	cardsSheet      string
	rows            *cache.LRUCache[[][]string]
}

// Ensure interface conformance
var _ rowstore.Store = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus Service Account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS).
// Optional sheet names: GOOGLE_SHEET_NAME (default "Lançamentos"),
// GOOGLE_CATEGORIES_SHEET_NAME (default "Config_Categorias"),
// GOOGLE_CARDS_SHEET_NAME (default "Config_Cartoes").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	entries := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if entries == "" {
		entries = "Lançamentos"
	}
	cats := strings.TrimSpace(os.Getenv("GOOGLE_CATEGORIES_SHEET_NAME"))
	if cats == "" {
		cats = "Config_Categorias"
	}
	cards := strings.TrimSpace(os.Getenv("GOOGLE_CARDS_SHEET_NAME"))
	if cards == "" {
		cards = "Config_Cartoes"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		entriesSheet:    entries,
		categoriesSheet: cats,
		cardsSheet:      cards,
		rows:            cache.NewLRUCache[[][]string](1, rowsCacheTTL),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) AppendRow(ctx context.Context, fields []string) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f
	}
	rng := fmt.Sprintf("%s!A:F", c.entriesSheet)
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", c.entriesSheet, err)
	}
	c.rows.Delete(rowsCacheKey)
	slog.InfoContext(ctx, "Row appended to spreadsheet", "sheet", c.entriesSheet)
	return nil
}

func (c *Client) ReadAllRows(ctx context.Context) ([][]string, error) {
	if cached, ok := c.rows.Get(rowsCacheKey); ok {
		return cached, nil
	}
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:F", c.entriesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	c.rows.Set(rowsCacheKey, out)
	return out, nil
}

func (c *Client) ReadColumn(ctx context.Context, index int) ([]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	if index < 0 || index >= core.RowWidth {
		return nil, fmt.Errorf("column index out of range: %d", index)
	}
	col := string(rune('A' + index))
	rng := fmt.Sprintf("%s!%s:%s", c.entriesSheet, col, col)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			out = append(out, "")
			continue
		}
		out = append(out, strings.TrimSpace(fmt.Sprint(row[0])))
	}
	return out, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	return c.readConfigCol(ctx, c.categoriesSheet)
}

func (c *Client) ListCards(ctx context.Context) ([]string, error) {
	return c.readConfigCol(ctx, c.cardsSheet)
}

// readConfigCol reads a single-column config sheet, skipping blanks and
// comment lines, deduplicating while preserving order.
func (c *Client) readConfigCol(ctx context.Context, sheetName string) ([]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	var out []string
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(fmt.Sprint(row[0]))
		if v == "" || strings.HasPrefix(v, "#") {
			continue
		}
		out = append(out, v)
	}
	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(out))
	for _, v := range out {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return uniq, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
