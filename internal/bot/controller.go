// Package bot routes inbound chat events to the draft state machine and the
// report engine, and renders prompts and reports back through the transport.
// It knows nothing about Telegram: the transport adapter feeds it events and
// implements Responder.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gastos/internal/core"
	"gastos/internal/report"
	"gastos/internal/rowstore"
	"gastos/internal/session"
	"gastos/internal/taxonomy"
)

type (
	// TextMessage is a free-text chat message (not a command).
	TextMessage struct {
		ChatID int64
		Text   string
	}

	// ButtonClick is an inline button press carrying its opaque tag.
	ButtonClick struct {
		ChatID    int64
		MessageID int
		Data      string
	}

	// Button is one inline choice; Data is the callback tag echoed back.
	Button struct {
		Label string
		Data  string
	}

	// Responder is the outbound side of the chat transport. Edit replaces a
	// previous message in place, which the button flows use so the chat does
	// not fill up with stale prompts.
	Responder interface {
		Send(ctx context.Context, chatID int64, text string, buttons [][]Button) error
		Edit(ctx context.Context, chatID int64, messageID int, text string, buttons [][]Button) error
	}
)

// Controller is stateless itself; all conversation state lives in the
// session manager.
type Controller struct {
	sessions       *session.Manager
	catalog        *taxonomy.Catalog
	store          rowstore.Store
	responder      Responder
	spreadsheetURL string
}

func New(sessions *session.Manager, catalog *taxonomy.Catalog, store rowstore.Store, responder Responder, spreadsheetURL string) *Controller {
	return &Controller{
		sessions:       sessions,
		catalog:        catalog,
		store:          store,
		responder:      responder,
		spreadsheetURL: spreadsheetURL,
	}
}

// HandleCommand handles slash commands. Only /start is wired: it shows the
// main menu.
func (c *Controller) HandleCommand(ctx context.Context, chatID int64, command string) error {
	if command != "start" {
		return nil
	}
	return c.responder.Send(ctx, chatID, msgMenu, menuKeyboard())
}

// HandleText starts a new draft from a "description amount" message and asks
// for the category.
func (c *Controller) HandleText(ctx context.Context, msg TextMessage) error {
	draft, err := c.sessions.StartEntry(msg.ChatID, msg.Text)
	if errors.Is(err, session.ErrInvalidEntryFormat) {
		return c.responder.Send(ctx, msg.ChatID, msgInvalidFormat, nil)
	}
	if err != nil {
		return err
	}
	return c.responder.Send(ctx, msg.ChatID, categoryQuestion(draft), categoryKeyboard(c.catalog.Categories()))
}

// HandleCallback dispatches a decoded button click.
func (c *Controller) HandleCallback(ctx context.Context, click ButtonClick) error {
	cb := ParseCallback(click.Data)
	switch cb.Action {
	case ActionCategory:
		return c.handleCategory(ctx, click, cb.Value)
	case ActionPayment:
		return c.handlePayment(ctx, click, core.PaymentMethod(cb.Value))
	case ActionCard:
		return c.handleCard(ctx, click, cb.Value)
	case ActionBalance:
		return c.handleBalance(ctx, click)
	case ActionStatementMenu:
		return c.handleMonthPicker(ctx, click, msgPickStatement, tagStatementMonthPrefix)
	case ActionCategoryMenu:
		return c.handleMonthPicker(ctx, click, msgPickCategory, tagCategoryMonthPrefix)
	case ActionStatementMonth:
		return c.handleStatementMonth(ctx, click, cb.Value)
	case ActionCategoryMonth:
		return c.handleCategoryMonth(ctx, click, cb.Value)
	case ActionExport:
		return c.handleExport(ctx, click)
	}
	slog.WarnContext(ctx, "Unknown callback tag", "data", click.Data, "chat_id", click.ChatID)
	return nil
}

func (c *Controller) handleCategory(ctx context.Context, click ButtonClick, category string) error {
	draft, err := c.sessions.SetCategory(click.ChatID, category)
	if err != nil {
		return c.draftError(ctx, click, err, msgNoDraft)
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, categoryChosen(draft.Category), paymentKeyboard())
}

func (c *Controller) handlePayment(ctx context.Context, click ButtonClick, method core.PaymentMethod) error {
	res, err := c.sessions.SetPaymentMethod(ctx, click.ChatID, method)
	if err != nil {
		return c.draftError(ctx, click, err, msgNoDraft)
	}
	if res.NeedsCard {
		return c.responder.Edit(ctx, click.ChatID, click.MessageID, cardQuestion(method), cardKeyboard(c.catalog.Cards()))
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, entrySaved(*res.Entry), nil)
}

func (c *Controller) handleCard(ctx context.Context, click ButtonClick, card string) error {
	entry, err := c.sessions.SetCard(ctx, click.ChatID, card)
	if err != nil {
		return c.draftError(ctx, click, err, msgNoDraftCard)
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, entrySaved(entry), nil)
}

// draftError maps state-machine failures to user messages. Store failures
// keep the draft, so telling the user to try again is honest.
func (c *Controller) draftError(ctx context.Context, click ButtonClick, err error, noDraftMsg string) error {
	switch {
	case errors.Is(err, session.ErrNoActiveDraft), errors.Is(err, session.ErrWrongState):
		return c.responder.Send(ctx, click.ChatID, noDraftMsg, nil)
	default:
		slog.ErrorContext(ctx, "Commit failed", "chat_id", click.ChatID, "error", err)
		return c.responder.Send(ctx, click.ChatID, msgCommitFailed, nil)
	}
}

func (c *Controller) handleBalance(ctx context.Context, click ButtonClick) error {
	values, err := c.store.ReadColumn(ctx, core.ColAmount)
	if err != nil {
		return fmt.Errorf("read amount column: %w", err)
	}
	return c.responder.Send(ctx, click.ChatID, balanceText(report.Balance(values)), nil)
}

func (c *Controller) handleMonthPicker(ctx context.Context, click ButtonClick, prompt, prefix string) error {
	rows, err := c.store.ReadAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	months := report.MonthsWithActivity(rows)
	if len(months) == 0 {
		return c.responder.Edit(ctx, click.ChatID, click.MessageID, msgNoMonths, nil)
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, prompt, monthKeyboard(months, prefix))
}

func (c *Controller) handleStatementMonth(ctx context.Context, click ButtonClick, value string) error {
	month, err := core.ParseMonthKey(value)
	if err != nil {
		slog.WarnContext(ctx, "Bad month tag", "value", value)
		return nil
	}
	rows, err := c.store.ReadAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	statement := report.StatementForMonth(rows, month)
	if len(statement) == 0 {
		return c.responder.Edit(ctx, click.ChatID, click.MessageID, noStatementText(month), nil)
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, statementText(month, statement), nil)
}

func (c *Controller) handleCategoryMonth(ctx context.Context, click ButtonClick, value string) error {
	month, err := core.ParseMonthKey(value)
	if err != nil {
		slog.WarnContext(ctx, "Bad month tag", "value", value)
		return nil
	}
	rows, err := c.store.ReadAllRows(ctx)
	if err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	totals := report.SpendByCategory(rows, &month)
	if len(totals) == 0 {
		return c.responder.Edit(ctx, click.ChatID, click.MessageID, noCategoryDataText(month), nil)
	}
	return c.responder.Edit(ctx, click.ChatID, click.MessageID, categoryReportText(month, totals), nil)
}

func (c *Controller) handleExport(ctx context.Context, click ButtonClick) error {
	if c.spreadsheetURL == "" {
		return c.responder.Send(ctx, click.ChatID, msgExportUnset, nil)
	}
	return c.responder.Send(ctx, click.ChatID, exportText(c.spreadsheetURL), nil)
}
