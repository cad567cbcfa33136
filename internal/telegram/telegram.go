// Package telegram adapts the Telegram Bot API to the controller's event
// and responder contracts. Everything Telegram-specific stays here.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"gastos/internal/bot"
)

type Bot struct {
	api *tgbotapi.BotAPI
}

var _ bot.Responder = (*Bot)(nil)

func New(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Bot{api: api}, nil
}

// Username returns the authenticated bot account name, for startup logging.
func (b *Bot) Username() string {
	return b.api.Self.UserName
}

func (b *Bot) Send(_ context.Context, chatID int64, text string, buttons [][]bot.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		msg.ReplyMarkup = keyboard(buttons)
	}
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) Edit(_ context.Context, chatID int64, messageID int, text string, buttons [][]bot.Button) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	if len(buttons) > 0 {
		markup := keyboard(buttons)
		edit.ReplyMarkup = &markup
	}
	if _, err := b.api.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

// Run long-polls for updates and dispatches them to the controller until the
// context is cancelled. Each update runs in its own goroutine; the session
// manager serializes per-chat state, so concurrent updates are safe.
func (b *Bot) Run(ctx context.Context, ctrl *bot.Controller) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.dispatch(ctx, ctrl, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, ctrl *bot.Controller, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		var err error
		if msg.IsCommand() {
			err = ctrl.HandleCommand(ctx, msg.Chat.ID, msg.Command())
		} else {
			err = ctrl.HandleText(ctx, bot.TextMessage{ChatID: msg.Chat.ID, Text: msg.Text})
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to handle message", "chat_id", msg.Chat.ID, "error", err)
		}
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		// Acknowledge the click so the client stops its spinner, even when
		// handling fails afterwards.
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			slog.WarnContext(ctx, "Failed to answer callback", "error", err)
		}
		if q.Message == nil {
			return
		}
		click := bot.ButtonClick{
			ChatID:    q.Message.Chat.ID,
			MessageID: q.Message.MessageID,
			Data:      q.Data,
		}
		if err := ctrl.HandleCallback(ctx, click); err != nil {
			slog.ErrorContext(ctx, "Failed to handle callback", "chat_id", click.ChatID, "data", click.Data, "error", err)
		}
	}
}

func keyboard(buttons [][]bot.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		tgRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			tgRow = append(tgRow, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data))
		}
		rows = append(rows, tgRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
