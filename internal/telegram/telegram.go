// Package telegram adapts the Telegram Bot API to the engine's update and
// messenger contracts. Commands, callback-query buttons, and free text map
// onto engine updates; reply choices render as inline keyboards.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"finanzas/internal/bot"
	"finanzas/internal/log"
	"finanzas/internal/session"
)

// buttons per keyboard row
const keyboardColumns = 2

type Adapter struct {
	api    *tgbotapi.BotAPI
	logger *log.Logger
}

func New(token string, logger *log.Logger) (*Adapter, error) {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram api: %w", err)
	}
	return &Adapter{api: api, logger: logger.WithComponent(log.ComponentTelegram)}, nil
}

// Ensure the adapter satisfies the engine's outbound port.
var _ bot.Messenger = (*Adapter)(nil)

// Send delivers a text message, with an inline keyboard when choices are
// present. In private chats the chat identifier is the user identifier.
func (a *Adapter) Send(ctx context.Context, userID int64, text string, choices ...session.Choice) error {
	msg := tgbotapi.NewMessage(userID, text)
	if len(choices) > 0 {
		msg.ReplyMarkup = keyboard(choices)
	}
	if _, err := a.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", userID, err)
	}
	a.logger.DebugContext(ctx, "message sent", log.FieldUserID, userID)
	return nil
}

func keyboard(choices []session.Choice) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, c := range choices {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(c.Label, c.Data))
		if len(row) == keyboardColumns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Run pulls updates and feeds them to the engine until the context is
// cancelled. Engine errors are logged, never fatal for the loop.
func (a *Adapter) Run(ctx context.Context, engine *bot.Engine) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := a.api.GetUpdatesChan(cfg)

	a.logger.InfoContext(ctx, "listening for updates", "bot", a.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			a.logger.InfoContext(ctx, "update loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("update channel closed")
			}
			u, ok := a.translate(update)
			if !ok {
				continue
			}
			if err := engine.HandleUpdate(ctx, u); err != nil {
				a.logger.ErrorContext(ctx, "update handling failed",
					log.FieldUserID, u.UserID, log.FieldError, err)
			}
		}
	}
}

// translate maps a raw Telegram update onto an engine update. Updates with
// no usable payload are dropped.
func (a *Adapter) translate(update tgbotapi.Update) (bot.Update, bool) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		// Ack so the client stops showing the loading spinner.
		if _, err := a.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			a.logger.Warn("callback ack failed", log.FieldError, err)
		}
		return bot.Update{
			UserID: cq.From.ID,
			Kind:   bot.UpdateButton,
			Text:   cq.Data,
		}, true

	case update.Message != nil && update.Message.IsCommand():
		return bot.Update{
			UserID:  update.Message.From.ID,
			Kind:    bot.UpdateCommand,
			Command: update.Message.Command(),
		}, true

	case update.Message != nil && update.Message.Text != "":
		return bot.Update{
			UserID: update.Message.From.ID,
			Kind:   bot.UpdateText,
			Text:   update.Message.Text,
		}, true
	}
	return bot.Update{}, false
}
