package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "gopkg.in/telegram-bot-api.v4"
)

// Telegram drives the engine from long-polled Telegram updates. Each update
// is one independent unit of work; a failure is reported to its originator
// and never stops the loop.
type Telegram struct {
	api     *tgbotapi.BotAPI
	engine  *Engine
	ownerID int64
}

func NewTelegram(token string, ownerID int64, engine *Engine) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	slog.Info("Authorized on Telegram", "username", api.Self.UserName)
	return &Telegram{api: api, engine: engine, ownerID: ownerID}, nil
}

// Send is the push primitive used by the report scheduler.
func (t *Telegram) Send(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// OwnerID returns the configured owner chat.
func (t *Telegram) OwnerID() int64 {
	return t.ownerID
}

func (t *Telegram) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := t.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("get updates channel: %w", err)
	}
	defer t.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		t.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		t.handleMessage(ctx, update.Message)
	}
}

func (t *Telegram) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	chatID := msg.Chat.ID
	if chatID != t.ownerID {
		slog.Warn("Ignoring message from unknown chat", "chat_id", chatID)
		t.reply(chatID, Reply{Text: "This bot serves a single owner."})
		return
	}

	var reply Reply
	if msg.IsCommand() {
		reply = t.engine.HandleCommand(ctx, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
	} else {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return
		}
		reply = t.engine.HandleText(ctx, text)
	}
	t.reply(chatID, reply)
}

func (t *Telegram) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	// Acknowledge first so the client stops its spinner even if the
	// correction fails afterwards.
	if _, err := t.api.AnswerCallbackQuery(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		slog.Error("Failed to answer callback query", "error", err)
	}
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	if chatID != t.ownerID {
		return
	}
	t.reply(chatID, t.engine.HandleCallback(ctx, cq.Data))
}

func (t *Telegram) reply(chatID int64, reply Reply) {
	if reply.Text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Keyboard) > 0 {
		msg.ReplyMarkup = toInlineKeyboard(reply.Keyboard)
	}
	if _, err := t.api.Send(msg); err != nil {
		slog.Error("Failed to send reply", "error", err, "chat_id", chatID)
	}
}

func toInlineKeyboard(keyboard [][]Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
