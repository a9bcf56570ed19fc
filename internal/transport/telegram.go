package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"caddie/internal/sequencer"
	"caddie/internal/telemetry"
)

// telegramAPI is the slice of the bot client the adapter uses, split out so
// tests can stub the wire.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Telegram drives the wizard over Telegram long polling. Updates are handled
// one at a time in arrival order, which is what keeps per-user inputs
// sequential.
type Telegram struct {
	api         telegramAPI
	core        Core
	logger      *slog.Logger
	metrics     *telemetry.Metrics
	pollTimeout int
}

// NewTelegram authorizes against the Bot API and returns the adapter.
// pollTimeout is the long-poll wait in seconds.
func NewTelegram(token string, core Core, logger *slog.Logger, m *telemetry.Metrics, pollTimeout int) (*Telegram, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Telegram bot authorized", "account", bot.Self.UserName)
	return &Telegram{api: bot, core: core, logger: logger, metrics: m, pollTimeout: pollTimeout}, nil
}

// Run polls for updates until the context is canceled.
func (t *Telegram) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = t.pollTimeout
	updates := t.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(update)
		}
	}
}

func (t *Telegram) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.From.IsBot || msg.Text == "" {
		return
	}
	t.metrics.RecordTransportEvent("telegram", "message")
	userID := strconv.FormatInt(msg.From.ID, 10)
	reply := Dispatch(t.core, userID, msg.Text)
	t.deliver(msg.Chat.ID, reply)
}

func (t *Telegram) deliver(chatID int64, reply sequencer.Reply) {
	out := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Choices)+len(reply.Controls) == 0 {
		out.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	} else {
		out.ReplyMarkup = keyboard(reply)
	}
	if _, err := t.api.Send(out); err != nil {
		t.logger.Error("Telegram send failed", "chat", chatID, "error", err)
		return
	}
	for _, att := range reply.Attachments {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: att.Name, Bytes: att.Data})
		if _, err := t.api.Send(doc); err != nil {
			t.logger.Error("Telegram upload failed", "chat", chatID, "file", att.Name, "error", err)
		}
	}
}

// controlColumns is the row width for control tokens under the choice grid.
const controlColumns = 3

// keyboard renders the reply as a one-time reply keyboard: choices chunked by
// the reply's column hint, controls on their own trailing rows.
func keyboard(reply sequencer.Reply) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	for _, row := range Chunk(reply.Choices, reply.Columns) {
		rows = append(rows, buttonRow(row))
	}
	for _, row := range Chunk(reply.Controls, controlColumns) {
		rows = append(rows, buttonRow(row))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}

func buttonRow(labels []string) []tgbotapi.KeyboardButton {
	buttons := make([]tgbotapi.KeyboardButton, len(labels))
	for i, l := range labels {
		buttons[i] = tgbotapi.NewKeyboardButton(l)
	}
	return buttons
}
