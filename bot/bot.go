package bot

import (
	"strings"

	"github.com/0levin/shawerma-bot/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Bot wires Telegram long polling to the conversation controller. It decodes
// updates into Actions, runs them through the controller and renders the
// resulting Prompt back as a message with an inline keyboard.
type Bot struct {
	api        *tgbotapi.BotAPI
	controller *Controller
	logger     zerolog.Logger
}

func New(cfg *config.Config, controller *Controller, logger zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, controller: controller, logger: logger}, nil
}

func (b *Bot) Start() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Msg("bot activated")
	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		msg := update.Message
		if strings.TrimSpace(msg.Text) == "/start" {
			prompt := b.controller.Handle(msg.From.ID, displayName(msg.From), Action{Kind: ActionStart})
			b.send(msg.Chat.ID, prompt)
		}
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	// Ack first so the pressed button does not appear stuck.
	b.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	if cq.Message == nil {
		return
	}
	action, ok := ParseCallback(cq.Data)
	if !ok {
		b.logger.Warn().Str("data", cq.Data).Msg("unrecognized callback data")
		return
	}

	prompt := b.controller.Handle(cq.From.ID, displayName(cq.From), action)
	b.send(cq.Message.Chat.ID, prompt)
}

func (b *Bot) send(chatID int64, p Prompt) {
	msg := tgbotapi.NewMessage(chatID, p.Text)
	msg.ParseMode = "HTML"
	if kb := inlineKeyboard(p.Buttons); kb != nil {
		msg.ReplyMarkup = *kb
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat", chatID).Msg("send message")
	}
}

func displayName(u *tgbotapi.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}

// inlineKeyboard renders buttons one per row.
func inlineKeyboard(buttons []Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, btn := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data),
		))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}
