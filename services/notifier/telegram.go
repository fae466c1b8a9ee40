package notifier

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tamimideals/monitor/logger"
	"tamimideals/monitor/pkg/errors"
)

// TelegramNotifier sends payloads to a Telegram chat via the bot API.
// Payloads are composed as Telegram HTML and sent with HTML parse mode.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *logger.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token and chat id.
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" || chatID == "" {
		return nil, errors.NewConfiguration("telegram bot token and chat id are required", nil)
	}

	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, errors.NewConfiguration("telegram chat id must be numeric", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, errors.NewNotify("telegram", "failed to create bot", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: id,
		log:    logger.ForNotifier(),
	}, nil
}

// Send delivers a single payload to the configured chat.
func (n *TelegramNotifier) Send(payload string) error {
	msg := tgbotapi.NewMessage(n.chatID, payload)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		return errors.NewNotify("telegram", "failed to send message", err)
	}

	n.log.Debug().Int("length", len(payload)).Msg("Payload sent")
	return nil
}
