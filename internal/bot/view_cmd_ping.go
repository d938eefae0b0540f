package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
)

func ViewCmdPing() botkit.ViewFunc {
	return func(_ context.Context, bot botkit.API, update tgbotapi.Update) error {
		_, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "Pong!"))
		return err
	}
}
