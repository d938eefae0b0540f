package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
)

const helpText = `SquarieBot posts new YouTube uploads to this chat.

/ping - check that the bot is alive
/hello - say hello
/latest <channel url> - show the latest upload of a channel
/listchannels - list channels added through the bot
/addchannel {"name": "...", "url": "..."} - add a channel (admins only)
/deletechannel <id> - remove a channel (admins only)`

func ViewCmdStart() botkit.ViewFunc {
	return func(_ context.Context, bot botkit.API, update tgbotapi.Update) error {
		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, helpText)); err != nil {
			return err
		}

		return nil
	}
}
