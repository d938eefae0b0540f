package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
)

// Здороваемся с тем, кто отправил команду
func ViewCmdHello() botkit.ViewFunc {
	return func(_ context.Context, bot botkit.API, update tgbotapi.Update) error {
		_, err := bot.Send(tgbotapi.NewMessage(
			update.Message.Chat.ID,
			fmt.Sprintf("Hello, %s!", mention(update.Message.From)),
		))
		return err
	}
}

// Для юзеров без username упоминаем по имени
func mention(user *tgbotapi.User) string {
	if user == nil {
		return "there"
	}

	if user.UserName != "" {
		return "@" + user.UserName
	}

	return user.FirstName
}
