package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
	"github.com/kovalyov-valentin/squarie-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

type ChannelLister interface {
	Channels(ctx context.Context) ([]model.Channel, error)
}

func ViewCmdListChannels(lister ChannelLister) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		channels, err := lister.Channels(ctx)
		if err != nil {
			return err
		}

		if len(channels) == 0 {
			return reply(bot, update, "No channels added yet")
		}

		var (
			channelInfos = lo.Map(channels, func(channel model.Channel, _ int) string {
				return formatChannel(channel)
			})
			msgText = fmt.Sprintf(
				"Channels \\(%d total\\):\n\n%s",
				len(channels),
				strings.Join(channelInfos, "\n\n"),
			)
		)

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, msgText)
		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(msg); err != nil {
			return err
		}

		return nil
	}
}

func formatChannel(channel model.Channel) string {
	return fmt.Sprintf(
		"📺 *%s*\nID: `%d`\nURL: %s",
		markup.EscapeForMarkdown(channel.Name),
		channel.ID,
		markup.EscapeForMarkdown(channel.URL),
	)
}
