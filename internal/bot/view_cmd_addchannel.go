package bot

import (
	"context"
	"errors"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
	"github.com/kovalyov-valentin/squarie-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/squarie-bot/internal/model"
	"github.com/kovalyov-valentin/squarie-bot/internal/storage"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

const addChannelUsage = `Usage: /addchannel {"name": "PewDiePie", "url": "https://www.youtube.com/@PewDiePie"}`

type ChannelStorage interface {
	Add(ctx context.Context, channel model.Channel) (int64, error)
}

type ChannelNameResolver interface {
	ChannelName(ctx context.Context, channelURL string) (string, error)
}

// Добавление канала в БД. Имя можно не указывать, тогда берем его со страницы канала
func ViewCmdAddChannel(channels ChannelStorage, resolver ChannelNameResolver) botkit.ViewFunc {
	type addChannelArgs struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		args, err := botkit.ParseJSON[addChannelArgs](update.Message.CommandArguments())
		if err != nil {
			return reply(bot, update, addChannelUsage)
		}

		channel := model.Channel{
			Name: args.Name,
			URL:  normalizeChannelURL(args.URL),
		}

		if channel.URL == "" {
			return reply(bot, update, addChannelUsage)
		}

		if channel.Name == "" {
			name, err := resolver.ChannelName(ctx, channel.URL)
			if err != nil {
				log.Printf("[WARN] failed to resolve channel name for %s: %v", channel.URL, err)
				name = youtube.FallbackChannelName(channel.URL)
			}

			channel.Name = name
		}

		channelID, err := channels.Add(ctx, channel)
		if err != nil {
			if errors.Is(err, storage.ErrChannelExists) {
				return reply(bot, update, fmt.Sprintf("Channel %s is already added", channel.URL))
			}

			return err
		}

		var (
			msgText = fmt.Sprintf(
				"Channel *%s* added with ID: `%d`\\. Use this ID to manage the channel\\.",
				markup.EscapeForMarkdown(channel.Name),
				channelID,
			)
			msg = tgbotapi.NewMessage(update.Message.Chat.ID, msgText)
		)

		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(msg); err != nil {
			return err
		}

		return nil
	}
}
