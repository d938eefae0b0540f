package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
	"github.com/kovalyov-valentin/squarie-bot/internal/model"
	"github.com/kovalyov-valentin/squarie-bot/internal/notifier"
	"github.com/kovalyov-valentin/squarie-bot/internal/source"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

// Разовая проверка канала: /latest https://www.youtube.com/@PewDiePie
func ViewCmdLatest(pages source.PageFetcher, extractor youtube.Extractor) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		channelURL := normalizeChannelURL(update.Message.CommandArguments())
		if channelURL == "" {
			return reply(bot, update, "Usage: /latest <channel url>")
		}

		src := source.ForChannel(model.Channel{URL: channelURL}, pages, extractor)

		upload, err := src.Latest(ctx)
		if err != nil {
			log.Printf("[ERROR] failed to fetch latest upload for %s: %v", channelURL, err)
			return reply(bot, update, fmt.Sprintf("Could not get the latest upload for %s", channelURL))
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, notifier.FormatUpload(upload, ""))
		msg.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(msg); err != nil {
			return err
		}

		return nil
	}
}

// Обычный текстовый ответ в тот же чат
func reply(bot botkit.API, update tgbotapi.Update, text string) error {
	if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, text)); err != nil {
		return err
	}

	return nil
}

// Хвостовой слеш убираем, иначе к урлу приклеится "//videos"
func normalizeChannelURL(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), "/")
}
