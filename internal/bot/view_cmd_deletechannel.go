package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

type ChannelDeleter interface {
	ChannelByID(ctx context.Context, id int64) (*model.Channel, error)
	Delete(ctx context.Context, id int64) error
}

func ViewCmdDeleteChannel(storage ChannelDeleter) botkit.ViewFunc {
	return func(ctx context.Context, bot botkit.API, update tgbotapi.Update) error {
		id, err := strconv.ParseInt(strings.TrimSpace(update.Message.CommandArguments()), 10, 64)
		if err != nil {
			return reply(bot, update, "Usage: /deletechannel <id>")
		}

		channel, err := storage.ChannelByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return reply(bot, update, fmt.Sprintf("Channel %d not found", id))
			}

			return err
		}

		if err := storage.Delete(ctx, id); err != nil {
			return err
		}

		return reply(bot, update, fmt.Sprintf("Channel %s (%s) deleted", channel.Name, channel.URL))
	}
}
