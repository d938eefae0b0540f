package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/kovalyov-valentin/squarie-bot/internal/botkit/markup"
	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

const (
	footer       = "YouTube Updates by SquarieBot"
	maxSendTries = 3
)

// *tgbotapi.BotAPI подходит под этот интерфейс
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type Notifier struct {
	bot Sender
	// Может быть nil, тогда сообщение уходит без краткого описания
	summarizer Summarizer
	// Телеграм ограничивает частоту сообщений в чат, поэтому отправку притормаживаем
	limiter *rate.Limiter
	// id чата, куда постим
	channelID int64

	retryInterval time.Duration
}

func New(bot Sender, summarizer Summarizer, sendInterval time.Duration, channelID int64) *Notifier {
	limit := rate.Inf
	if sendInterval > 0 {
		limit = rate.Every(sendInterval)
	}

	return &Notifier{
		bot:           bot,
		summarizer:    summarizer,
		limiter:       rate.NewLimiter(limit, 1),
		channelID:     channelID,
		retryInterval: time.Second,
	}
}

// Публикует новое видео в канал
func (n *Notifier) NotifyUpload(ctx context.Context, channel model.Channel, upload model.Upload) error {
	msg := tgbotapi.NewMessage(n.channelID, FormatUpload(upload, n.teaser(ctx, upload)))
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if err := n.send(ctx, msg); err != nil {
		return fmt.Errorf("send upload %s from %s: %w", upload.URL, channel.URL, err)
	}

	return nil
}

// Обычное текстовое сообщение без разметки
func (n *Notifier) SendText(ctx context.Context, text string) error {
	return n.send(ctx, tgbotapi.NewMessage(n.channelID, text))
}

func (n *Notifier) send(ctx context.Context, msg tgbotapi.Chattable) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = n.retryInterval

	_, err := backoff.Retry(ctx, func() (tgbotapi.Message, error) {
		sent, err := n.bot.Send(msg)
		if isPermanent(err) {
			return sent, backoff.Permanent(err)
		}

		return sent, err
	}, backoff.WithBackOff(bo), backoff.WithMaxTries(maxSendTries))

	return err
}

// 4xx от телеграма (кривая разметка, бота нет в чате) повтором не лечится. 429 лечится
func isPermanent(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
}

// Ошибка summarizer не должна мешать отправке, просто шлем без описания
func (n *Notifier) teaser(ctx context.Context, upload model.Upload) string {
	if n.summarizer == nil {
		return ""
	}

	text := upload.Title
	if upload.Author != "" {
		text = fmt.Sprintf("%s by %s", upload.Title, upload.Author)
	}

	summary, err := n.summarizer.Summarize(ctx, text)
	if err != nil {
		log.Printf("[WARN] failed to summarize %s: %v", upload.URL, err)
		return ""
	}

	return summary
}

// Текст сообщения о новом видео в MarkdownV2
func FormatUpload(upload model.Upload, teaser string) string {
	header := "New Video 🎥"
	if upload.Author != "" {
		header = fmt.Sprintf("%s's New Video 🎥", upload.Author)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n%s", markup.EscapeForMarkdown(header), markup.EscapeForMarkdown(upload.Title))

	if teaser != "" {
		fmt.Fprintf(&b, "\n\n%s", markup.EscapeForMarkdown(teaser))
	}

	fmt.Fprintf(&b, "\n\n[Watch Now\\!](%s)", markup.EscapeLinkURL(upload.URL))

	if upload.TimeAgo != "" {
		fmt.Fprintf(&b, "\nUploaded: %s", markup.EscapeForMarkdown(upload.TimeAgo))
	}

	fmt.Fprintf(&b, "\n\n_%s_", markup.EscapeForMarkdown(footer))

	return b.String()
}
