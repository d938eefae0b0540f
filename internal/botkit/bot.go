package botkit

import (
	"context"
	"log"
	"runtime/debug"
	"sort"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Часть *tgbotapi.BotAPI, которой пользуются бот и view
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatAdministrators(config tgbotapi.ChatAdministratorsConfig) ([]tgbotapi.ChatMember, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// Функция, которая реагирует на определенную команду.
// Update здесь это любой эвент, который приходит от телеграма при взаимодействии пользователя с ботом
type ViewFunc func(ctx context.Context, bot API, update tgbotapi.Update) error

type Bot struct {
	api API
	// Мапа команда -> view
	cmdViews map[string]ViewFunc
	// Описания команд для меню телеграма
	descriptions map[string]string

	updateTimeout time.Duration
}

func New(api API) *Bot {
	return &Bot{
		api:           api,
		cmdViews:      make(map[string]ViewFunc),
		descriptions:  make(map[string]string),
		updateTimeout: 15 * time.Second,
	}
}

// Метод для регистрации view для команды. Команда указывается без "/"
func (b *Bot) RegisterCmdView(cmd, description string, view ViewFunc) {
	b.cmdViews[cmd] = view
	b.descriptions[cmd] = description
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.setCommands(); err != nil {
		log.Printf("[WARN] failed to set bot commands: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case update := <-updates:
			// На каждый апдейт свой таймаут, чтобы повисшая view не держала бота.
			// Для /latest нужен запрос в YouTube, поэтому таймаут с запасом
			updateCtx, updateCancel := context.WithTimeout(ctx, b.updateTimeout)
			b.handleUpdate(updateCtx, update)
			updateCancel()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Меню команд в клиенте телеграма
func (b *Bot) setCommands() error {
	cmds := make([]string, 0, len(b.descriptions))
	for cmd := range b.descriptions {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)

	commands := make([]tgbotapi.BotCommand, 0, len(cmds))
	for _, cmd := range cmds {
		commands = append(commands, tgbotapi.BotCommand{Command: cmd, Description: b.descriptions[cmd]})
	}

	_, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...))
	return err
}

// Метод, который обрабатывает update и роутит команды на соответствующие view
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// В какой-нибудь view может случиться паника, бот при этом должен продолжить работать
	defer func() {
		if p := recover(); p != nil {
			log.Printf("[ERROR] panic recovered: %v\n%s", p, string(debug.Stack()))
		}
	}()

	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	view, ok := b.cmdViews[update.Message.Command()]
	if !ok {
		return
	}

	if err := view(ctx, b.api, update); err != nil {
		log.Printf("[ERROR] failed to handle update: %v", err)

		if _, err := b.api.Send(
			tgbotapi.NewMessage(update.Message.Chat.ID, "internal error"),
		); err != nil {
			log.Printf("[ERROR] failed to send message: %v", err)
		}
	}
}
