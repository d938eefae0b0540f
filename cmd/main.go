package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/kovalyov-valentin/squarie-bot/internal/bot"
	"github.com/kovalyov-valentin/squarie-bot/internal/bot/middleware"
	"github.com/kovalyov-valentin/squarie-bot/internal/botkit"
	"github.com/kovalyov-valentin/squarie-bot/internal/config"
	"github.com/kovalyov-valentin/squarie-bot/internal/fetcher"
	"github.com/kovalyov-valentin/squarie-bot/internal/notifier"
	"github.com/kovalyov-valentin/squarie-bot/internal/sheets"
	"github.com/kovalyov-valentin/squarie-bot/internal/storage"
	"github.com/kovalyov-valentin/squarie-bot/internal/summary"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

func main() {
	cfg := config.Get()

	// Создаем бота, используя токен из конфига
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Printf("[ERROR] failed to create bot: %v", err)
		return
	}

	// Graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// БД опциональна: без нее каналы берем только из файла
	var db *sqlx.DB
	if cfg.DatabaseDSN != "" {
		db, err = sqlx.Connect("postgres", cfg.DatabaseDSN)
		if err != nil {
			log.Printf("[ERROR] failed to connect to database: %v", err)
			return
		}
		defer db.Close()

		version, err := storage.Migrate(db)
		if err != nil {
			log.Printf("[ERROR] failed to migrate database: %v", err)
			return
		}
		log.Printf("[INFO] database schema version %d", version)
	}

	var (
		pages     = youtube.NewPageFetcher(cfg.FetchTimeout)
		extractor = youtube.NewLabelExtractor()
		providers = []storage.ChannelProvider{storage.NewChannelFileStorage(cfg.ChannelsFile)}

		channelStorage *storage.ChannelPostgresStorage
		postedStorage  fetcher.PostedStorage
	)

	if db != nil {
		channelStorage = storage.NewChannelPostgresStorage(db)
		providers = append(providers, channelStorage)
	}

	switch {
	case !cfg.NotifyOnlyNew:
		// Последнее видео каждого канала постим на каждом тике
	case db != nil:
		postedStorage = storage.NewPostedPostgresStorage(db)
	default:
		postedStorage = storage.NewPostedMemoryStorage()
	}

	var (
		uploadNotifier = notifier.New(
			botAPI,
			summary.NewOpenAISummarizer(cfg.OpenAIKey, cfg.OpenAIPromt),
			cfg.SendInterval,
			cfg.TelegramChannelID,
		)
		uploadFetcher = fetcher.NewFetcher(
			storage.NewMultiChannelProvider(providers...),
			postedStorage,
			uploadNotifier,
			pages,
			extractor,
			cfg.FetchInterval,
			cfg.FilterKeywords,
		)
	)

	// Инициализируем бота.
	// Команды, которые меняют список каналов, доступны только админам
	squarieBot := botkit.New(botAPI)
	squarieBot.RegisterCmdView("start", "help", bot.ViewCmdStart())
	squarieBot.RegisterCmdView("ping", "check that the bot is alive", bot.ViewCmdPing())
	squarieBot.RegisterCmdView("hello", "say hello", bot.ViewCmdHello())
	squarieBot.RegisterCmdView("latest", "latest upload of a channel", bot.ViewCmdLatest(pages, extractor))

	if channelStorage != nil {
		squarieBot.RegisterCmdView(
			"addchannel",
			"add a channel",
			middleware.AdminOnly(
				cfg.TelegramChannelID,
				bot.ViewCmdAddChannel(channelStorage, youtube.NewChannelNameResolver(cfg.FetchTimeout)),
			),
		)
		squarieBot.RegisterCmdView("listchannels", "list channels", bot.ViewCmdListChannels(channelStorage))
		squarieBot.RegisterCmdView(
			"deletechannel",
			"remove a channel",
			middleware.AdminOnly(cfg.TelegramChannelID, bot.ViewCmdDeleteChannel(channelStorage)),
		)
	}

	var wg sync.WaitGroup

	runWorker(ctx, &wg, "fetcher", uploadFetcher.Start)

	if cfg.CheckInMessage != "" {
		runWorker(ctx, &wg, "checkin", notifier.NewCheckIn(uploadNotifier, cfg.CheckInMessage, cfg.CheckInInterval).Start)
	}

	if cfg.SheetsEnabled {
		reader, err := sheets.NewReader(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile, cfg.SpreadsheetID, cfg.SheetsRange)
		if err != nil {
			log.Printf("[ERROR] failed to create sheets reader: %v", err)
		} else {
			runWorker(ctx, &wg, "sheets relay", sheets.NewRelay(reader, uploadNotifier, cfg.SheetsInterval).Start)
		}
	}

	// Запуск бота
	if err := squarieBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] failed to run bot: %v", err)
			cancel()
		} else {
			log.Println("bot stopped")
		}
	}

	wg.Wait()
}

// Каждый воркер в своей горутине, живет до отмены контекста
func runWorker(ctx context.Context, wg *sync.WaitGroup, name string, start func(ctx context.Context) error) {
	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to run %s: %v", name, err)
				return
			}

			log.Printf("%s stopped", name)
		}
	}()
}
