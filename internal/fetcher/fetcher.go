package fetcher

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/tomakado/containers/set"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
	"github.com/kovalyov-valentin/squarie-bot/internal/source"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

type ChannelProvider interface {
	Channels(ctx context.Context) ([]model.Channel, error)
}

// Хранилище уже опубликованных видео
type PostedStorage interface {
	PostedURLs(ctx context.Context) ([]string, error)
	MarkPosted(ctx context.Context, channel model.Channel, upload model.Upload) error
}

type UploadNotifier interface {
	NotifyUpload(ctx context.Context, channel model.Channel, upload model.Upload) error
}

// Интерфейс источника
type Source interface {
	Channel() model.Channel
	Latest(ctx context.Context) (model.Upload, error)
}

// Структура сборщика
type Fetcher struct {
	channels ChannelProvider
	// nil, если постим последнее видео на каждом тике
	posted   PostedStorage
	notifier UploadNotifier

	pages     source.PageFetcher
	extractor youtube.Extractor

	// Как часто опрашиваем каналы
	fetchInterval time.Duration
	// Видео с этими словами в заголовке пропускаем
	filterKeywords []string
}

func NewFetcher(
	channelProvider ChannelProvider,
	postedStorage PostedStorage,
	notifier UploadNotifier,
	pages source.PageFetcher,
	extractor youtube.Extractor,
	fetchInterval time.Duration,
	filterKeywords []string,
) *Fetcher {
	return &Fetcher{
		channels:       channelProvider,
		posted:         postedStorage,
		notifier:       notifier,
		pages:          pages,
		extractor:      extractor,
		fetchInterval:  fetchInterval,
		filterKeywords: filterKeywords,
	}
}

// Fetcher работает в отдельной горутине как самостоятельный воркер.
// Первый опрос сразу, дальше по fetchInterval
func (f *Fetcher) Start(ctx context.Context) error {
	ticker := time.NewTicker(f.fetchInterval)
	defer ticker.Stop()

	if err := f.Fetch(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := f.Fetch(ctx); err != nil {
				return err
			}
		}
	}
}

// Один тик. Ошибки отдельных каналов только логируем, их подберет следующий тик.
// Наружу отдаем только отмену контекста
func (f *Fetcher) Fetch(ctx context.Context) error {
	channels, err := f.channels.Channels(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to load channels: %v", err)
		return ctx.Err()
	}

	isPosted, err := f.postedChecker(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to load posted uploads: %v", err)
		return ctx.Err()
	}

	// Каналы опрашиваем параллельно, чтобы медленный или сломанный канал не тормозил остальные.
	// Состояние у каждой горутины свое, общий только сет опубликованных, который мы только читаем
	var wg sync.WaitGroup

	for _, channel := range channels {
		wg.Add(1)

		src := source.ForChannel(channel, f.pages, f.extractor)

		go func(src Source) {
			defer wg.Done()

			upload, err := src.Latest(ctx)
			if err != nil {
				log.Printf("[ERROR] failed to fetch latest upload for %s: %v", src.Channel().URL, err)
				return
			}

			if err := f.processUpload(ctx, src.Channel(), upload, isPosted); err != nil {
				log.Printf("[ERROR] failed to process upload for %s: %v", src.Channel().URL, err)
				return
			}
		}(src)
	}

	wg.Wait()

	return ctx.Err()
}

func (f *Fetcher) processUpload(ctx context.Context, channel model.Channel, upload model.Upload, isPosted func(string) bool) error {
	if f.uploadShouldBeSkipped(upload) {
		log.Printf("upload %s skipped by filter keywords", upload.URL)
		return nil
	}

	if isPosted(upload.URL) {
		return nil
	}

	if err := f.notifier.NotifyUpload(ctx, channel, upload); err != nil {
		return err
	}

	log.Printf("sent update for %s", channel.URL)

	if f.posted == nil {
		return nil
	}

	return f.posted.MarkPosted(ctx, channel, upload)
}

// Урлы уже опубликованных видео грузим один раз на тик и складываем в сет,
// чтобы горутины каналов проверяли их без походов в БД
func (f *Fetcher) postedChecker(ctx context.Context) (func(string) bool, error) {
	if f.posted == nil {
		return func(string) bool { return false }, nil
	}

	urls, err := f.posted.PostedURLs(ctx)
	if err != nil {
		return nil, err
	}

	posted := set.New(urls...)

	return posted.Contains, nil
}

func (f *Fetcher) uploadShouldBeSkipped(upload model.Upload) bool {
	title := strings.ToLower(upload.Title)

	for _, keyword := range f.filterKeywords {
		if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
