package source

import (
	"context"
	"strings"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

// Путь атом фида канала, например https://www.youtube.com/feeds/videos.xml?channel_id=UC...
const feedPath = "/feeds/videos.xml"

type PageFetcher interface {
	Fetch(ctx context.Context, channel model.Channel) (model.Document, error)
}

// Источник, который умеет отдавать последнее видео своего канала
type Source interface {
	Channel() model.Channel
	Latest(ctx context.Context) (model.Upload, error)
}

// Выбираем реализацию по урлу: фид читаем как RSS, все остальное как страницу канала
func ForChannel(channel model.Channel, fetcher PageFetcher, extractor youtube.Extractor) Source {
	if strings.Contains(channel.URL, feedPath) {
		return NewFeedSource(channel)
	}

	return NewPageSource(channel, fetcher, extractor)
}

// Страница канала: один запрос и разбор регулярками
type PageSource struct {
	channel   model.Channel
	fetcher   PageFetcher
	extractor youtube.Extractor
}

func NewPageSource(channel model.Channel, fetcher PageFetcher, extractor youtube.Extractor) PageSource {
	return PageSource{
		channel:   channel,
		fetcher:   fetcher,
		extractor: extractor,
	}
}

func (s PageSource) Latest(ctx context.Context) (model.Upload, error) {
	doc, err := s.fetcher.Fetch(ctx, s.channel)
	if err != nil {
		return model.Upload{}, err
	}

	return s.extractor.Extract(doc)
}

func (s PageSource) Channel() model.Channel {
	return s.channel
}
