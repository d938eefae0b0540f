package storage

import (
	"context"
	"errors"
	"log"

	"github.com/samber/lo"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

type ChannelProvider interface {
	Channels(ctx context.Context) ([]model.Channel, error)
}

// Склеивает каналы из нескольких провайдеров (файл + БД).
// Если один и тот же урл есть в двух местах, оставляем первый.
// Упавший провайдер не обнуляет остальных: ошибку логируем и берем то, что вернули другие.
// Ошибку отдаем, только если упали все
type MultiChannelProvider struct {
	providers []ChannelProvider
}

func NewMultiChannelProvider(providers ...ChannelProvider) *MultiChannelProvider {
	return &MultiChannelProvider{providers: providers}
}

func (p *MultiChannelProvider) Channels(ctx context.Context) ([]model.Channel, error) {
	var (
		all  []model.Channel
		errs []error
	)

	for _, provider := range p.providers {
		channels, err := provider.Channels(ctx)
		if err != nil {
			log.Printf("[ERROR] failed to load channels from %T: %v", provider, err)
			errs = append(errs, err)
			continue
		}

		all = append(all, channels...)
	}

	if len(errs) > 0 && len(errs) == len(p.providers) {
		return nil, errors.Join(errs...)
	}

	return lo.UniqBy(all, func(channel model.Channel) string {
		return channel.URL
	}), nil
}
