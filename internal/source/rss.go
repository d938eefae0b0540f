package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

var ErrEmptyFeed = errors.New("feed has no items")

// Источник для атом фида канала.
// Фид отдает дату публикации, поэтому "N days ago" считаем сами
type FeedSource struct {
	channel model.Channel
	now     func() time.Time
}

func NewFeedSource(channel model.Channel) FeedSource {
	return FeedSource{
		channel: channel,
		now:     time.Now,
	}
}

func (s FeedSource) Latest(ctx context.Context) (model.Upload, error) {
	feed, err := s.loadFeed(ctx, s.channel.URL)
	if err != nil {
		return model.Upload{}, fmt.Errorf("load feed %s: %w", s.channel.URL, err)
	}

	if len(feed.Items) == 0 {
		return model.Upload{}, ErrEmptyFeed
	}

	// Порядок элементов в фиде не гарантирован, берем самый свежий по дате
	latest := lo.MaxBy(feed.Items, func(a, b *rss.Item) bool {
		return a.Date.After(b.Date)
	})

	upload := model.Upload{
		Title:  latest.Title,
		Author: feed.Title,
		URL:    latest.Link,
	}

	if !latest.Date.IsZero() {
		upload.TimeAgo = timeAgo(s.now().Sub(latest.Date))
	}

	return upload, nil
}

// rss.Fetch не принимает контекст, поэтому ждем его в отдельной горутине
func (s FeedSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.Fetch(url)
		if err != nil {
			errCh <- err
			return
		}

		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}

func (s FeedSource) Channel() model.Channel {
	return s.channel
}

var timeUnits = []struct {
	name string
	size time.Duration
}{
	{"year", 365 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
	{"second", time.Second},
}

// Формат тот же, что у подписей на странице канала: "2 days ago", "1 hour ago"
func timeAgo(d time.Duration) string {
	for _, unit := range timeUnits {
		if d < unit.size {
			continue
		}

		n := int(d / unit.size)
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit.name)
		}

		return fmt.Sprintf("%d %ss ago", n, unit.name)
	}

	return "0 seconds ago"
}
