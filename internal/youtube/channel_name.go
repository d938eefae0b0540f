package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// Достает человекочитаемое имя канала из его страницы (og:title или <title>).
// Используется только при добавлении канала через бота
type ChannelNameResolver struct {
	client *http.Client
}

func NewChannelNameResolver(timeout time.Duration) *ChannelNameResolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ChannelNameResolver{client: &http.Client{Timeout: timeout}}
}

func (r *ChannelNameResolver) ChannelName(ctx context.Context, channelURL string) (string, error) {
	pageURL, err := url.Parse(channelURL)
	if err != nil {
		return "", fmt.Errorf("parse channel url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, channelURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("parse channel page: %w", err)
	}

	name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(article.Title), "- YouTube"))
	if name == "" {
		return "", fmt.Errorf("channel page %s has no title", channelURL)
	}

	return name, nil
}

// Имя по умолчанию, если страницу разобрать не удалось: последний сегмент пути, например @PewDiePie
func FallbackChannelName(channelURL string) string {
	u, err := url.Parse(channelURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return channelURL
	}

	return path.Base(strings.TrimSuffix(u.Path, "/"))
}
