package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

// Суффикс страницы со списком видео канала
const videosPath = "/videos"

const DefaultTimeout = 10 * time.Second

// Ошибка загрузки страницы. Сюда схлопываются и сетевые ошибки, и не 2xx статусы
type FetchError struct {
	URL   string
	Cause string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Cause)
}

// Делает ровно один GET запрос на страницу канала. Никаких ретраев и кэша
type PageFetcher struct {
	client *http.Client
}

// Если timeout нулевой, используем DefaultTimeout
func NewPageFetcher(timeout time.Duration) *PageFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &PageFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (f *PageFetcher) Fetch(ctx context.Context, channel model.Channel) (model.Document, error) {
	url := channel.URL + videosPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.Document{}, &FetchError{URL: url, Cause: err.Error()}
	}
	// Без этого заголовка YouTube может отдать подписи на другом языке и "ago" не найдется
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return model.Document{}, &FetchError{URL: url, Cause: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Document{}, &FetchError{URL: url, Cause: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Document{}, &FetchError{URL: url, Cause: err.Error()}
	}

	return model.Document{Channel: channel, Body: string(body)}, nil
}
