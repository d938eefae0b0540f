package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
	"github.com/kovalyov-valentin/squarie-bot/internal/youtube"
)

type fakeFetcher struct {
	body string
	err  error

	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, channel model.Channel) (model.Document, error) {
	f.calls++
	if f.err != nil {
		return model.Document{}, f.err
	}

	return model.Document{Channel: channel, Body: f.body}, nil
}

func TestPageSource_Latest(t *testing.T) {
	channel := model.Channel{URL: "https://www.youtube.com/user/testchannel"}
	fetcher := &fakeFetcher{body: `{"label":"Amazing Video by CodeMaster 2 days ago"} "videoId":"xyz987abc"`}

	got, err := NewPageSource(channel, fetcher, youtube.NewLabelExtractor()).Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.Upload{
		Title:   "Amazing Video",
		Author:  "CodeMaster",
		TimeAgo: "2 days ago",
		URL:     "https://www.youtube.com/watch?v=xyz987abc",
	}, got)
}

type spyExtractor struct {
	called bool
}

func (e *spyExtractor) Extract(model.Document) (model.Upload, error) {
	e.called = true
	return model.Upload{}, nil
}

func TestPageSource_Latest_FetchErrorSkipsExtract(t *testing.T) {
	fetchErr := &youtube.FetchError{URL: "https://example.com/videos", Cause: "unexpected status 404 Not Found"}
	extractor := &spyExtractor{}

	_, err := NewPageSource(model.Channel{URL: "https://example.com"}, &fakeFetcher{err: fetchErr}, extractor).
		Latest(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, fetchErr))
	assert.False(t, extractor.called)
}

func TestForChannel(t *testing.T) {
	fetcher := &fakeFetcher{}
	extractor := youtube.NewLabelExtractor()

	page := ForChannel(model.Channel{URL: "https://www.youtube.com/@PewDiePie"}, fetcher, extractor)
	assert.IsType(t, PageSource{}, page)

	feed := ForChannel(model.Channel{URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UC123"}, fetcher, extractor)
	assert.IsType(t, FeedSource{}, feed)
}

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
 <title>CodeMaster</title>
 <entry>
  <id>yt:video:old</id>
  <title>Older Video</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=old"/>
  <published>2026-10-01T10:00:00+00:00</published>
  <updated>2026-10-01T10:00:00+00:00</updated>
 </entry>
 <entry>
  <id>yt:video:new</id>
  <title>Amazing Video</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=new"/>
  <published>2026-10-14T10:00:00+00:00</published>
  <updated>2026-10-14T10:00:00+00:00</updated>
 </entry>
</feed>`

func TestFeedSource_Latest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomFeed))
	}))
	defer srv.Close()

	s := NewFeedSource(model.Channel{URL: srv.URL + feedPath + "?channel_id=UC123"})
	s.now = func() time.Time {
		return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	}

	got, err := s.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Amazing Video", got.Title)
	assert.Equal(t, "CodeMaster", got.Author)
	assert.Equal(t, "https://www.youtube.com/watch?v=new", got.URL)
	assert.Equal(t, "2 days ago", got.TimeAgo)
}

func TestFeedSource_Latest_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFeedSource(model.Channel{URL: srv.URL}).Latest(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 seconds ago"},
		{30 * time.Second, "30 seconds ago"},
		{time.Minute, "1 minute ago"},
		{90 * time.Minute, "1 hour ago"},
		{49 * time.Hour, "2 days ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
		{400 * 24 * time.Hour, "1 year ago"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, timeAgo(tt.d))
		})
	}
}
