package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

func writeChannelsFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "youtube_list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestChannelFileStorage_Channels(t *testing.T) {
	path := writeChannelsFile(t, "https://www.youtube.com/user/PewDiePie\n\n   \n  https://www.youtube.com/@MrBeast  \r\nhttps://www.youtube.com/@veritasium")

	channels, err := NewChannelFileStorage(path).Channels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Channel{
		{URL: "https://www.youtube.com/user/PewDiePie"},
		{URL: "https://www.youtube.com/@MrBeast"},
		{URL: "https://www.youtube.com/@veritasium"},
	}, channels)
}

func TestChannelFileStorage_Channels_Empty(t *testing.T) {
	path := writeChannelsFile(t, "\n\n")

	channels, err := NewChannelFileStorage(path).Channels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, channels)
}

func TestChannelFileStorage_Channels_MissingFile(t *testing.T) {
	_, err := NewChannelFileStorage(filepath.Join(t.TempDir(), "nope.txt")).Channels(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type staticProvider struct {
	channels []model.Channel
	err      error
}

func (p staticProvider) Channels(context.Context) ([]model.Channel, error) {
	return p.channels, p.err
}

func TestMultiChannelProvider_Channels(t *testing.T) {
	file := staticProvider{channels: []model.Channel{
		{URL: "https://www.youtube.com/@a"},
		{URL: "https://www.youtube.com/@b"},
	}}
	db := staticProvider{channels: []model.Channel{
		{ID: 1, Name: "B from db", URL: "https://www.youtube.com/@b"},
		{ID: 2, Name: "C", URL: "https://www.youtube.com/@c"},
	}}

	channels, err := NewMultiChannelProvider(file, db).Channels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []model.Channel{
		{URL: "https://www.youtube.com/@a"},
		{URL: "https://www.youtube.com/@b"},
		{ID: 2, Name: "C", URL: "https://www.youtube.com/@c"},
	}, channels)
}

func TestMultiChannelProvider_Channels_Error(t *testing.T) {
	var (
		boom  = errors.New("boom")
		crash = errors.New("crash")
	)

	_, err := NewMultiChannelProvider(staticProvider{err: boom}, staticProvider{err: crash}).Channels(context.Background())
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, crash)
}

func TestMultiChannelProvider_Channels_MissingFileKeepsDB(t *testing.T) {
	var (
		file = NewChannelFileStorage(filepath.Join(t.TempDir(), "missing.txt"))
		db   = staticProvider{channels: []model.Channel{{ID: 1, Name: "C", URL: "https://www.youtube.com/@c"}}}
	)

	channels, err := NewMultiChannelProvider(file, db).Channels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Channel{{ID: 1, Name: "C", URL: "https://www.youtube.com/@c"}}, channels)
}

func TestPostedMemoryStorage(t *testing.T) {
	s := NewPostedMemoryStorage()
	ctx := context.Background()

	urls, err := s.PostedURLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, urls)

	channel := model.Channel{URL: "https://www.youtube.com/@a"}
	upload := model.Upload{Title: "Amazing Video", URL: "https://www.youtube.com/watch?v=xyz987abc"}

	require.NoError(t, s.MarkPosted(ctx, channel, upload))
	require.NoError(t, s.MarkPosted(ctx, channel, upload))

	urls, err = s.PostedURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=xyz987abc"}, urls)
}

func TestChannelError(t *testing.T) {
	boom := errors.New("boom")

	assert.ErrorIs(t, channelError(&pq.Error{Code: "23505", Message: "duplicate key value"}), ErrChannelExists)
	assert.ErrorIs(t, channelError(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})), ErrChannelExists)
	assert.Equal(t, boom, channelError(boom))

	fk := &pq.Error{Code: "23503"}
	assert.Equal(t, error(fk), channelError(fk))
}
