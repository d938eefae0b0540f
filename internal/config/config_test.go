package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SQB_TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("SQB_TELEGRAM_CHANNEL_ID", "-100123")

	var cfg Config
	require.NoError(t, Load(&cfg, []string{filepath.Join(t.TempDir(), "missing.hcl")}))

	assert.Equal(t, "token", cfg.TelegramBotToken)
	assert.Equal(t, int64(-100123), cfg.TelegramChannelID)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, "youtube_list.txt", cfg.ChannelsFile)
	assert.Equal(t, time.Hour, cfg.FetchInterval)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.NotifyOnlyNew)
	assert.Equal(t, 3*time.Second, cfg.SendInterval)
	assert.Equal(t, "CheckIn Link! 🌟", cfg.CheckInMessage)
	assert.False(t, cfg.SheetsEnabled)
	assert.Equal(t, "credentials.json", cfg.GoogleCredentialsFile)
	assert.Equal(t, "token.json", cfg.GoogleTokenFile)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
telegram_bot_token = "from-file"
telegram_channel_id = -100777
channels_file = "channels.txt"
fetch_interval = "15m"
notify_only_new = false
`), 0o600))

	// Окружение важнее файла
	t.Setenv("SQB_CHANNELS_FILE", "env_channels.txt")

	var cfg Config
	require.NoError(t, Load(&cfg, []string{path}))

	assert.Equal(t, "from-file", cfg.TelegramBotToken)
	assert.Equal(t, int64(-100777), cfg.TelegramChannelID)
	assert.Equal(t, "env_channels.txt", cfg.ChannelsFile)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.False(t, cfg.NotifyOnlyNew)
}

func TestLoad_RequiredMissing(t *testing.T) {
	t.Setenv("SQB_TELEGRAM_BOT_TOKEN", "")
	t.Setenv("SQB_TELEGRAM_CHANNEL_ID", "")
	require.NoError(t, os.Unsetenv("SQB_TELEGRAM_BOT_TOKEN"))
	require.NoError(t, os.Unsetenv("SQB_TELEGRAM_CHANNEL_ID"))

	var cfg Config
	require.Error(t, Load(&cfg, []string{filepath.Join(t.TempDir(), "missing.hcl")}))
}
