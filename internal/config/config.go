package config

import (
	"log"
	"sync"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfighcl"
)

// Хранить в файле будем в формате hcl.
// Также указываем ключ для переменных окружения
type Config struct {
	TelegramBotToken  string `hcl:"telegram_bot_token" env:"TELEGRAM_BOT_TOKEN" required:"true"`
	TelegramChannelID int64  `hcl:"telegram_channel_id" env:"TELEGRAM_CHANNEL_ID" required:"true"`
	// Пустой DSN - работаем без БД, только со списком из файла
	DatabaseDSN  string `hcl:"database_dsn" env:"DATABASE_DSN"`
	ChannelsFile string `hcl:"channels_file" env:"CHANNELS_FILE" default:"youtube_list.txt"`

	FetchInterval  time.Duration `hcl:"fetch_interval" env:"FETCH_INTERVAL" default:"1h"`
	FetchTimeout   time.Duration `hcl:"fetch_timeout" env:"FETCH_TIMEOUT" default:"10s"`
	NotifyOnlyNew  bool          `hcl:"notify_only_new" env:"NOTIFY_ONLY_NEW" default:"true"`
	FilterKeywords []string      `hcl:"filter_keywords" env:"FILTER_KEYWORDS"`
	SendInterval   time.Duration `hcl:"send_interval" env:"SEND_INTERVAL" default:"3s"`

	CheckInInterval time.Duration `hcl:"checkin_interval" env:"CHECKIN_INTERVAL" default:"1h"`
	CheckInMessage  string        `hcl:"checkin_message" env:"CHECKIN_MESSAGE" default:"CheckIn Link! 🌟"`

	SheetsEnabled         bool          `hcl:"sheets_enabled" env:"SHEETS_ENABLED" default:"false"`
	SheetsInterval        time.Duration `hcl:"sheets_interval" env:"SHEETS_INTERVAL" default:"1h"`
	SpreadsheetID         string        `hcl:"spreadsheet_id" env:"SPREADSHEET_ID"`
	SheetsRange           string        `hcl:"sheets_range" env:"SHEETS_RANGE" default:"Sheet1!A1:E"`
	GoogleCredentialsFile string        `hcl:"google_credentials_file" env:"GOOGLE_CREDENTIALS_FILE" default:"credentials.json"`
	GoogleTokenFile       string        `hcl:"google_token_file" env:"GOOGLE_TOKEN_FILE" default:"token.json"`

	OpenAIKey   string `hcl:"openai_key" env:"OPENAI_KEY"`
	OpenAIPromt string `hcl:"openai_promt" env:"OPENAI_PROMT"`
}

// cfg - инстанс конфига, в который читаем данные.
// once гарантирует, что загрузка выполнится не более одного раза, сколько бы мест ни звали Get
var (
	cfg  Config
	once sync.Once
)

// Get возвращает конфиг, при первом вызове загружает его
func Get() Config {
	once.Do(func() {
		if err := Load(&cfg, []string{"./config.hcl", "./config.local.hcl"}); err != nil {
			log.Printf("[ERROR] failed to load config: %v", err)
		}
	})

	return cfg
}

// Load читает конфиг из файлов и переменных окружения с префиксом SQB_
func Load(dst *Config, files []string) error {
	loader := aconfig.LoaderFor(dst, aconfig.Config{
		EnvPrefix: "SQB",
		// Флаги не используем, только файлы и окружение
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".hcl": aconfighcl.New(),
		},
	})

	return loader.Load()
}
