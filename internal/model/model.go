package model

import "time"

// Канал YouTube, который мы опрашиваем
type Channel struct {
	// Заполняется только для каналов из БД
	ID int64
	// Имя канала, для каналов из файла пустое
	Name string
	// Базовый урл канала, например https://www.youtube.com/@PewDiePie
	URL string
	// Время создания
	CreatedAt time.Time
}

// Сырой текст страницы канала, который вернул YouTube.
// Живет только в рамках одного тика и никуда не сохраняется
type Document struct {
	Channel Channel
	Body    string
}

// Последнее загруженное видео канала.
// Author и TimeAgo могут быть пустыми, если их не удалось вытащить из подписи
type Upload struct {
	Title   string
	Author  string
	TimeAgo string
	// Ссылка вида https://www.youtube.com/watch?v=<id>
	URL string
}

// Видео, о котором мы уже написали в канал
type PostedUpload struct {
	ChannelURL string
	Title      string
	URL        string
	PostedAt   time.Time
}
