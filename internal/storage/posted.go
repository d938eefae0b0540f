package storage

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

// Видео, о которых бот уже написал. Нужно, чтобы не постить одно и то же каждый тик
type PostedPostgresStorage struct {
	db *sqlx.DB
}

func NewPostedPostgresStorage(db *sqlx.DB) *PostedPostgresStorage {
	return &PostedPostgresStorage{db: db}
}

func (s *PostedPostgresStorage) PostedURLs(ctx context.Context) ([]string, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var urls []string
	if err := conn.SelectContext(ctx, &urls, `SELECT url FROM posted_uploads`); err != nil {
		return nil, err
	}

	return urls, nil
}

func (s *PostedPostgresStorage) MarkPosted(ctx context.Context, channel model.Channel, upload model.Upload) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		`INSERT INTO posted_uploads (url, channel_url, title, posted_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (url) DO NOTHING`,
		upload.URL,
		channel.URL,
		upload.Title,
		time.Now().UTC(),
	); err != nil {
		return err
	}

	return nil
}

// Вариант без БД. Переживает только до рестарта процесса
type PostedMemoryStorage struct {
	mu     sync.Mutex
	posted map[string]model.PostedUpload
}

func NewPostedMemoryStorage() *PostedMemoryStorage {
	return &PostedMemoryStorage{posted: make(map[string]model.PostedUpload)}
}

func (s *PostedMemoryStorage) PostedURLs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return lo.Keys(s.posted), nil
}

func (s *PostedMemoryStorage) MarkPosted(_ context.Context, channel model.Channel, upload model.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posted[upload.URL]; ok {
		return nil
	}

	s.posted[upload.URL] = model.PostedUpload{
		ChannelURL: channel.URL,
		Title:      upload.Title,
		URL:        upload.URL,
		PostedAt:   time.Now().UTC(),
	}

	return nil
}
