package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

// Код ошибки postgres unique_violation
const uniqueViolation = "23505"

// Канал с таким урлом уже есть в таблице (url UNIQUE)
var ErrChannelExists = errors.New("channel already exists")

// Каналы, добавленные через /addchannel. Поллер читает их вместе со списком из файла,
// id отсюда пользователь видит в /listchannels и передает в /deletechannel
type ChannelPostgresStorage struct {
	db *sqlx.DB
}

func NewChannelPostgresStorage(db *sqlx.DB) *ChannelPostgresStorage {
	return &ChannelPostgresStorage{db: db}
}

// Все каналы в порядке добавления
func (s *ChannelPostgresStorage) Channels(ctx context.Context) ([]model.Channel, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var channels []dbChannel
	if err := conn.SelectContext(ctx, &channels, `SELECT id, name, url, created_at FROM channels ORDER BY id`); err != nil {
		return nil, err
	}

	return lo.Map(channels, func(channel dbChannel, _ int) model.Channel {
		return model.Channel(channel)
	}), nil
}

// Нет такого id - sql.ErrNoRows, его проверяет /deletechannel
func (s *ChannelPostgresStorage) ChannelByID(ctx context.Context, id int64) (*model.Channel, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var channel dbChannel
	if err := conn.GetContext(ctx, &channel, `SELECT id, name, url, created_at FROM channels WHERE id = $1`, id); err != nil {
		return nil, err
	}

	return (*model.Channel)(&channel), nil
}

// Возвращает id новой записи. Повторный урл дает ErrChannelExists, а не голую ошибку драйвера
func (s *ChannelPostgresStorage) Add(ctx context.Context, channel model.Channel) (int64, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = time.Now().UTC()
	}

	var id int64

	row := conn.QueryRowxContext(
		ctx,
		`INSERT INTO channels (name, url, created_at) VALUES ($1, $2, $3) RETURNING id`,
		channel.Name,
		channel.URL,
		channel.CreatedAt,
	)

	if err := row.Err(); err != nil {
		return 0, channelError(err)
	}

	if err := row.Scan(&id); err != nil {
		return 0, channelError(err)
	}

	return id, nil
}

func (s *ChannelPostgresStorage) Delete(ctx context.Context, id int64) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `DELETE FROM channels WHERE id = $1`, id); err != nil {
		return err
	}

	return nil
}

func channelError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrChannelExists
	}

	return err
}

// Внутренняя модель для мапинга на колонки таблицы
type dbChannel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
