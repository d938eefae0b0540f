package sheets

import (
	"context"
	"log"
	"strings"
	"time"
)

const cellSeparator = " | "

type RowReader interface {
	Rows(ctx context.Context) ([][]string, error)
}

type TextSender interface {
	SendText(ctx context.Context, text string) error
}

// Пересылает строки таблицы в чат, по сообщению на строку
type Relay struct {
	reader   RowReader
	sender   TextSender
	interval time.Duration
}

func NewRelay(reader RowReader, sender TextSender, interval time.Duration) *Relay {
	return &Relay{
		reader:   reader,
		sender:   sender,
		interval: interval,
	}
}

func (r *Relay) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Relay(ctx)

	for {
		select {
		case <-ticker.C:
			r.Relay(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Relay) Relay(ctx context.Context) {
	rows, err := r.reader.Rows(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to read google sheets: %v", err)
		return
	}

	if len(rows) == 0 {
		log.Println("no data found in google sheets")
		return
	}

	for _, row := range rows {
		text := FormatRow(row)
		// Телеграм не принимает пустые сообщения
		if strings.TrimSpace(text) == "" {
			continue
		}

		if err := r.sender.SendText(ctx, text); err != nil {
			log.Printf("[ERROR] failed to send sheet row: %v", err)
			continue
		}
	}

	log.Println("google sheets rows sent")
}

func FormatRow(row []string) string {
	return strings.Join(row, cellSeparator)
}
