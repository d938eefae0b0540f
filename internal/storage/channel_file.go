package storage

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

// Список каналов из текстового файла: по одному урлу на строку, пустые строки пропускаем.
// Файл перечитывается на каждом тике, чтобы правки подхватывались без рестарта
type ChannelFileStorage struct {
	path string
}

func NewChannelFileStorage(path string) *ChannelFileStorage {
	return &ChannelFileStorage{path: path}
}

func (s *ChannelFileStorage) Channels(_ context.Context) ([]model.Channel, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open channels file: %w", err)
	}
	defer f.Close()

	var channels []model.Channel

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		url := strings.TrimSpace(scanner.Text())
		if url == "" {
			continue
		}

		channels = append(channels, model.Channel{URL: url})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read channels file: %w", err)
	}

	return channels, nil
}
