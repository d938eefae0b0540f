package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Читает значения диапазона из гугл таблицы
type Reader struct {
	service       *gsheets.Service
	spreadsheetID string
	readRange     string
}

// credentialsFile это client secret OAuth приложения, tokenFile это уже полученный токен пользователя.
// Получение токена живет вне бота, здесь мы его только читаем, а обновляет его oauth2
func NewReader(ctx context.Context, credentialsFile, tokenFile, spreadsheetID, readRange string) (*Reader, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read google credentials: %w", err)
	}

	cfg, err := google.ConfigFromJSON(secret, gsheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse google credentials: %w", err)
	}

	token, err := tokenFromFile(tokenFile)
	if err != nil {
		return nil, err
	}

	return NewReaderFromClient(ctx, cfg.Client(ctx, token), spreadsheetID, readRange)
}

func NewReaderFromClient(ctx context.Context, client *http.Client, spreadsheetID, readRange string, opts ...option.ClientOption) (*Reader, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Reader{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}, nil
}

// Каждую ячейку приводим к строке, таблица может отдавать числа и булевы значения
func (r *Reader) Rows(ctx context.Context) ([][]string, error) {
	resp, err := r.service.Spreadsheets.Values.Get(r.spreadsheetID, r.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values %s: %w", r.readRange, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, values := range resp.Values {
		row := make([]string, 0, len(values))
		for _, v := range values {
			row = append(row, fmt.Sprint(v))
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open google token: %w", err)
	}
	defer f.Close()

	var token oauth2.Token
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, fmt.Errorf("decode google token: %w", err)
	}

	return &token, nil
}
