package summary

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
)

const defaultPromt = "\n\nWrite one short, friendly sentence inviting people to watch this YouTube video. Do not use links."

// Генерит короткую подводку к новому видео по его заголовку и автору.
// Без ключа выключен и всегда возвращает пустую строку
type OpenAISummarizer struct {
	client *openai.Client
	promt  string
	// Флаг вкл/выкл summarizer
	enabled bool
	mu      sync.Mutex
}

func NewOpenAISummarizer(apiKey string, promt string) *OpenAISummarizer {
	if promt == "" {
		promt = defaultPromt
	}

	s := &OpenAISummarizer{
		client: openai.NewClient(apiKey),
		promt:  promt,
	}

	log.Printf("openai summarizer enabled: %v", apiKey != "")

	if apiKey != "" {
		s.enabled = true
	}

	return s
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	// Каналы опрашиваются параллельно, а запросы в openai шлем по одному
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return "", nil
	}

	request := openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("%s%s", text, s.promt),
			},
		},
		MaxTokens:   128,
		Temperature: 0.7,
		TopP:        1,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return trimToSentence(resp.Choices[0].Message.Content), nil
}

// Модель может оборвать ответ на середине предложения по MaxTokens.
// Оставляем только законченные предложения
func trimToSentence(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, ".") {
		return raw
	}

	sentences := strings.Split(raw, ".")
	if len(sentences) == 1 {
		return raw
	}

	return strings.Join(sentences[:len(sentences)-1], ".") + "."
}
