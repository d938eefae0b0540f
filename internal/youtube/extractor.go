package youtube

import (
	"errors"
	"regexp"
	"strings"

	"github.com/kovalyov-valentin/squarie-bot/internal/model"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Ни подписи, ни id видео в документе не нашлось. Скорее всего YouTube поменял разметку
var ErrPatternNotFound = errors.New("upload pattern not found")

// Стратегия разбора страницы канала.
// Когда YouTube поменяет формат, меняется только реализация этого интерфейса
type Extractor interface {
	Extract(doc model.Document) (model.Upload, error)
}

// Регулярки вместо json парсера: страница это не валидный json, а схема недокументирована.
// Классы юникодные: [\p{L}\p{N}_] вместо \w, \p{Nd} вместо \d, \s дополнен \p{Z} (неразрывный пробел и т.п.)
var (
	labelRe   = regexp.MustCompile(`\{"label":"(.*?)"\}`)
	videoIDRe = regexp.MustCompile(`"videoId":"(.*?)"`)
	// Автор матчится, только если после него идет цифра из "2 days ago".
	// Без цифры автор остается пустым
	authorRe  = regexp.MustCompile(`by ([\p{L}\p{N}_\s\p{Z}]+?) \p{Nd}`)
	timeAgoRe = regexp.MustCompile(`\p{Nd}+ [\p{L}\p{N}_]+ ago`)
)

// Достает последнее видео из первой подписи вида "<title> by <author> 2 days ago"
// и первого "videoId" на странице
type LabelExtractor struct{}

func NewLabelExtractor() LabelExtractor {
	return LabelExtractor{}
}

func (LabelExtractor) Extract(doc model.Document) (model.Upload, error) {
	label := labelRe.FindStringSubmatch(doc.Body)
	if label == nil {
		return model.Upload{}, ErrPatternNotFound
	}

	videoID := videoIDRe.FindStringSubmatch(doc.Body)
	if videoID == nil {
		return model.Upload{}, ErrPatternNotFound
	}

	info := label[1]

	// Если " by " нет, то вся подпись и есть заголовок
	title, _, _ := strings.Cut(info, " by ")

	var author string
	if m := authorRe.FindStringSubmatch(info); m != nil {
		author = strings.TrimSpace(m[1])
	}

	return model.Upload{
		Title:   title,
		Author:  author,
		TimeAgo: timeAgoRe.FindString(info),
		URL:     watchURLPrefix + videoID[1],
	}, nil
}
