package markup

import "strings"

var (
	replacer = strings.NewReplacer(
		"\\",
		"\\\\",
		"-",
		"\\-",
		"_",
		"\\_",
		"*",
		"\\*",
		"[",
		"\\[",
		"]",
		"\\]",
		"(",
		"\\(",
		")",
		"\\)",
		"~",
		"\\~",
		"`",
		"\\`",
		">",
		"\\>",
		"#",
		"\\#",
		"+",
		"\\+",
		"=",
		"\\=",
		"|",
		"\\|",
		"{",
		"\\{",
		"}",
		"\\}",
		".",
		"\\.",
		"!",
		"\\!",
	)

	// Внутри (...) ссылки телеграм требует экранировать только ) и \
	linkReplacer = strings.NewReplacer(
		"\\",
		"\\\\",
		")",
		"\\)",
	)
)

// Функция которая делает escape спец символы markdown специально для телеграма
func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

// Escape для урла внутри [text](url)
func EscapeLinkURL(src string) string {
	return linkReplacer.Replace(src)
}
