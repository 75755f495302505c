package markdown

import "strings"

// stopPhrases are single lines of site chrome that survive DOM cleaning.
var stopPhrases = []string{
	"Откликнуться",
	"Показать контакты",
	"Показать на большой карте",
	"© Яндекс Условия использования",
	"Оценка Dream Job",
	"Рекомендуют работодателя",
	"Все отзывы на Dream Job",
	"Другие вакансии",
	"Похожие вакансии",
}

// skipSections are headings whose whole section is dropped.
var skipSections = []string{
	"Задайте вопрос работодателю",
	"Чему можно научиться, пока вы в поиске",
}

// finalize post-processes converted Markdown: blank lines, oversized
// technical blobs and stop-phrase lines are dropped, whole sections under
// known-irrelevant headings are skipped, and headings get a separating blank
// line.
func finalize(text string) string {
	var out []string
	inSkipSection := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Serialized translation bundles leak into the page as giant
		// JSON-ish one-liners.
		if strings.HasPrefix(line, "{") && strings.Contains(line, "trl") && len(line) > 100 {
			continue
		}
		if len(line) > 5000 {
			continue
		}

		if containsAnyFold(line, stopPhrases) {
			continue
		}
		if strings.Contains(line, "Вакансия опубликована") {
			continue
		}

		if strings.HasPrefix(line, "#") {
			heading := strings.Join(strings.Fields(strings.TrimLeft(line, "#")), " ")
			inSkipSection = containsAnyFold(heading, skipSections)
		}
		if inSkipSection {
			continue
		}

		if strings.HasPrefix(line, "#") && len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

func containsAnyFold(s string, subs []string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
