package postgres_adapter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalizeSearchText приводит текст к NFC, схлопывает пробелы и понижает регистр по-немецки
func normalizeSearchText(text string) string {
	text = norm.NFC.String(text)
	text = strings.Join(strings.Fields(text), " ")
	return cases.Lower(language.German).String(text)
}

// likePattern экранирует спецсимволы LIKE и оборачивает текст в %...%
func likePattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(text)
	return "%" + escaped + "%"
}

// displayName строит подпись из системного имени: "EVENT_SPACE" -> "Event Space"
func displayName(systemName string) string {
	words := strings.FieldsFunc(systemName, func(r rune) bool { return r == '_' || r == '-' })
	caser := cases.Title(language.German)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
