package models

import (
	"crypto/sha256"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxContentRunes = 280
	unknownSource   = "unknown"
	removedTitle    = "[Removed]"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Форматы дат, встречающиеся у поставщиков.
var publishLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"20060102T150405",
}

// Normalize приводит сырую статью к общему виду.
// Второе значение false означает, что статью нужно отбросить (пустой или удалённый заголовок).
// Неразбираемая дата заменяется на fetchedAt.
func Normalize(raw RawArticle, provenance string, fetchedAt time.Time) (Article, bool) {
	title := cleanText(raw.Title)
	if title == "" || title == removedTitle {
		return Article{}, false
	}

	content := cleanText(raw.Description)
	if content == "" {
		content = cleanText(raw.Content)
	}
	if content == "" {
		content = title
	}

	source := strings.TrimSpace(raw.SourceName)
	if source == "" {
		source = unknownSource
	}

	published, ok := ParsePublishTime(raw.PublishedAt)
	if !ok {
		published = fetchedAt
	}

	link := strings.TrimSpace(raw.URL)
	if link == "" {
		link = articleID(provenance, title)
	}

	return Article{
		Title:       title,
		Source:      source,
		Platform:    raw.Platform,
		PublishTime: published.UTC(),
		Content:     truncate(content, maxContentRunes),
		URL:         link,
		Provenance:  provenance,
	}, true
}

// articleID - замена адреса для статьи без ссылки: поставщик и хеш заголовка.
func articleID(provenance, title string) string {
	sum := sha256.Sum256([]byte(title))
	return fmt.Sprintf("%s:%x", provenance, sum[:8])
}

// ParsePublishTime перебирает известные форматы дат.
func ParsePublishTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range publishLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cleanText(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
