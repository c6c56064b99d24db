// Package dedupe схлопывает дубликаты статей от разных поставщиков.
package dedupe

import (
	"strings"
	"unicode"

	"media_monitor/internal/models"
)

// DefaultPrefixLen - длина префикса заголовка по умолчанию (в символах).
const DefaultPrefixLen = 20

// Deduplicator отбрасывает статьи, уже встречавшиеся раньше в списке.
//
// Первичный ключ - точное совпадение URL. Вторичный - префикс нормализованного
// заголовка (регистр и пробелы игнорируются). Префикс - эвристика, а не равенство:
// разные статьи с одинаковым началом заголовка тоже схлопнутся.
type Deduplicator struct {
	prefixLen int
}

func New(prefixLen int) *Deduplicator {
	if prefixLen < 1 {
		prefixLen = DefaultPrefixLen
	}
	return &Deduplicator{prefixLen: prefixLen}
}

// Dedupe возвращает выживших в исходном порядке: побеждает первое вхождение.
func (d *Deduplicator) Dedupe(articles []models.Article) []models.Article {
	seenURL := make(map[string]struct{}, len(articles))
	seenTitle := make(map[string]struct{}, len(articles))
	out := make([]models.Article, 0, len(articles))

	for _, a := range articles {
		if a.URL != "" {
			if _, dup := seenURL[a.URL]; dup {
				continue
			}
		}
		key := d.TitleKey(a.Title)
		if key != "" {
			if _, dup := seenTitle[key]; dup {
				continue
			}
		}

		if a.URL != "" {
			seenURL[a.URL] = struct{}{}
		}
		if key != "" {
			seenTitle[key] = struct{}{}
		}
		out = append(out, a)
	}
	return out
}

// TitleKey - первые prefixLen символов заголовка в нижнем регистре без пробелов.
func (d *Deduplicator) TitleKey(title string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(title) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
		n++
		if n == d.prefixLen {
			break
		}
	}
	return b.String()
}
