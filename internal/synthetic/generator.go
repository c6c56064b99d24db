// Package synthetic генерирует правдоподобные статьи-заглушки,
// когда ни один поставщик не вернул данных.
package synthetic

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"media_monitor/internal/models"

	"github.com/google/uuid"
)

// DefaultWindow - окно, в котором разбрасываются даты публикации.
const DefaultWindow = 168 * time.Hour

// Generator безопасен для одновременного использования.
type Generator struct {
	window time.Duration
	now    func() time.Time
	seq    atomic.Uint64
}

func New(window time.Duration) *Generator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Generator{window: window, now: time.Now}
}

// WithClock подменяет источник текущего времени.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate всегда возвращает хотя бы одну статью. Тональность берётся из шаблона,
// Provenance всегда models.ProvenanceSynthetic.
func (g *Generator) Generate(keyword string) []models.Article {
	keyword = strings.TrimSpace(keyword)
	templates := templatesFor(keyword)
	now := g.now()

	out := make([]models.Article, 0, len(templates))
	for _, t := range templates {
		seq := g.seq.Add(1)
		out = append(out, models.Article{
			Title:       fill(t.title, keyword),
			Source:      t.source,
			Platform:    t.platform,
			PublishTime: now.Add(-time.Duration(rand.Int63n(int64(g.window)))).UTC(),
			Sentiment:   t.sentiment,
			Content:     fill(t.content, keyword),
			URL:         g.articleURL(t.baseURL, keyword, seq),
			Provenance:  models.ProvenanceSynthetic,
		})
	}
	return out
}

// articleURL строит уникальный адрес: ключевое слово, порядковый номер генератора и случайный токен.
func (g *Generator) articleURL(base, keyword string, seq uint64) string {
	slug := url.PathEscape(strings.ToLower(strings.Join(strings.Fields(keyword), "-")))
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s/news/%s-%d-%s", base, slug, seq, token)
}

func templatesFor(keyword string) []template {
	if t, ok := knownTemplates[strings.ToLower(keyword)]; ok {
		return t
	}
	if hasHan(keyword) {
		return genericTemplatesZH
	}
	return genericTemplates
}

func fill(format, keyword string) string {
	if !strings.Contains(format, "%s") {
		return format
	}
	return fmt.Sprintf(format, keyword)
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
