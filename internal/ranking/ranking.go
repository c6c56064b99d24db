// Package ranking упорядочивает статьи по составной оценке релевантности.
package ranking

import (
	"sort"
	"strings"
	"time"

	"media_monitor/internal/models"
)

const (
	titleMatchScore   = 10
	contentMatchScore = 5
	domainHitScore    = 2
	freshScore        = 3
	recentScore       = 1

	freshWindow  = 24 * time.Hour
	recentWindow = 72 * time.Hour
)

// DomainVocabulary - отраслевые термины, дающие бонус даже без повтора ключевого слова.
var DomainVocabulary = []string{
	"biotech", "clinical", "drug", "regulatory", "fda", "trial",
	"pharma", "therapy", "approval", "antibody", "oncology",
	"生物", "临床", "药", "审批", "监管", "适应症", "单抗",
}

// DefaultPlatformWeights - доверие к площадкам по умолчанию.
var DefaultPlatformWeights = map[string]int{
	"government":     4,
	"news":           3,
	"finance portal": 2,
	"industry media": 2,
	"social media":   1,
}

// Ranker считает оценку и сортирует статьи по убыванию.
type Ranker struct {
	weights map[string]int
	now     func() time.Time
}

// New создаёт Ranker с таблицей весов площадок; nil означает DefaultPlatformWeights.
func New(weights map[string]int) *Ranker {
	if weights == nil {
		weights = DefaultPlatformWeights
	}
	return &Ranker{weights: weights, now: time.Now}
}

// WithClock подменяет источник текущего времени.
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.now = now
	return r
}

// Score - составная оценка: ключевое слово в заголовке и тексте, отраслевые термины,
// вес площадки и свежесть публикации.
func (r *Ranker) Score(a models.Article, keyword string, now time.Time) int {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	title := strings.ToLower(a.Title)
	content := strings.ToLower(a.Content)

	score := 0
	if kw != "" && strings.Contains(title, kw) {
		score += titleMatchScore
	}
	if kw != "" && strings.Contains(content, kw) {
		score += contentMatchScore
	}

	text := title + " " + content
	for _, term := range DomainVocabulary {
		if strings.Contains(text, term) {
			score += domainHitScore
		}
	}

	score += r.weights[a.Platform]

	age := now.Sub(a.PublishTime)
	switch {
	case age <= freshWindow:
		score += freshScore
	case age <= recentWindow:
		score += recentScore
	}
	return score
}

// Rank проставляет RelevanceScore и возвращает новый срез, отсортированный по убыванию.
// При равной оценке сохраняется исходный порядок.
func (r *Ranker) Rank(articles []models.Article, keyword string) []models.Article {
	now := r.now()
	out := make([]models.Article, len(articles))
	for i, a := range articles {
		a.RelevanceScore = r.Score(a, keyword, now)
		out[i] = a
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}
