package models

import "time"

// Статусы завершения запроса к поставщику.
const (
	StatusOK      = "ok"
	StatusEmpty   = "empty"
	StatusFailed  = "failed"
	StatusTimeout = "timeout"
)

// ProviderOutcome описывает, чем закончился запрос к одному поставщику.
type ProviderOutcome struct {
	Name     string
	Status   string
	Count    int
	Err      string
	Duration time.Duration
}

// AggregateResult - итог агрегации по одному ключевому слову.
type AggregateResult struct {
	Keyword     string
	Articles    []Article
	Source      string
	Total       int
	Note        string
	Fallback    bool
	Providers   []ProviderOutcome
	GeneratedAt time.Time
}

// SentimentCounts считает статьи по тональности.
func (r *AggregateResult) SentimentCounts() map[Sentiment]int {
	counts := map[Sentiment]int{Positive: 0, Negative: 0, Neutral: 0}
	for _, a := range r.Articles {
		counts[a.Sentiment]++
	}
	return counts
}
