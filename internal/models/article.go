package models

import (
	"time"
)

// Sentiment - тональность публикации.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Valid сообщает, входит ли значение в допустимый набор.
func (s Sentiment) Valid() bool {
	switch s {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// ProvenanceSynthetic помечает статьи, созданные генератором-заглушкой.
const ProvenanceSynthetic = "synthetic"

// Article - нормализованная публикация, общая для всех поставщиков.
// После создания меняются только Sentiment и RelevanceScore.
type Article struct {
	Title          string
	Source         string
	Platform       string
	PublishTime    time.Time
	Sentiment      Sentiment
	Content        string
	URL            string
	RelevanceScore int
	Provenance     string
}

// Synthetic сообщает, что статья создана генератором, а не получена от поставщика.
func (a Article) Synthetic() bool {
	return a.Provenance == ProvenanceSynthetic
}

// RawArticle - статья в форме, близкой к ответу поставщика, до нормализации.
// PublishedAt хранится строкой: у каждого API свой формат даты.
type RawArticle struct {
	Title       string
	Description string
	Content     string
	URL         string
	SourceName  string
	PublishedAt string
	Platform    string
}

// KeywordQuery - один поисковый запрос.
type KeywordQuery struct {
	Keyword string
}
