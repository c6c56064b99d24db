package server

import (
	"time"

	"media_monitor/internal/models"
)

type SearchRequest struct {
	Keyword string `json:"keyword"`
}

type ArticleResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	Platform    string `json:"platform"`
	PublishTime string `json:"publishTime"`
	Sentiment   string `json:"sentiment"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Provenance  string `json:"provenance"`
}

type ProviderResponse struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type SearchResponse struct {
	Keyword   string             `json:"keyword"`
	Results   []ArticleResponse  `json:"results"`
	Source    string             `json:"source"`
	Total     int                `json:"total"`
	Note      string             `json:"note,omitempty"`
	Fallback  bool               `json:"fallback"`
	Providers []ProviderResponse `json:"providers"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Providers int    `json:"providers"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewSearchResponse переводит результат агрегации в форму ответа API.
// Идентификаторы статей - позиция в выдаче, начиная с 1.
func NewSearchResponse(res *models.AggregateResult) SearchResponse {
	out := SearchResponse{
		Keyword:   res.Keyword,
		Results:   make([]ArticleResponse, 0, len(res.Articles)),
		Source:    res.Source,
		Total:     res.Total,
		Note:      res.Note,
		Fallback:  res.Fallback,
		Providers: make([]ProviderResponse, 0, len(res.Providers)),
	}
	for i, a := range res.Articles {
		out.Results = append(out.Results, ArticleResponse{
			ID:          i + 1,
			Title:       a.Title,
			Source:      a.Source,
			Platform:    a.Platform,
			PublishTime: a.PublishTime.UTC().Format(time.RFC3339),
			Sentiment:   string(a.Sentiment),
			Content:     a.Content,
			URL:         a.URL,
			Provenance:  a.Provenance,
		})
	}
	for _, p := range res.Providers {
		out.Providers = append(out.Providers, ProviderResponse{
			Name:       p.Name,
			Status:     p.Status,
			Count:      p.Count,
			Error:      p.Err,
			DurationMs: p.Duration.Milliseconds(),
		})
	}
	return out
}
