package fetcher

import (
	"context"
	"strings"
	"time"

	"media_monitor/internal/models"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type marketNewsFunc func(ctx context.Context, category string) ([]finnhub.MarketNews, error)

// FinnhubClient берёт ленту рыночных новостей Finnhub и фильтрует её по ключевому слову:
// полнотекстового поиска у этого API нет.
type FinnhubClient struct {
	news     marketNewsFunc
	category string
	timeout  time.Duration
}

func NewFinnhubClient(apiKey string, opts Options) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = userAgent
	api := finnhub.NewAPIClient(cfg).DefaultApi

	opts = opts.withDefaults()
	return &FinnhubClient{
		category: "general",
		timeout:  opts.Timeout,
		news: func(ctx context.Context, category string) ([]finnhub.MarketNews, error) {
			res, _, err := api.MarketNews(ctx).Category(category).Execute()
			return res, err
		},
	}
}

func (c *FinnhubClient) Name() string { return "finnhub" }

func (c *FinnhubClient) Platform() string { return "finance portal" }

func (c *FinnhubClient) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.news(ctx, c.category)
	if err != nil {
		return nil, err
	}

	kw := strings.ToLower(keyword)
	var articles []models.RawArticle
	for _, n := range res {
		headline, summary := deref(n.Headline), deref(n.Summary)
		if !strings.Contains(strings.ToLower(headline+" "+summary), kw) {
			continue
		}

		a := models.RawArticle{
			Title:       headline,
			Description: summary,
			URL:         deref(n.Url),
			SourceName:  deref(n.Source),
			Platform:    c.Platform(),
		}
		if n.Datetime != nil {
			a.PublishedAt = time.Unix(*n.Datetime, 0).UTC().Format(time.RFC3339)
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
