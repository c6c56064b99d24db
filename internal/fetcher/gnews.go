package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"media_monitor/internal/config"
	"media_monitor/internal/models"
)

// GNewsClient ищет через /api/v4/search, по одному запросу на язык.
type GNewsClient struct {
	apiKey    string
	baseURL   string
	languages []string
	limit     int
	opts      Options
}

func NewGNewsClient(cfg config.ProviderConfig, opts Options) *GNewsClient {
	limit := cfg.PageSize
	if limit <= 0 {
		limit = 10
	}
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &GNewsClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		languages: langs,
		limit:     limit,
		opts:      opts.withDefaults(),
	}
}

func (c *GNewsClient) Name() string { return "gnews" }

func (c *GNewsClient) Platform() string { return "news" }

func (c *GNewsClient) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
	queries := make([]subquery, 0, len(c.languages))
	for _, lang := range c.languages {
		lang := lang
		queries = append(queries, subquery{
			label: "lang:" + lang,
			run:   func(ctx context.Context) ([]models.RawArticle, error) { return c.query(ctx, keyword, lang) },
		})
	}
	return runSubqueries(ctx, c.Name(), c.opts.Interval, queries)
}

func (c *GNewsClient) query(ctx context.Context, keyword, lang string) ([]models.RawArticle, error) {
	params := url.Values{}
	params.Set("q", `"`+keyword+`"`)
	params.Set("lang", lang)
	params.Set("max", strconv.Itoa(c.limit))
	params.Set("sortby", "publishedAt")
	params.Set("apikey", c.apiKey)

	var raw gnewsResponse
	if err := fetchJSON(ctx, c.opts.Client, c.baseURL+"/api/v4/search?"+params.Encode(), c.opts.Timeout, &raw); err != nil {
		return nil, fmt.Errorf("gnews search: %w", err)
	}
	if len(raw.Errors) > 0 {
		return nil, fmt.Errorf("%w: gnews: %s", ErrProvider, strings.Join(raw.Errors, "; "))
	}

	articles := make([]models.RawArticle, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, models.RawArticle{
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			SourceName:  item.Source.Name,
			PublishedAt: item.PublishedAt,
			Platform:    c.Platform(),
		})
	}
	return articles, nil
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
	Errors        []string       `json:"errors"`
}

type gnewsArticle struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
	URL         string      `json:"url"`
	Image       string      `json:"image"`
	PublishedAt string      `json:"publishedAt"`
	Source      gnewsSource `json:"source"`
}

type gnewsSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
