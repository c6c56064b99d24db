package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"media_monitor/internal/config"
	"media_monitor/internal/models"
)

// CurrentsClient ищет через /v1/search.
type CurrentsClient struct {
	apiKey    string
	baseURL   string
	languages []string
	opts      Options
}

func NewCurrentsClient(cfg config.ProviderConfig, opts Options) *CurrentsClient {
	langs := cfg.Languages
	if len(langs) == 0 {
		langs = []string{"en"}
	}
	return &CurrentsClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		languages: langs,
		opts:      opts.withDefaults(),
	}
}

func (c *CurrentsClient) Name() string { return "currents" }

func (c *CurrentsClient) Platform() string { return "news" }

func (c *CurrentsClient) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
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

func (c *CurrentsClient) query(ctx context.Context, keyword, lang string) ([]models.RawArticle, error) {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("language", lang)
	params.Set("apiKey", c.apiKey)

	var raw currentsResponse
	if err := fetchJSON(ctx, c.opts.Client, c.baseURL+"/v1/search?"+params.Encode(), c.opts.Timeout, &raw); err != nil {
		return nil, fmt.Errorf("currents search: %w", err)
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("%w: currents status %q", ErrProvider, raw.Status)
	}

	articles := make([]models.RawArticle, 0, len(raw.News))
	for _, item := range raw.News {
		articles = append(articles, models.RawArticle{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			SourceName:  sourceName(item.Author, item.URL),
			PublishedAt: item.Published,
			Platform:    c.Platform(),
		})
	}
	return articles, nil
}

// sourceName берёт автора, а без него - домен ссылки.
func sourceName(author, link string) string {
	if author = strings.TrimSpace(author); author != "" {
		return author
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

type currentsResponse struct {
	Status string            `json:"status"`
	News   []currentsArticle `json:"news"`
}

type currentsArticle struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Image       string   `json:"image"`
	Language    string   `json:"language"`
	Category    []string `json:"category"`
	Published   string   `json:"published"`
}
