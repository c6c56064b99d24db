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

// domainQualifier сужает поиск до отраслевых публикаций.
const domainQualifier = "(biotech OR pharmaceutical OR clinical)"

// NewsAPIClient ищет через /v2/everything.
type NewsAPIClient struct {
	apiKey    string
	baseURL   string
	languages []string
	pageSize  int
	opts      Options
}

func NewNewsAPIClient(cfg config.ProviderConfig, opts Options) *NewsAPIClient {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &NewsAPIClient{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		languages: cfg.Languages,
		pageSize:  pageSize,
		opts:      opts.withDefaults(),
	}
}

func (c *NewsAPIClient) Name() string { return "newsapi" }

func (c *NewsAPIClient) Platform() string { return "news" }

// Search выполняет точный поиск на каждом языке и один отраслевой запрос без фильтра языка.
func (c *NewsAPIClient) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
	exact := `"` + keyword + `"`

	var queries []subquery
	for _, lang := range c.languages {
		lang := lang
		queries = append(queries, subquery{
			label: "exact:" + lang,
			run:   func(ctx context.Context) ([]models.RawArticle, error) { return c.query(ctx, exact, lang) },
		})
	}
	if len(c.languages) == 0 {
		queries = append(queries, subquery{
			label: "exact",
			run:   func(ctx context.Context) ([]models.RawArticle, error) { return c.query(ctx, exact, "") },
		})
	}
	domain := keyword + " AND " + domainQualifier
	queries = append(queries, subquery{
		label: "domain",
		run:   func(ctx context.Context) ([]models.RawArticle, error) { return c.query(ctx, domain, "") },
	})

	return runSubqueries(ctx, c.Name(), c.opts.Interval, queries)
}

func (c *NewsAPIClient) query(ctx context.Context, q, lang string) ([]models.RawArticle, error) {
	params := url.Values{}
	params.Set("q", q)
	if lang != "" {
		params.Set("language", lang)
	}
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	params.Set("apiKey", c.apiKey)

	var raw newsAPIResponse
	if err := fetchJSON(ctx, c.opts.Client, c.baseURL+"/v2/everything?"+params.Encode(), c.opts.Timeout, &raw); err != nil {
		return nil, fmt.Errorf("newsapi search: %w", err)
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("%w: newsapi %s: %s", ErrProvider, raw.Code, raw.Message)
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

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source      newsAPISource `json:"source"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Content     string        `json:"content"`
}

type newsAPISource struct {
	Name string `json:"name"`
}
