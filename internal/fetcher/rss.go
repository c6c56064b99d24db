package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"media_monitor/internal/config"
	"media_monitor/internal/models"

	"github.com/mmcdole/gofeed"
)

// RSSClient читает поисковую RSS-ленту в стиле Google News. Ключ API не нужен.
type RSSClient struct {
	baseURL string
	locales []string
	opts    Options
}

func NewRSSClient(cfg config.ProviderConfig, opts Options) *RSSClient {
	locales := cfg.Languages
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}
	return &RSSClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		locales: locales,
		opts:    opts.withDefaults(),
	}
}

func (c *RSSClient) Name() string { return "rss" }

func (c *RSSClient) Platform() string { return "industry media" }

func (c *RSSClient) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
	queries := make([]subquery, 0, len(c.locales))
	for _, locale := range c.locales {
		locale := locale
		queries = append(queries, subquery{
			label: "locale:" + locale,
			run:   func(ctx context.Context) ([]models.RawArticle, error) { return c.query(ctx, keyword, locale) },
		})
	}
	return runSubqueries(ctx, c.Name(), c.opts.Interval, queries)
}

func (c *RSSClient) query(ctx context.Context, keyword, locale string) ([]models.RawArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = c.opts.Client
	parser.UserAgent = userAgent

	feed, err := parser.ParseURLWithContext(c.searchURL(keyword, locale), ctx)
	if err != nil {
		return nil, fmt.Errorf("rss search: %w", err)
	}

	articles := make([]models.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		title, source := splitSource(item.Title)
		published := item.Published
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format(time.RFC3339)
		}
		articles = append(articles, models.RawArticle{
			Title:       title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.Link,
			SourceName:  source,
			PublishedAt: published,
			Platform:    c.Platform(),
		})
	}
	return articles, nil
}

// searchURL строит адрес ленты: locale "zh-CN" даёт hl=zh-CN&gl=CN&ceid=CN:zh-Hans.
func (c *RSSClient) searchURL(keyword, locale string) string {
	lang, region, _ := strings.Cut(locale, "-")
	if region == "" {
		region = "US"
	}
	region = strings.ToUpper(region)
	ceidLang := lang
	if lang == "zh" {
		ceidLang = "zh-Hans"
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("hl", locale)
	params.Set("gl", region)
	params.Set("ceid", region+":"+ceidLang)
	return c.baseURL + "/rss/search?" + params.Encode()
}

// splitSource отделяет издание из заголовка вида "Заголовок - Издание".
func splitSource(title string) (string, string) {
	i := strings.LastIndex(title, " - ")
	if i <= 0 {
		return title, ""
	}
	return strings.TrimSpace(title[:i]), strings.TrimSpace(title[i+3:])
}
