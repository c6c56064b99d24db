package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"media_monitor/internal/config"
	"media_monitor/internal/fetcher"
	"media_monitor/internal/metrics"
	"media_monitor/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = fetcher.Options{Timeout: 2 * time.Second}

func TestNewsAPIClient_Search(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "publishedAt", r.URL.Query().Get("sortBy"))
		assert.Equal(t, "MediaMonitor/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("language") == "" {
			// отраслевой подзапрос
			assert.Contains(t, r.URL.Query().Get("q"), "AND (biotech")
			w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[
				{"source":{"name":"Endpoints"},"title":"Beta clinical update","url":"https://x.test/b2","publishedAt":"2026-10-19T10:00:00Z"}
			]}`))
			return
		}
		assert.Equal(t, `"Beta"`, r.URL.Query().Get("q"))
		w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"name":"Reuters"},"title":"Beta raises funds","description":"Beta closes round","url":"https://x.test/a1","publishedAt":"2026-10-19T09:00:00Z"},
			{"source":{"name":null},"title":"[Removed]","url":"https://removed.com"}
		]}`))
	}))
	defer server.Close()

	client := fetcher.NewNewsAPIClient(config.ProviderConfig{
		APIKey:    "secret",
		BaseURL:   server.URL,
		Languages: []string{"en"},
	}, testOpts)

	articles, err := client.Search(context.Background(), "Beta")
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
	require.Len(t, articles, 3)
	require.Equal(t, "Beta raises funds", articles[0].Title)
	require.Equal(t, "Reuters", articles[0].SourceName)
	require.Equal(t, "news", articles[0].Platform)
	require.Equal(t, "https://x.test/b2", articles[2].URL)
}

func TestNewsAPIClient_SubqueriesArePaced(t *testing.T) {
	const interval = 150 * time.Millisecond

	var (
		mu     sync.Mutex
		stamps []time.Time
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		stamps = append(stamps, time.Now())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer server.Close()

	client := fetcher.NewNewsAPIClient(config.ProviderConfig{
		APIKey:    "secret",
		BaseURL:   server.URL,
		Languages: []string{"en", "zh"},
	}, fetcher.Options{Timeout: 2 * time.Second, Interval: interval})

	_, err := client.Search(context.Background(), "Beta")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, stamps, 3)
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		require.GreaterOrEqual(t, gap, interval-30*time.Millisecond, "sub-query %d started after %s", i, gap)
	}
}

func TestNewsAPIClient_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"status":"error","code":"rateLimited"}`, fetcher.ErrRateLimited},
		{"unauthorized", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid"}`, fetcher.ErrUnauthorized},
		{"server error", http.StatusBadGateway, ``, fetcher.ErrBadStatus},
		{"error status in body", http.StatusOK, `{"status":"error","code":"parameterInvalid","message":"bad"}`, fetcher.ErrProvider},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := fetcher.NewNewsAPIClient(config.ProviderConfig{APIKey: "k", BaseURL: server.URL}, testOpts)
			_, err := client.Search(context.Background(), "Beta")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewsAPIClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := fetcher.NewNewsAPIClient(config.ProviderConfig{APIKey: "k", BaseURL: server.URL}, testOpts)
	_, err := client.Search(context.Background(), "Beta")
	require.Error(t, err)
}

func TestSubqueries_PartialFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") == "zh" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"totalArticles":1,"articles":[
			{"title":"Gamma expands","description":"d","url":"https://g.test/1","publishedAt":"2026-10-19T08:00:00Z","source":{"name":"BBC"}}
		]}`))
	}))
	defer server.Close()

	client := fetcher.NewGNewsClient(config.ProviderConfig{
		APIKey:    "k",
		BaseURL:   server.URL,
		Languages: []string{"zh", "en"},
	}, fetcher.Options{Timeout: time.Second, Interval: 10 * time.Millisecond})

	articles, err := client.Search(context.Background(), "Gamma")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "BBC", articles[0].SourceName)
}

func TestGNewsClient_ErrorsField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v4/search", r.URL.Path)
		w.Write([]byte(`{"errors":["You did not provide an API key."]}`))
	}))
	defer server.Close()

	client := fetcher.NewGNewsClient(config.ProviderConfig{APIKey: "k", BaseURL: server.URL}, testOpts)
	_, err := client.Search(context.Background(), "Gamma")
	require.ErrorIs(t, err, fetcher.ErrProvider)
}

func TestCurrentsClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Delta", r.URL.Query().Get("keywords"))
		w.Write([]byte(`{"status":"ok","news":[
			{"id":"1","title":"Delta wins approval","description":"Regulators approve","url":"https://www.pharmatimes.com/delta","author":"","published":"2026-10-18 07:15:00 +0000"},
			{"id":"2","title":"Delta CEO interview","url":"https://y.test/2","author":"Jane Doe","published":"2026-10-18 08:00:00 +0000"}
		]}`))
	}))
	defer server.Close()

	client := fetcher.NewCurrentsClient(config.ProviderConfig{APIKey: "k", BaseURL: server.URL}, testOpts)
	articles, err := client.Search(context.Background(), "Delta")
	require.NoError(t, err)
	require.Len(t, articles, 2)
	require.Equal(t, "pharmatimes.com", articles[0].SourceName)
	require.Equal(t, "Jane Doe", articles[1].SourceName)

	a, ok := models.Normalize(articles[0], "currents", time.Now())
	require.True(t, ok)
	require.True(t, a.PublishTime.Equal(time.Date(2026, 10, 18, 7, 15, 0, 0, time.UTC)))
}

func TestRSSClient_Search(t *testing.T) {
	feed := `<?xml version="1.0" encoding="UTF-8"?>
	<rss version="2.0">
		<channel>
			<title>"天境生物" - Google News</title>
			<item>
				<title>天境生物发布三季度业绩 - 新浪财经</title>
				<link>https://news.test/1</link>
				<pubDate>Sun, 18 Oct 2026 06:00:00 GMT</pubDate>
				<description>&lt;a href="https://news.test/1"&gt;天境生物发布三季度业绩&lt;/a&gt;</description>
			</item>
		</channel>
	</rss>`

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rss/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feed))
	}))
	defer server.Close()

	client := fetcher.NewRSSClient(config.ProviderConfig{BaseURL: server.URL, Languages: []string{"zh-CN"}}, testOpts)
	articles, err := client.Search(context.Background(), "天境生物")
	require.NoError(t, err)
	require.Len(t, articles, 1)
	require.Equal(t, "天境生物发布三季度业绩", articles[0].Title)
	require.Equal(t, "新浪财经", articles[0].SourceName)
	require.Equal(t, "https://news.test/1", articles[0].URL)
	require.Equal(t, "2026-10-18T06:00:00Z", articles[0].PublishedAt)
	require.Contains(t, gotQuery, "ceid=CN%3Azh-Hans")
}

func TestRSSClient_BadFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := fetcher.NewRSSClient(config.ProviderConfig{BaseURL: server.URL}, testOpts)
	_, err := client.Search(context.Background(), "x")
	require.Error(t, err)
}

func TestBuildRegistry_SkipsMissingCredentials(t *testing.T) {
	cfg := config.Default().Providers
	cfg.NewsAPI.APIKey = "present"
	cfg.GNews.APIKey = ""
	cfg.Currents.APIKey = ""
	cfg.Finnhub.APIKey = ""
	cfg.RSS.Enabled = false

	r := fetcher.BuildRegistry(cfg, testOpts)
	require.Equal(t, []string{"newsapi"}, r.Names())

	cfg.Finnhub.APIKey = "present"
	cfg.RSS.Enabled = true
	cfg.NewsAPI.Enabled = false
	r = fetcher.BuildRegistry(cfg, testOpts)
	require.Equal(t, []string{"finnhub", "rss"}, r.Names())
}

type stubProvider struct {
	name      string
	articles  []models.RawArticle
	err       error
	delay     time.Duration
	panics    bool
	// ignoreCtx заставляет ответить после delay, даже если контекст уже отменён.
	ignoreCtx bool
}

func (s *stubProvider) Name() string     { return s.name }
func (s *stubProvider) Platform() string { return "news" }
func (s *stubProvider) Search(ctx context.Context, keyword string) ([]models.RawArticle, error) {
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 && s.ignoreCtx {
		time.Sleep(s.delay)
		return s.articles, s.err
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.articles, s.err
}

func TestGuard(t *testing.T) {
	ok := &stubProvider{name: "ok", articles: []models.RawArticle{{Title: "a"}, {Title: "b"}}}
	items, outcome := fetcher.Guard(context.Background(), ok, "kw", nil)
	require.Len(t, items, 2)
	require.Equal(t, models.StatusOK, outcome.Status)
	require.Equal(t, 2, outcome.Count)

	empty := &stubProvider{name: "empty"}
	items, outcome = fetcher.Guard(context.Background(), empty, "kw", nil)
	require.Empty(t, items)
	require.Equal(t, models.StatusEmpty, outcome.Status)

	failing := &stubProvider{name: "failing", err: errors.New("connection refused")}
	items, outcome = fetcher.Guard(context.Background(), failing, "kw", nil)
	require.Empty(t, items)
	require.Equal(t, models.StatusFailed, outcome.Status)
	require.Contains(t, outcome.Err, "connection refused")

	panicking := &stubProvider{name: "panicking", panics: true}
	items, outcome = fetcher.Guard(context.Background(), panicking, "kw", nil)
	require.Empty(t, items)
	require.Equal(t, models.StatusFailed, outcome.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	slow := &stubProvider{name: "slow", delay: time.Second}
	items, outcome = fetcher.Guard(ctx, slow, "kw", nil)
	require.Empty(t, items)
	require.Equal(t, models.StatusTimeout, outcome.Status)
}

func TestGuard_LateAnswerCountsAsTimeout(t *testing.T) {
	m := metrics.New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	late := &stubProvider{
		name:      "late",
		articles:  []models.RawArticle{{Title: "a"}},
		delay:     100 * time.Millisecond,
		ignoreCtx: true,
	}
	items, outcome := fetcher.Guard(ctx, late, "kw", m)
	require.Empty(t, items)
	require.Equal(t, models.StatusTimeout, outcome.Status)
	require.Zero(t, outcome.Count)

	requests, _, _ := m.Collectors()
	require.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("late", models.StatusTimeout)))
	require.Equal(t, 0.0, testutil.ToFloat64(requests.WithLabelValues("late", models.StatusOK)))
}
