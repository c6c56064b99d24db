// Package aggregator опрашивает всех поставщиков параллельно и собирает
// единый ранжированный список статей по ключевому слову.
//
// Сбой отдельного поставщика не фатален. Если не ответил никто, используется
// генератор-заглушка, поэтому для непустого ключевого слова Aggregate
// всегда возвращает непустой результат.
package aggregator

import (
	"context"
	"errors"
	"strings"
	"time"

	"media_monitor/internal/config"
	"media_monitor/internal/dedupe"
	"media_monitor/internal/fetcher"
	"media_monitor/internal/logger"
	"media_monitor/internal/metrics"
	"media_monitor/internal/models"
	"media_monitor/internal/ranking"
	"media_monitor/internal/sentiment"
	"media_monitor/internal/synthetic"
)

// ErrInvalidKeyword - единственная ошибка, которую видит вызывающий.
var ErrInvalidKeyword = errors.New("keyword is required")

// FallbackNote сопровождает результат, собранный генератором-заглушкой.
const FallbackNote = "no provider returned results, synthetic fallback data used"

const (
	defaultMaxResults = 20
	defaultCeiling    = 9 * time.Second
)

type Options struct {
	MaxResults int
	// Ceiling - общий предел ожидания всех поставщиков.
	Ceiling   time.Duration
	Generator *synthetic.Generator
	Deduper   *dedupe.Deduplicator
	Ranker    *ranking.Ranker
	Metrics   *metrics.Metrics
}

type Aggregator struct {
	providers  []fetcher.Provider
	generator  *synthetic.Generator
	deduper    *dedupe.Deduplicator
	ranker     *ranking.Ranker
	metrics    *metrics.Metrics
	maxResults int
	ceiling    time.Duration
	now        func() time.Time
}

func New(providers []fetcher.Provider, opts Options) *Aggregator {
	a := &Aggregator{
		providers:  providers,
		generator:  opts.Generator,
		deduper:    opts.Deduper,
		ranker:     opts.Ranker,
		metrics:    opts.Metrics,
		maxResults: opts.MaxResults,
		ceiling:    opts.Ceiling,
		now:        time.Now,
	}
	if a.generator == nil {
		a.generator = synthetic.New(synthetic.DefaultWindow)
	}
	if a.deduper == nil {
		a.deduper = dedupe.New(dedupe.DefaultPrefixLen)
	}
	if a.ranker == nil {
		a.ranker = ranking.New(nil)
	}
	if a.maxResults <= 0 {
		a.maxResults = defaultMaxResults
	}
	if a.ceiling <= 0 {
		a.ceiling = defaultCeiling
	}
	return a
}

// FromConfig собирает Aggregator из секций search и ranking конфигурации.
func FromConfig(cfg *config.Config, providers []fetcher.Provider, m *metrics.Metrics) *Aggregator {
	return New(providers, Options{
		MaxResults: cfg.Search.MaxResults,
		Ceiling:    cfg.Search.GlobalTimeout(),
		Deduper:    dedupe.New(cfg.Search.DedupePrefixLen),
		Ranker:     ranking.New(cfg.Ranking.PlatformWeights),
		Metrics:    m,
	})
}

// ProviderCount возвращает число настроенных поставщиков.
func (a *Aggregator) ProviderCount() int {
	return len(a.providers)
}

type settled struct {
	index    int
	articles []models.RawArticle
	outcome  models.ProviderOutcome
}

// Aggregate выполняет один поиск. Ошибка возвращается только для пустого ключевого слова.
func (a *Aggregator) Aggregate(ctx context.Context, keyword string) (*models.AggregateResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrInvalidKeyword
	}
	log := logger.ForKeyword(keyword)
	start := a.now()

	raw, outcomes := a.collect(ctx, keyword)

	var merged []models.Article
	var contributors []string
	for i := range outcomes {
		count := 0
		for _, r := range raw[i] {
			article, ok := models.Normalize(r, outcomes[i].Name, start)
			if !ok {
				log.WithField("provider", outcomes[i].Name).Debugf("Dropped article without title: %q", r.URL)
				continue
			}
			merged = append(merged, article)
			count++
		}
		outcomes[i].Count = count
		if count == 0 && outcomes[i].Status == models.StatusOK {
			outcomes[i].Status = models.StatusEmpty
		}
		if count > 0 {
			contributors = append(contributors, outcomes[i].Name)
		}
	}

	result := &models.AggregateResult{
		Keyword:     keyword,
		Providers:   outcomes,
		GeneratedAt: start.UTC(),
	}

	if len(merged) == 0 {
		log.WithField("providers", len(outcomes)).Info("No provider returned articles, using synthetic fallback")
		a.metrics.Fallback()
		result.Fallback = true
		result.Source = models.ProvenanceSynthetic
		result.Note = FallbackNote
		merged = a.generator.Generate(keyword)
	} else {
		result.Source = strings.Join(contributors, "+")
	}

	articles := a.deduper.Dedupe(merged)
	for i := range articles {
		if !articles[i].Synthetic() {
			articles[i].Sentiment = sentiment.ClassifyArticle(articles[i])
		}
	}
	articles = a.ranker.Rank(articles, keyword)

	result.Total = len(articles)
	if len(articles) > a.maxResults {
		articles = articles[:a.maxResults]
	}
	result.Articles = articles

	log.WithFields(logger.Fields{
		"source":   result.Source,
		"total":    result.Total,
		"returned": len(result.Articles),
		"fallback": result.Fallback,
		"duration": time.Since(start).String(),
	}).Info("Aggregation finished")

	return result, nil
}

// collect опрашивает поставщиков параллельно и ждёт их не дольше общего предела.
// Не успевший поставщик получает статус timeout и ничего не добавляет.
func (a *Aggregator) collect(ctx context.Context, keyword string) ([][]models.RawArticle, []models.ProviderOutcome) {
	ctx, cancel := context.WithTimeout(ctx, a.ceiling)
	defer cancel()

	n := len(a.providers)
	raw := make([][]models.RawArticle, n)
	outcomes := make([]models.ProviderOutcome, n)
	for i, p := range a.providers {
		outcomes[i] = models.ProviderOutcome{
			Name:   p.Name(),
			Status: models.StatusTimeout,
			Err:    "global timeout exceeded",
		}
	}

	results := make(chan settled, n)
	for i, p := range a.providers {
		i, p := i, p
		go func() {
			items, outcome := fetcher.Guard(ctx, p, keyword, a.metrics)
			results <- settled{index: i, articles: items, outcome: outcome}
		}()
	}

	for pending := n; pending > 0; pending-- {
		select {
		case s := <-results:
			raw[s.index] = s.articles
			outcomes[s.index] = s.outcome
		case <-ctx.Done():
			// забираем тех, кто успел ответить одновременно с таймаутом
		drain:
			for ; pending > 0; pending-- {
				select {
				case s := <-results:
					raw[s.index] = s.articles
					outcomes[s.index] = s.outcome
				default:
					break drain
				}
			}
			logger.ForKeyword(keyword).WithField("pending", pending).Warn("Global timeout reached, ignoring slow providers")
			return raw, outcomes
		}
	}
	return raw, outcomes
}
