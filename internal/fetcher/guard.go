package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"media_monitor/internal/logger"
	"media_monitor/internal/metrics"
	"media_monitor/internal/models"
)

// Guard вызывает поставщика и никогда не возвращает ошибку: сбой сети, статус не 2xx,
// битый ответ, лимит запросов или паника превращаются в пустой список.
// Причина попадает только в лог и в ProviderOutcome.
func Guard(ctx context.Context, p Provider, keyword string, m *metrics.Metrics) (articles []models.RawArticle, outcome models.ProviderOutcome) {
	start := time.Now()
	outcome.Name = p.Name()

	defer func() {
		if r := recover(); r != nil {
			articles = nil
			outcome.Status = models.StatusFailed
			outcome.Count = 0
			outcome.Err = fmt.Sprintf("panic: %v", r)
		}
		outcome.Duration = time.Since(start)
		m.ObserveProvider(outcome.Name, outcome.Status, outcome.Count, outcome.Duration)

		log := logger.Log.WithFields(logger.Fields{
			"provider": outcome.Name,
			"keyword":  keyword,
			"status":   outcome.Status,
			"count":    outcome.Count,
			"duration": outcome.Duration.String(),
		})
		if outcome.Err != "" {
			log.WithField("error", outcome.Err).Warn("Provider search failed")
		} else {
			log.Debug("Provider search finished")
		}
	}()

	items, err := p.Search(ctx, keyword)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil):
		outcome.Status = models.StatusTimeout
		outcome.Err = err.Error()
		return nil, outcome
	case err != nil:
		outcome.Status = models.StatusFailed
		outcome.Err = err.Error()
		return nil, outcome
	case ctx.Err() != nil:
		// ответ пришёл после общего предела: агрегатор его уже не ждёт
		outcome.Status = models.StatusTimeout
		outcome.Err = ctx.Err().Error()
		return nil, outcome
	case len(items) == 0:
		outcome.Status = models.StatusEmpty
		return nil, outcome
	}

	outcome.Status = models.StatusOK
	outcome.Count = len(items)
	return items, outcome
}
