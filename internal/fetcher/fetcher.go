package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"media_monitor/internal/logger"
	"media_monitor/internal/models"

	"golang.org/x/time/rate"
)

const userAgent = "MediaMonitor/1.0"

// Ошибки поставщиков. Наружу из адаптера они не выходят: их поглощает Guard.
var (
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrRateLimited  = errors.New("provider rate limit exceeded")
	ErrBadStatus    = errors.New("unexpected provider status")
	ErrProvider     = errors.New("provider reported an error")
)

// Provider - адаптер одного внешнего поискового API.
// Реализации не хранят изменяемого состояния между вызовами.
type Provider interface {
	Name() string
	Platform() string
	Search(ctx context.Context, keyword string) ([]models.RawArticle, error)
}

// Options - общие настройки HTTP-адаптеров.
type Options struct {
	// Timeout ограничивает каждый подзапрос отдельно.
	Timeout time.Duration
	// Interval - минимальная пауза между подзапросами одного вызова Search.
	Interval time.Duration
	Client   *http.Client
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 4 * time.Second
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Timeout}
	}
	return o
}

// fetchJSON выполняет GET с отдельным таймаутом и декодирует JSON-ответ в out.
func fetchJSON(ctx context.Context, client *http.Client, url string, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrUnauthorized, code)
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code < 200 || code > 299:
		return fmt.Errorf("%w: %d", ErrBadStatus, code)
	}
	return nil
}

type subquery struct {
	label string
	run   func(ctx context.Context) ([]models.RawArticle, error)
}

// runSubqueries выполняет подзапросы последовательно с паузой interval.
// Ошибка возвращается, только если не удался ни один подзапрос.
func runSubqueries(ctx context.Context, provider string, interval time.Duration, queries []subquery) ([]models.RawArticle, error) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	log := logger.Log.WithField("provider", provider)

	var (
		out       []models.RawArticle
		errs      []error
		succeeded int
	)
	for _, q := range queries {
		if err := limiter.Wait(ctx); err != nil {
			errs = append(errs, err)
			break
		}
		items, err := q.run(ctx)
		if err != nil {
			log.WithField("subquery", q.label).Debugf("Sub-query failed: %v", err)
			errs = append(errs, err)
			continue
		}
		succeeded++
		out = append(out, items...)
	}

	if succeeded == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
