package fetcher

import (
	"media_monitor/internal/config"
	"media_monitor/internal/logger"
)

// Registry хранит настроенных поставщиков в порядке регистрации.
type Registry struct {
	providers []Provider
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Providers возвращает копию списка поставщиков.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Names возвращает имена зарегистрированных поставщиков.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// BuildRegistry создаёт адаптеры для включённых поставщиков.
// Поставщик без ключа API пропускается: это не ошибка.
func BuildRegistry(cfg config.ProvidersConfig, opts Options) *Registry {
	r := NewRegistry()

	keyed := []struct {
		name  string
		cfg   config.ProviderConfig
		build func() Provider
	}{
		{"newsapi", cfg.NewsAPI, func() Provider { return NewNewsAPIClient(cfg.NewsAPI, opts) }},
		{"gnews", cfg.GNews, func() Provider { return NewGNewsClient(cfg.GNews, opts) }},
		{"currents", cfg.Currents, func() Provider { return NewCurrentsClient(cfg.Currents, opts) }},
		{"finnhub", cfg.Finnhub, func() Provider { return NewFinnhubClient(cfg.Finnhub.APIKey, opts) }},
	}
	for _, k := range keyed {
		log := logger.Log.WithField("provider", k.name)
		switch {
		case !k.cfg.Enabled:
			log.Debug("Provider disabled")
		case k.cfg.APIKey == "":
			log.Warn("No API key configured, provider skipped")
		default:
			r.Register(k.build())
		}
	}

	if cfg.RSS.Enabled && cfg.RSS.BaseURL != "" {
		r.Register(NewRSSClient(cfg.RSS, opts))
	}

	logger.Log.WithField("providers", r.Names()).Info("Provider registry ready")
	return r
}
