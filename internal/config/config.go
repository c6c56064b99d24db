package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Ошибки валидации конфигурации.
var (
	ErrInvalidMaxResults      = errors.New("search.max_results must be at least 1")
	ErrInvalidGlobalTimeout   = errors.New("search.global_timeout_sec must be at least 1")
	ErrInvalidProviderTimeout = errors.New("search.provider_timeout_sec must be at least 1")
	ErrProviderTimeoutCeiling = errors.New("search.provider_timeout_sec cannot exceed search.global_timeout_sec")
	ErrInvalidPrefixLen       = errors.New("search.dedupe_prefix_len must be at least 1")
	ErrInvalidPollInterval    = errors.New("poll interval must be ≥ 5 minutes")
	ErrEmptyKeyword           = errors.New("watchlist keyword must not be empty")
	ErrInvalidBaseURL         = errors.New("invalid provider base URL")
	ErrInvalidLogLevel        = errors.New("log_level must be one of: debug, info, warn, error")
	ErrInvalidWorkers         = errors.New("rabbitmq.workers must be at least 1")
)

// Config хранит всю конфигурацию сервиса мониторинга.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Search    SearchConfig    `json:"search" yaml:"search"`
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
	Ranking   RankingConfig   `json:"ranking" yaml:"ranking"`
	Watchlist WatchlistConfig `json:"watchlist" yaml:"watchlist"`
	RabbitMQ  RabbitMQConfig  `json:"rabbitmq" yaml:"rabbitmq"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`
	LogFormat string          `json:"log_format" yaml:"log_format"`
}

type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// SearchConfig задаёт лимиты конвейера агрегации.
type SearchConfig struct {
	MaxResults         int `json:"max_results" yaml:"max_results"`
	GlobalTimeoutSec   int `json:"global_timeout_sec" yaml:"global_timeout_sec"`
	ProviderTimeoutSec int `json:"provider_timeout_sec" yaml:"provider_timeout_sec"`
	DedupePrefixLen    int `json:"dedupe_prefix_len" yaml:"dedupe_prefix_len"`
	SubqueryIntervalMs int `json:"subquery_interval_ms" yaml:"subquery_interval_ms"`
}

func (s SearchConfig) GlobalTimeout() time.Duration {
	return time.Duration(s.GlobalTimeoutSec) * time.Second
}

func (s SearchConfig) ProviderTimeout() time.Duration {
	return time.Duration(s.ProviderTimeoutSec) * time.Second
}

func (s SearchConfig) SubqueryInterval() time.Duration {
	return time.Duration(s.SubqueryIntervalMs) * time.Millisecond
}

// ProviderConfig описывает одного внешнего поставщика новостей.
type ProviderConfig struct {
	Enabled   bool     `json:"enabled" yaml:"enabled"`
	APIKey    string   `json:"api_key" yaml:"api_key"`
	BaseURL   string   `json:"base_url" yaml:"base_url"`
	Languages []string `json:"languages" yaml:"languages"`
	PageSize  int      `json:"page_size" yaml:"page_size"`
}

type ProvidersConfig struct {
	NewsAPI  ProviderConfig `json:"newsapi" yaml:"newsapi"`
	GNews    ProviderConfig `json:"gnews" yaml:"gnews"`
	Currents ProviderConfig `json:"currents" yaml:"currents"`
	RSS      ProviderConfig `json:"rss" yaml:"rss"`
	Finnhub  ProviderConfig `json:"finnhub" yaml:"finnhub"`
}

// RankingConfig хранит таблицу весов площадок: госисточник > финпортал > соцсети.
type RankingConfig struct {
	PlatformWeights map[string]int `json:"platform_weights" yaml:"platform_weights"`
}

// WatchlistConfig задаёт отслеживаемые ключевые слова и интервал обновления в минутах.
type WatchlistConfig struct {
	Keywords     []string `json:"keywords" yaml:"keywords"`
	PollInterval int      `json:"poll_interval" yaml:"poll_interval"`
}

type RabbitMQConfig struct {
	URL     string `json:"url" yaml:"url"`
	Queue   string `json:"queue" yaml:"queue"`
	Workers int    `json:"workers" yaml:"workers"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Search: SearchConfig{
			MaxResults:         20,
			GlobalTimeoutSec:   9,
			ProviderTimeoutSec: 4,
			DedupePrefixLen:    20,
			SubqueryIntervalMs: 250,
		},
		Providers: ProvidersConfig{
			NewsAPI: ProviderConfig{
				Enabled:   true,
				BaseURL:   "https://newsapi.org",
				Languages: []string{"zh", "en"},
				PageSize:  20,
			},
			GNews: ProviderConfig{
				Enabled:   true,
				BaseURL:   "https://gnews.io",
				Languages: []string{"zh", "en"},
				PageSize:  10,
			},
			Currents: ProviderConfig{
				Enabled:   true,
				BaseURL:   "https://api.currentsapi.services",
				Languages: []string{"en"},
			},
			RSS: ProviderConfig{
				Enabled:   true,
				BaseURL:   "https://news.google.com",
				Languages: []string{"zh-CN"},
			},
			Finnhub: ProviderConfig{
				Enabled: true,
			},
		},
		Ranking: RankingConfig{
			PlatformWeights: defaultPlatformWeights(),
		},
		Watchlist: WatchlistConfig{
			Keywords: []string{
				"天境生物", "I-Mab", "臧敬五", "菲泽妥单抗",
				"felzartamab", "givastomig", "尤莱利单抗", "依坦生长激素",
			},
			PollInterval: 30,
		},
		RabbitMQ: RabbitMQConfig{
			Queue:   "keyword_refresh",
			Workers: 2,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Validate проверяет лимиты поиска, интервал опроса, ключевые слова и URL поставщиков.
func (cfg *Config) Validate() error {
	if cfg.Search.MaxResults < 1 {
		return ErrInvalidMaxResults
	}
	if cfg.Search.GlobalTimeoutSec < 1 {
		return ErrInvalidGlobalTimeout
	}
	if cfg.Search.ProviderTimeoutSec < 1 {
		return ErrInvalidProviderTimeout
	}
	if cfg.Search.ProviderTimeoutSec > cfg.Search.GlobalTimeoutSec {
		return ErrProviderTimeoutCeiling
	}
	if cfg.Search.DedupePrefixLen < 1 {
		return ErrInvalidPrefixLen
	}
	if cfg.Watchlist.PollInterval < 5 {
		return ErrInvalidPollInterval
	}
	for _, k := range cfg.Watchlist.Keywords {
		if strings.TrimSpace(k) == "" {
			return ErrEmptyKeyword
		}
	}
	for name, p := range cfg.Providers.byName() {
		if p.BaseURL == "" {
			continue
		}
		if _, err := url.ParseRequestURI(p.BaseURL); err != nil {
			return fmt.Errorf("%w: %s: %s", ErrInvalidBaseURL, name, p.BaseURL)
		}
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return ErrInvalidLogLevel
	}
	if cfg.RabbitMQ.Workers < 1 {
		return ErrInvalidWorkers
	}
	return nil
}

func (p ProvidersConfig) byName() map[string]ProviderConfig {
	return map[string]ProviderConfig{
		"newsapi":  p.NewsAPI,
		"gnews":    p.GNews,
		"currents": p.Currents,
		"rss":      p.RSS,
		"finnhub":  p.Finnhub,
	}
}

func defaultPlatformWeights() map[string]int {
	return map[string]int{
		"government":     4,
		"news":           3,
		"finance portal": 2,
		"industry media": 2,
		"social media":   1,
	}
}

// LoadConfig читает файл по пути path поверх значений по умолчанию.
// Формат выбирается по расширению: .yaml/.yml - YAML, иначе JSON.
// Ссылки вида ${VAR} раскрываются из окружения до разбора.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	expanded := []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	// таблица весов из файла заменяет умолчания целиком, а не сливается с ними
	cfg.Ranking.PlatformWeights = nil
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(expanded, cfg)
	default:
		err = json.Unmarshal(expanded, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Ranking.PlatformWeights == nil {
		cfg.Ranking.PlatformWeights = defaultPlatformWeights()
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault работает как LoadConfig, но при отсутствии файла возвращает значения по умолчанию.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadConfig(path)
}

// applyEnv подставляет ключи API из окружения, если в файле они пустые,
// и добавляет FRONTEND_URL к разрешённым источникам CORS.
func (cfg *Config) applyEnv() {
	fill := func(dst *string, env string) {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	fill(&cfg.Providers.NewsAPI.APIKey, "NEWS_API_KEY")
	fill(&cfg.Providers.GNews.APIKey, "GNEWS_API_KEY")
	fill(&cfg.Providers.Currents.APIKey, "CURRENTS_API_KEY")
	fill(&cfg.Providers.Finnhub.APIKey, "FINNHUB_API_KEY")
	fill(&cfg.RabbitMQ.URL, "RABBITMQ_URL")

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, frontendURL)
	}
}
