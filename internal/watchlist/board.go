// Package watchlist отслеживает список ключевых слов: периодически ставит их
// в очередь на обновление и хранит последнюю сводку по каждому.
package watchlist

import (
	"sort"
	"strings"
	"sync"
	"time"

	"media_monitor/internal/models"
)

// DefaultHeadlines - сколько заголовков попадает в сводку.
const DefaultHeadlines = 3

type Headline struct {
	Title     string           `json:"title"`
	Source    string           `json:"source"`
	URL       string           `json:"url"`
	Sentiment models.Sentiment `json:"sentiment"`
}

// Digest - сводка последнего обновления по ключевому слову.
type Digest struct {
	Keyword   string                   `json:"keyword"`
	UpdatedAt time.Time                `json:"updatedAt"`
	Total     int                      `json:"total"`
	Returned  int                      `json:"returned"`
	Source    string                   `json:"source"`
	Fallback  bool                     `json:"fallback"`
	Sentiment map[models.Sentiment]int `json:"sentiment"`
	Headlines []Headline               `json:"headlines"`
}

// NewDigest строит сводку из результата агрегации. Счётчики тональности
// считаются по возвращённым статьям, их сумма равна Returned.
func NewDigest(res *models.AggregateResult, headlines int) Digest {
	if headlines < 0 {
		headlines = 0
	}
	d := Digest{
		Keyword:   res.Keyword,
		UpdatedAt: res.GeneratedAt,
		Total:     res.Total,
		Returned:  len(res.Articles),
		Source:    res.Source,
		Fallback:  res.Fallback,
		Sentiment: res.SentimentCounts(),
		Headlines: make([]Headline, 0, min(headlines, len(res.Articles))),
	}
	for _, a := range res.Articles {
		if len(d.Headlines) == headlines {
			break
		}
		d.Headlines = append(d.Headlines, Headline{
			Title:     a.Title,
			Source:    a.Source,
			URL:       a.URL,
			Sentiment: a.Sentiment,
		})
	}
	return d
}

// Board хранит последнюю сводку по каждому ключевому слову. Без сохранения на диск.
type Board struct {
	mu      sync.RWMutex
	digests map[string]Digest
}

func NewBoard() *Board {
	return &Board{digests: make(map[string]Digest)}
}

// Put заменяет предыдущую сводку по тому же ключевому слову.
func (b *Board) Put(d Digest) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.digests[boardKey(d.Keyword)] = d
}

// Get ищет сводку без учёта регистра.
func (b *Board) Get(keyword string) (Digest, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d, ok := b.digests[boardKey(keyword)]
	return d, ok
}

// List возвращает все сводки, отсортированные по ключевому слову.
func (b *Board) List() []Digest {
	b.mu.RLock()
	out := make([]Digest, 0, len(b.digests))
	for _, d := range b.digests {
		out = append(out, d)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Keyword < out[j].Keyword })
	return out
}

func boardKey(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
