package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"media_monitor/internal/logger"
	"media_monitor/internal/models"
	"media_monitor/internal/queue"
	"media_monitor/internal/watchlist"
)

// Searcher - то, что умеет агрегировать новости по ключевому слову.
type Searcher interface {
	Aggregate(ctx context.Context, keyword string) (*models.AggregateResult, error)
}

type Worker struct {
	searcher  Searcher
	board     *watchlist.Board
	headlines int
}

func NewWorker(searcher Searcher, board *watchlist.Board) *Worker {
	return &Worker{
		searcher:  searcher,
		board:     board,
		headlines: watchlist.DefaultHeadlines,
	}
}

// HandleTask обновляет сводку по ключевому слову из тела задачи.
// Пустое тело отклоняется через queue.ErrReject.
func (w *Worker) HandleTask(ctx context.Context, body []byte) error {
	keyword := strings.TrimSpace(string(body))
	if keyword == "" {
		return fmt.Errorf("%w: empty keyword", queue.ErrReject)
	}

	log := logger.ForKeyword(keyword)
	log.Info("Refreshing watchlist keyword")
	start := time.Now()

	res, err := w.searcher.Aggregate(ctx, keyword)
	if err != nil {
		log.Errorf("Aggregation failed: %v", err)
		return fmt.Errorf("aggregate %q: %w", keyword, err)
	}

	digest := watchlist.NewDigest(res, w.headlines)
	w.board.Put(digest)

	log.WithFields(logger.Fields{
		"total":    digest.Total,
		"source":   digest.Source,
		"fallback": digest.Fallback,
		"duration": time.Since(start).String(),
	}).Info("Watchlist digest updated")
	return nil
}
