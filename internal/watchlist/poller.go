package watchlist

import (
	"context"
	"time"

	"media_monitor/internal/logger"
	"media_monitor/internal/queue"
)

// StartPolling ставит каждое ключевое слово в очередь сразу и затем на каждом тике.
// Блокируется до отмены ctx.
func StartPolling(ctx context.Context, publisher queue.Publisher, keywords []string, interval time.Duration, queueName string) {
	log := logger.Log.WithFields(logger.Fields{
		"service":  "poller",
		"interval": interval.String(),
		"keywords": len(keywords),
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Starting watchlist polling")
	enqueue(ctx, publisher, keywords, queueName, log)

	for {
		select {
		case <-ticker.C:
			log.Info("Starting new polling cycle")
			enqueue(ctx, publisher, keywords, queueName, log)

		case <-ctx.Done():
			log.Info("Stopping poller by context")
			return
		}
	}
}

func enqueue(ctx context.Context, publisher queue.Publisher, keywords []string, queueName string, log *logger.Entry) {
	for _, kw := range keywords {
		if err := publisher.Publish(ctx, queueName, []byte(kw)); err != nil {
			log.WithField("keyword", kw).Errorf("Failed to enqueue keyword: %v", err)
		}
	}
}
