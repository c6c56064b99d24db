package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"media_monitor/internal/logger"
)

// LocalQueue - очередь в памяти процесса для запуска без RabbitMQ.
// Задачи не переживают перезапуск. Неудачная задача только логируется.
type LocalQueue struct {
	name    string
	tasks   chan []byte
	done    chan struct{}
	workers int

	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewLocalQueue(name string, size, workers int) *LocalQueue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &LocalQueue{
		name:    name,
		tasks:   make(chan []byte, size),
		done:    make(chan struct{}),
		workers: workers,
	}
}

func (q *LocalQueue) Publish(ctx context.Context, queueName string, body []byte) error {
	if queueName != q.name {
		return fmt.Errorf("unknown queue %q", queueName)
	}
	select {
	case <-q.done:
		return ErrClosed
	default:
	}

	select {
	case q.tasks <- body:
		return nil
	case <-q.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *LocalQueue) Consume(ctx context.Context, handler Handler) error {
	logger.Log.WithFields(logger.Fields{
		"queue":   q.name,
		"workers": q.workers,
	}).Info("Consuming in-process queue")

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-q.done:
					return
				case body := <-q.tasks:
					if err := handler(ctx, body); err != nil {
						if errors.Is(err, ErrReject) {
							logger.Log.Warnf("Task dropped: %v", err)
						} else {
							logger.Log.Errorf("Task failed: %v", err)
						}
					}
				}
			}
		}()
	}
	return nil
}

// Close останавливает воркеров и ждёт завершения текущих задач.
func (q *LocalQueue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
	q.wg.Wait()
}

// Len возвращает число задач, ожидающих обработки.
func (q *LocalQueue) Len() int {
	return len(q.tasks)
}
