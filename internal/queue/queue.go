// Package queue доставляет задачи обновления ключевых слов до воркеров.
// Есть два транспорта с одинаковыми интерфейсами: RabbitMQ и канал в памяти процесса.
package queue

import (
	"context"
	"errors"
)

// ErrReject помечает задачу, которую бессмысленно повторять.
// Такую задачу транспорт отбрасывает, а не возвращает в очередь.
var ErrReject = errors.New("task rejected")

// ErrClosed возвращается при публикации в закрытую очередь.
var ErrClosed = errors.New("queue closed")

// Handler обрабатывает тело одной задачи.
type Handler func(ctx context.Context, body []byte) error

type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	Close()
}

type Subscriber interface {
	// Consume запускает воркеров и сразу возвращается.
	// Воркеры останавливаются при отмене ctx или закрытии очереди.
	Consume(ctx context.Context, handler Handler) error
	Close()
}

var (
	_ Publisher  = (*Producer)(nil)
	_ Publisher  = (*LocalQueue)(nil)
	_ Subscriber = (*Consumer)(nil)
	_ Subscriber = (*LocalQueue)(nil)
)
