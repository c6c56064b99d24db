package queue

import (
	"context"
	"errors"
	"fmt"

	"media_monitor/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Producer публикует задачи в RabbitMQ.
type Producer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewProducer(url string) (*Producer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Producer{conn, ch}, nil
}

func (p *Producer) Publish(ctx context.Context, queueName string, body []byte) error {
	if err := declare(p.ch, queueName); err != nil {
		return err
	}

	return p.ch.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key (имя очереди)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent, // Сохранять сообщения при перезапуске
			ContentType:  "text/plain",
			Body:         body,
		},
	)
}

func (p *Producer) Close() {
	p.ch.Close()
	p.conn.Close()
}

// Consumer раздаёт задачи из RabbitMQ пулу воркеров.
type Consumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	workers int
}

func NewConsumer(url, queue string, workers int) (*Consumer, error) {
	if workers < 1 {
		workers = 1
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Consumer{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		workers: workers,
	}, nil
}

func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	// Объявляем очередь с теми же параметрами, что и Producer
	if err := declare(c.ch, c.queue); err != nil {
		return err
	}
	if err := c.ch.Qos(c.workers, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := c.ch.ConsumeWithContext(
		ctx,
		c.queue,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	logger.Log.WithFields(logger.Fields{
		"queue":   c.queue,
		"workers": c.workers,
	}).Info("Consuming queue")

	for i := 0; i < c.workers; i++ {
		go func() {
			for msg := range msgs {
				err := handler(ctx, msg.Body)
				switch {
				case err == nil:
					msg.Ack(false)
				case errors.Is(err, ErrReject):
					msg.Nack(false, false)
					logger.Log.Warnf("Task dropped: %v", err)
				default:
					msg.Nack(false, true)
					logger.Log.Errorf("Task failed: %v", err)
				}
			}
		}()
	}
	return nil
}

func (c *Consumer) Close() {
	c.ch.Close()
	c.conn.Close()
}

// declare объявляет durable-очередь.
func declare(ch *amqp.Channel, name string) error {
	_, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}
