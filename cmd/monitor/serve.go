package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media_monitor/internal/aggregator"
	"media_monitor/internal/config"
	"media_monitor/internal/fetcher"
	"media_monitor/internal/logger"
	"media_monitor/internal/metrics"
	"media_monitor/internal/queue"
	"media_monitor/internal/server"
	"media_monitor/internal/watchlist"
	"media_monitor/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the search API and the watchlist refresh loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	defer logger.Log.Info("Application stopped")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	registry := fetcher.BuildRegistry(cfg.Providers, fetcher.Options{
		Timeout:  cfg.Search.ProviderTimeout(),
		Interval: cfg.Search.SubqueryInterval(),
	})
	agg := aggregator.FromConfig(cfg, registry.Providers(), m)
	board := watchlist.NewBoard()

	// Очередь обновлений: RabbitMQ, если задан URL, иначе в памяти процесса
	publisher, subscriber, err := openQueue(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()
	defer subscriber.Close()

	// Запуск воркеров
	wrk := worker.NewWorker(agg, board)
	if err := subscriber.Consume(ctx, wrk.HandleTask); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	// Запуск периодического опроса
	go watchlist.StartPolling(
		ctx,
		publisher,
		cfg.Watchlist.Keywords,
		time.Duration(cfg.Watchlist.PollInterval)*time.Minute,
		cfg.RabbitMQ.Queue,
	)

	// HTTP сервер
	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(agg, board, m)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	logger.Log.Info("Shutting down...")
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

func openQueue(cfg *config.Config) (queue.Publisher, queue.Subscriber, error) {
	if cfg.RabbitMQ.URL == "" {
		logger.Log.Info("RabbitMQ URL not set, using in-process queue")
		local := queue.NewLocalQueue(cfg.RabbitMQ.Queue, 2*len(cfg.Watchlist.Keywords), cfg.RabbitMQ.Workers)
		return local, local, nil
	}

	producer, err := queue.NewProducer(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq producer: %w", err)
	}
	consumer, err := queue.NewConsumer(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, cfg.RabbitMQ.Workers)
	if err != nil {
		producer.Close()
		return nil, nil, fmt.Errorf("rabbitmq consumer: %w", err)
	}
	return producer, consumer, nil
}
