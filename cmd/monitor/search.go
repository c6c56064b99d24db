package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"media_monitor/internal/aggregator"
	"media_monitor/internal/fetcher"
	"media_monitor/internal/logger"
	"media_monitor/internal/server"

	"github.com/spf13/cobra"
)

func searchCmd(configPath *string) *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Run one aggregation and print the ranked results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(*configPath, strings.Join(args, " "), outputJSON)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "print the API response as JSON")
	return cmd
}

func runSearch(configPath, keyword string, outputJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	// stdout занят результатом
	logger.Log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := fetcher.BuildRegistry(cfg.Providers, fetcher.Options{
		Timeout:  cfg.Search.ProviderTimeout(),
		Interval: cfg.Search.SubqueryInterval(),
	})
	agg := aggregator.FromConfig(cfg, registry.Providers(), nil)

	res, err := agg.Aggregate(ctx, keyword)
	if err != nil {
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(server.NewSearchResponse(res))
	}
	return renderTable(os.Stdout, res)
}
