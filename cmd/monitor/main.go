// Monitor - сервис мониторинга упоминаний ключевых слов в новостях.
//
// Usage:
//
//	monitor serve               # HTTP API и обновление отслеживаемых ключевых слов
//	monitor search <keyword>    # разовый поиск с выводом таблицы
//	monitor search --json I-Mab # тот же поиск в JSON
package main

import (
	"fmt"
	"os"

	"media_monitor/internal/config"
	"media_monitor/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "monitor",
		Short:         "Multi-source media monitoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "path to JSON or YAML config")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(searchCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig читает .env, конфигурацию и настраивает логгер.
func loadConfig(path string) (*config.Config, error) {
	envErr := godotenv.Load()

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Log.Debugf("No .env file loaded: %v", envErr)
	}
	return cfg, nil
}
