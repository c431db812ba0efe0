// Package main печатает статистику по блогам: сумму лайков, самого
// плодовитого автора и автора с наибольшим числом лайков.
//
// Блоги читаются из хранилища, настроенного переменными BLOGLIST_*, или из
// JSON файла, переданного флагом -input.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"bloglist/internal/app"
	"bloglist/internal/config"
	"bloglist/internal/db"
	"bloglist/internal/domain/analytics"
	"bloglist/internal/domain/entities"
	"bloglist/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger  = "failed to initialize logger"
	ErrLoadConfig  = "failed to load configuration"
	ErrInitStorage = "failed to initialize storage"
	ErrReadInput   = "failed to read blogs file"
	ErrSummarize   = "failed to summarize blogs"
	ErrWriteReport = "failed to write report"
)

// statsConfig - часть конфигурации, нужная для чтения хранилища.
type statsConfig struct {
	Storage  config.StorageConfig
	Postgres config.PostgresConfig
	Logging  config.LoggingConfig
}

func main() {
	input := flag.String("input", "", "JSON file with an array of blogs; the configured storage is used when empty")
	flag.Parse()

	var cfg statsConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", ErrLoadConfig, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)
	defer func() { _ = log.Sync() }()

	ctx := logger.NewRequestIDContext(context.Background(), "")

	report, err := buildReport(ctx, cfg, *input)
	if err != nil {
		log.Error(ctx, ErrSummarize, zap.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		log.Error(ctx, ErrWriteReport, zap.Error(err))
		os.Exit(1)
	}
}

func buildReport(ctx context.Context, cfg statsConfig, input string) (analytics.Report, error) {
	if strings.TrimSpace(input) != "" {
		raw, err := os.ReadFile(input)
		if err != nil {
			return analytics.Report{}, fmt.Errorf("%s: %w", ErrReadInput, err)
		}
		var blogs []*entities.Blog
		if err := json.Unmarshal(raw, &blogs); err != nil {
			return analytics.Report{}, fmt.Errorf("%s: %w", ErrReadInput, err)
		}
		return analytics.Summarize(analytics.FromBlogs(blogs)), nil
	}

	storage, err := db.Open(ctx, &config.Config{Storage: cfg.Storage, Postgres: cfg.Postgres})
	if err != nil {
		return analytics.Report{}, fmt.Errorf("%s: %w", ErrInitStorage, err)
	}
	defer storage.Close(ctx)

	return app.NewStatsUseCase(storage.Blogs).Summarize(ctx)
}
