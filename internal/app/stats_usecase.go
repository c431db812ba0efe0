package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bloglist/internal/domain/analytics"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	methodSummarize = "Summarize"

	msgStatsReady     = "blog statistics computed"
	msgErrLoadingStat = "failed to load blogs for statistics"

	errCtxSummarizing = "summarizing blogs"
)

// StatsUseCase считает статистику по всем блогам хранилища.
type StatsUseCase struct {
	blogRepo repositories.BlogRepository
}

// NewStatsUseCase создает сервис статистики.
func NewStatsUseCase(blogRepo repositories.BlogRepository) *StatsUseCase {
	return &StatsUseCase{blogRepo: blogRepo}
}

// Summarize загружает блоги и возвращает отчет.
func (uc *StatsUseCase) Summarize(ctx context.Context) (analytics.Report, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSummarize))

	blogs, err := uc.blogRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrLoadingStat, zap.Error(err))
		return analytics.Report{}, fmt.Errorf("%s: %w", errCtxSummarizing, err)
	}

	report := analytics.Summarize(analytics.FromBlogs(blogs))
	log.Info(ctx, msgStatsReady, zap.Int("blogs", report.Blogs), zap.Int("totalLikes", report.TotalLikes))
	return report, nil
}
