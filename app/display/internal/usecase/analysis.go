package usecase

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/headline_radar/app/display/internal/domain"
	"github.com/iWorld-y/headline_radar/app/display/internal/repo"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
)

// AnalysisUseCase 标题分析业务逻辑
type AnalysisUseCase struct {
	analyzer repo.Analyzer
	log      *log.Helper
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(analyzer repo.Analyzer, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{analyzer: analyzer, log: log.NewHelper(logger)}
}

// Analyze 分析标题，失败时记录面向用户的提示
func (uc *AnalysisUseCase) Analyze(ctx context.Context, req *domain.AnalyzeReq) (*domain.AnalyzeReply, error) {
	res, err := uc.analyzer.Analyze(ctx, req.ToModel())
	if err != nil {
		uc.log.WithContext(ctx).Warnf("analyze failed: %s", engine.UserMessage(err))
		return nil, err
	}
	uc.log.WithContext(ctx).Infof("analyzed headline: provider=%s cached=%t", res.Provider, res.Cached)
	return &domain.AnalyzeReply{AnalysisResult: res}, nil
}

// Scrape 抓取 URL，供先抓取再编辑的流程使用
func (uc *AnalysisUseCase) Scrape(ctx context.Context, req *domain.ScrapeReq) (*domain.ScrapeReply, error) {
	art, err := uc.analyzer.Scrape(ctx, req.URL)
	if err != nil {
		uc.log.WithContext(ctx).Warnf("scrape failed: %s", engine.UserMessage(err))
		return nil, err
	}
	return &domain.ScrapeReply{ScrapedArticle: art}, nil
}

// Providers 列出可用提供方
func (uc *AnalysisUseCase) Providers(ctx context.Context) *domain.ProvidersReply {
	return &domain.ProvidersReply{Providers: uc.analyzer.Providers()}
}

// Stats 返回缓存统计
func (uc *AnalysisUseCase) Stats(ctx context.Context) *domain.StatsReply {
	return &domain.StatsReply{Stats: uc.analyzer.Stats()}
}
