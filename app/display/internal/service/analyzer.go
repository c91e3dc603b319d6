package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/headline_radar/app/display/internal/domain"
	"github.com/iWorld-y/headline_radar/app/display/internal/usecase"
)

type AnalyzerService struct {
	uc  *usecase.AnalysisUseCase
	log *log.Helper
}

func NewAnalyzerService(uc *usecase.AnalysisUseCase, logger log.Logger) *AnalyzerService {
	return &AnalyzerService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *AnalyzerService) Analyze(ctx context.Context, req *domain.AnalyzeReq) (*domain.AnalyzeReply, error) {
	return s.uc.Analyze(ctx, req)
}

func (s *AnalyzerService) Scrape(ctx context.Context, req *domain.ScrapeReq) (*domain.ScrapeReply, error) {
	return s.uc.Scrape(ctx, req)
}

func (s *AnalyzerService) ListProviders(ctx context.Context) (*domain.ProvidersReply, error) {
	return s.uc.Providers(ctx), nil
}

func (s *AnalyzerService) GetStats(ctx context.Context) (*domain.StatsReply, error) {
	return s.uc.Stats(ctx), nil
}
