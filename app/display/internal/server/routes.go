package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/headline_radar/app/display/internal/domain"
)

const (
	OperationAnalyzerAnalyze       = "/headline_radar.v1.Analyzer/Analyze"
	OperationAnalyzerScrape        = "/headline_radar.v1.Analyzer/Scrape"
	OperationAnalyzerListProviders = "/headline_radar.v1.Analyzer/ListProviders"
	OperationAnalyzerGetStats      = "/headline_radar.v1.Analyzer/GetStats"
)

// AnalyzerHTTPServer 分析服务的 HTTP 接口
type AnalyzerHTTPServer interface {
	Analyze(context.Context, *domain.AnalyzeReq) (*domain.AnalyzeReply, error)
	Scrape(context.Context, *domain.ScrapeReq) (*domain.ScrapeReply, error)
	ListProviders(context.Context) (*domain.ProvidersReply, error)
	GetStats(context.Context) (*domain.StatsReply, error)
}

func RegisterAnalyzerHTTPServer(s *http.Server, srv AnalyzerHTTPServer) {
	r := s.Route("/")
	r.POST("/v1/analyze", _Analyzer_Analyze_HTTP_Handler(srv))
	r.POST("/v1/scrape", _Analyzer_Scrape_HTTP_Handler(srv))
	r.GET("/v1/providers", _Analyzer_ListProviders_HTTP_Handler(srv))
	r.GET("/v1/stats", _Analyzer_GetStats_HTTP_Handler(srv))
}

func _Analyzer_Analyze_HTTP_Handler(srv AnalyzerHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.AnalyzeReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationAnalyzerAnalyze)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Analyze(ctx, req.(*domain.AnalyzeReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*domain.AnalyzeReply))
	}
}

func _Analyzer_Scrape_HTTP_Handler(srv AnalyzerHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in domain.ScrapeReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationAnalyzerScrape)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.Scrape(ctx, req.(*domain.ScrapeReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*domain.ScrapeReply))
	}
}

func _Analyzer_ListProviders_HTTP_Handler(srv AnalyzerHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationAnalyzerListProviders)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListProviders(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*domain.ProvidersReply))
	}
}

func _Analyzer_GetStats_HTTP_Handler(srv AnalyzerHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		http.SetOperation(ctx, OperationAnalyzerGetStats)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GetStats(ctx)
		})
		out, err := h(ctx, nil)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*domain.StatsReply))
	}
}
