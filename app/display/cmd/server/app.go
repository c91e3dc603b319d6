package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/headline_radar/app/display/internal/conf"
	"github.com/iWorld-y/headline_radar/app/display/internal/server"
	"github.com/iWorld-y/headline_radar/app/display/internal/service"
	"github.com/iWorld-y/headline_radar/app/display/internal/usecase"
)

// initApp 组装依赖：引擎 → 业务逻辑 → 服务 → HTTP 服务器
func initApp(confServer *conf.Server, confAnalyzer *conf.Analyzer, logger log.Logger) (*kratos.App, func(), error) {
	eng, cleanup, err := server.NewAnalyzerEngine(confAnalyzer, logger)
	if err != nil {
		return nil, nil, err
	}
	analysisUseCase := usecase.NewAnalysisUseCase(eng, logger)
	analyzerService := service.NewAnalyzerService(analysisUseCase, logger)
	httpServer := server.NewHTTPServer(confServer, analyzerService, logger)
	app := newApp(logger, httpServer)
	return app, cleanup, nil
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}
