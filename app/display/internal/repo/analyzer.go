package repo

import (
	"context"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/cache"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// Analyzer 标题分析能力，由 *engine.Engine 实现
type Analyzer interface {
	// Analyze 执行一次标题分析
	Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error)
	// Scrape 抓取 URL 的标题与话题提示
	Scrape(ctx context.Context, rawURL string) (*model.ScrapedArticle, error)
	// Providers 列出可用的提供方
	Providers() []engine.ProviderInfo
	// Stats 缓存统计
	Stats() cache.Stats
}

var _ Analyzer = (*engine.Engine)(nil)
