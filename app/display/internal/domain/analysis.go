package domain

import (
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/cache"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// AnalyzeReq 分析请求，api_key 为空时使用服务端配置的凭证
type AnalyzeReq struct {
	Headline       string `json:"headline"`
	Topic          string `json:"topic"`
	SourceURL      string `json:"source_url"`
	Provider       string `json:"provider"`
	ThinkingBudget *int   `json:"thinking_budget,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
}

// ToModel 转换为引擎请求
func (r *AnalyzeReq) ToModel() *model.AnalysisRequest {
	return &model.AnalysisRequest{
		Headline:       r.Headline,
		Topic:          r.Topic,
		SourceURL:      r.SourceURL,
		Provider:       model.ProviderID(r.Provider),
		ThinkingBudget: r.ThinkingBudget,
		APIKey:         r.APIKey,
	}
}

// AnalyzeReply 分析结果
type AnalyzeReply struct {
	*model.AnalysisResult
}

// ScrapeReq 抓取请求
type ScrapeReq struct {
	URL string `json:"url"`
}

// ScrapeReply 抓取结果，用户可以在分析前修改
type ScrapeReply struct {
	*model.ScrapedArticle
}

// ProvidersReply 可用提供方列表
type ProvidersReply struct {
	Providers []engine.ProviderInfo `json:"providers"`
}

// StatsReply 缓存统计
type StatsReply struct {
	cache.Stats
}
