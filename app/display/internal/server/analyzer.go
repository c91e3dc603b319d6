package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/headline_radar/app/display/internal/conf"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/config"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/engine"
	hrLogger "github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
)

// NewAnalyzerEngine 初始化 headline_radar 引擎
func NewAnalyzerEngine(c *conf.Analyzer, logger log.Logger) (*engine.Engine, func(), error) {
	hrCfg := ToConfig(c)
	if err := hrCfg.Complete(); err != nil {
		log.NewHelper(logger).Errorf("Invalid analyzer config: %v", err)
		return nil, nil, err
	}

	// 初始化日志
	if err := hrLogger.InitLogger(hrCfg.Log.Level, hrCfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init headline_radar logger: %v", err)
		_ = hrLogger.InitLogger("info", "") // 降级处理
	}

	// 初始化核心引擎
	eng, err := engine.NewEngine(hrCfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		st := eng.Stats()
		log.NewHelper(logger).Infof("Cleaning up headline_radar engine: entries=%d hits=%d misses=%d", st.Entries, st.Hits, st.Misses)
	}

	return eng, cleanup, nil
}

// ToConfig 将 internal/conf.Analyzer 转换为 pkg/config.Config，未填写的部分保持零值
func ToConfig(c *conf.Analyzer) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		return cfg
	}

	cfg.Analyzer = config.AnalyzerConfig{
		DefaultProvider: c.DefaultProvider,
		DefaultTopic:    c.DefaultTopic,
		ProviderTimeout: int(c.ProviderTimeout),
		Verbosity:       c.Verbosity,
		ThinkingBudget:  int(c.ThinkingBudget),
	}
	if p := c.Providers; p != nil {
		if g := p.Gemini; g != nil {
			cfg.Providers.Gemini = config.GeminiConfig{
				APIKey:        g.ApiKey,
				BaseURL:       g.BaseUrl,
				FlashModel:    g.FlashModel,
				ThinkingModel: g.ThinkingModel,
			}
		}
		if o := p.Openai; o != nil {
			cfg.Providers.OpenAI = config.LLMConfig{BaseURL: o.BaseUrl, APIKey: o.ApiKey, Model: o.Model}
		}
		if o := p.Compatible; o != nil {
			cfg.Providers.Compatible = config.LLMConfig{BaseURL: o.BaseUrl, APIKey: o.ApiKey, Model: o.Model}
		}
	}
	if s := c.Scraper; s != nil {
		cfg.Scraper = config.ScraperConfig{Timeout: int(s.Timeout), UserAgent: s.UserAgent}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	return cfg
}
