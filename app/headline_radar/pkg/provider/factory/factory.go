package factory

import (
	"fmt"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/config"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/provider"
)

// NewProvider 根据配置创建指定的提供方实例
func NewProvider(cfg *config.Config, id model.ProviderID) (provider.Provider, error) {
	p := cfg.Providers
	switch id {
	case model.GeminiFlash:
		return provider.NewGeminiFlash(p.Gemini.FlashModel, p.Gemini.BaseURL), nil

	case model.GeminiThinking:
		return provider.NewGeminiThinking(p.Gemini.ThinkingModel, p.Gemini.BaseURL), nil

	case model.GPT4o:
		return provider.NewOpenAIClient(p.OpenAI.Model, p.OpenAI.BaseURL), nil

	case model.Compatible:
		return provider.NewCompatibleClient(p.Compatible.BaseURL, p.Compatible.Model)

	default:
		return nil, fmt.Errorf("unknown provider: %s", id)
	}
}

// NewProviders 创建所有可用的提供方；配置不完整的提供方被跳过
func NewProviders(cfg *config.Config) map[model.ProviderID]provider.Provider {
	out := make(map[model.ProviderID]provider.Provider, len(model.Providers))
	for _, id := range model.Providers {
		p, err := NewProvider(cfg, id)
		if err != nil {
			logger.Log.Infof("跳过提供方 [%s]: %v", id, err)
			continue
		}
		out[id] = p
	}
	return out
}
