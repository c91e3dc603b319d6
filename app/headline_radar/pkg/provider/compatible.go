package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// CompatibleClient 任意 OpenAI 兼容接口（DeepSeek、Qwen、本地推理服务等）
type CompatibleClient struct {
	baseURL string
	model   string
}

// NewCompatibleClient 创建兼容接口适配器
func NewCompatibleClient(baseURL, modelName string) (*CompatibleClient, error) {
	if baseURL == "" {
		return nil, errors.New("compatible base url is missing")
	}
	if modelName == "" {
		return nil, errors.New("compatible model is missing")
	}
	return &CompatibleClient{baseURL: baseURL, model: modelName}, nil
}

// Ensure CompatibleClient implements Provider
var _ Provider = (*CompatibleClient)(nil)

func (c *CompatibleClient) ID() model.ProviderID { return model.Compatible }

func (c *CompatibleClient) Model() string { return c.model }

func (c *CompatibleClient) SupportsReasoning() bool { return false }

// Generate 通过 eino ChatModel 发送单条用户消息
func (c *CompatibleClient) Generate(ctx context.Context, prompt, credential string, opts Options) (*model.ProviderResponse, error) {
	if credential == "" {
		return nil, &Error{Kind: KindAuth, Provider: model.Compatible, Message: "compatible api key is missing"}
	}

	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: c.baseURL,
		APIKey:  credential,
		Model:   c.model,
		Timeout: opts.Timeout,
	})
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Provider: model.Compatible, Message: "LLM 初始化失败: " + err.Error(), Err: err}
	}

	logger.Log.Debugf("兼容接口请求: base_url=%s model=%s", c.baseURL, c.model)

	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}
	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, fromMessage(model.Compatible, err)
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return nil, malformed(model.Compatible, "empty answer")
	}

	modelName := c.model
	if resp.ResponseMeta != nil && resp.ResponseMeta.FinishReason == "length" {
		logger.Log.Warnf("兼容接口回答因长度被截断: model=%s", modelName)
	}
	return &model.ProviderResponse{
		RawText:    resp.Content,
		ProviderID: model.Compatible,
		Model:      modelName,
	}, nil
}
