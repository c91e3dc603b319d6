package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// OpenAIClient GPT-4o 对话补全适配器
type OpenAIClient struct {
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient 创建 GPT-4o 适配器，baseURL 为空时使用官方地址
func NewOpenAIClient(modelName, baseURL string) *OpenAIClient {
	if modelName == "" {
		modelName = "gpt-4o"
	}
	return &OpenAIClient{model: modelName, baseURL: baseURL, client: http.DefaultClient}
}

// Ensure OpenAIClient implements Provider
var _ Provider = (*OpenAIClient)(nil)

func (c *OpenAIClient) ID() model.ProviderID { return model.GPT4o }

func (c *OpenAIClient) Model() string { return c.model }

func (c *OpenAIClient) SupportsReasoning() bool { return false }

// Generate 单轮对话补全，SDK 自带的重试被关闭
func (c *OpenAIClient) Generate(ctx context.Context, prompt, credential string, opts Options) (*model.ProviderResponse, error) {
	if credential == "" {
		return nil, &Error{Kind: KindAuth, Provider: model.GPT4o, Message: "openai api key is missing"}
	}

	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	reqOpts := []option.RequestOption{
		option.WithAPIKey(credential),
		option.WithMaxRetries(0),
		option.WithHTTPClient(c.client),
	}
	if c.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(c.baseURL))
	}
	client := openai.NewClient(reqOpts...)

	logger.Log.Debugf("OpenAI 请求: model=%s", c.model)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := apiErr.Message
			if msg == "" {
				msg = err.Error()
			}
			return nil, &Error{Kind: kindForStatus(apiErr.StatusCode, msg), Provider: model.GPT4o, StatusCode: apiErr.StatusCode, Message: msg, Err: err}
		}
		return nil, fromMessage(model.GPT4o, err)
	}

	if len(resp.Choices) == 0 {
		return nil, malformed(model.GPT4o, "no choices in response")
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return nil, malformed(model.GPT4o, "empty answer (finish reason %s)", resp.Choices[0].FinishReason)
	}

	modelName := c.model
	if resp.Model != "" {
		modelName = resp.Model
	}
	return &model.ProviderResponse{
		RawText:    content,
		ProviderID: model.GPT4o,
		Model:      modelName,
	}, nil
}
