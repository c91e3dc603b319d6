package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// GeminiClient Gemini API 适配器；thinking 为 true 时支持推理过程
type GeminiClient struct {
	id       model.ProviderID
	model    string
	baseURL  string
	thinking bool
	client   *http.Client
}

// NewGeminiFlash 单次生成，不返回推理过程
func NewGeminiFlash(modelName, baseURL string) *GeminiClient {
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &GeminiClient{id: model.GeminiFlash, model: modelName, baseURL: baseURL, client: http.DefaultClient}
}

// NewGeminiThinking 带思考预算的生成，预算大于 0 时采集推理过程
func NewGeminiThinking(modelName, baseURL string) *GeminiClient {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiClient{id: model.GeminiThinking, model: modelName, baseURL: baseURL, thinking: true, client: http.DefaultClient}
}

// Ensure GeminiClient implements Provider
var _ Provider = (*GeminiClient)(nil)

func (g *GeminiClient) ID() model.ProviderID { return g.id }

func (g *GeminiClient) Model() string { return g.model }

func (g *GeminiClient) SupportsReasoning() bool { return g.thinking }

// Generate 调用 generateContent
func (g *GeminiClient) Generate(ctx context.Context, prompt, credential string, opts Options) (*model.ProviderResponse, error) {
	if credential == "" {
		return nil, &Error{Kind: KindAuth, Provider: g.id, Message: "gemini api key is missing"}
	}

	ctx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()

	cc := &genai.ClientConfig{
		APIKey:     credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.client,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, &Error{Kind: KindAuth, Provider: g.id, Message: "create gemini client failed: " + err.Error(), Err: err}
	}

	capture := g.thinking && opts.ThinkingBudget > 0
	gcfg := &genai.GenerateContentConfig{}
	if capture {
		budget := int32(min(opts.ThinkingBudget, model.MaxThinkingBudget))
		gcfg.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: true,
			ThinkingBudget:  &budget,
		}
	}

	logger.Log.Debugf("Gemini 请求: model=%s thinking_budget=%d", g.model, opts.ThinkingBudget)

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), gcfg)
	if err != nil {
		return nil, g.classify(err)
	}

	text, thoughts, err := g.splitParts(resp)
	if err != nil {
		return nil, err
	}

	out := &model.ProviderResponse{
		RawText:    text,
		ProviderID: g.id,
		Model:      g.model,
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if capture && thoughts != "" {
		out.ReasoningTrace = &thoughts
	}
	return out, nil
}

// splitParts 拆分正文与思考片段
func (g *GeminiClient) splitParts(resp *genai.GenerateContentResponse) (string, string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", "", malformed(g.id, "prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", "", malformed(g.id, "no candidates in response")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", "", malformed(g.id, "candidate has no content (finish reason %s)", cand.FinishReason)
	}

	var text, thoughts strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Text == "" {
			continue
		}
		if part.Thought {
			thoughts.WriteString(part.Text)
			continue
		}
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", "", malformed(g.id, "empty answer (finish reason %s)", cand.FinishReason)
	}
	return text.String(), strings.TrimSpace(thoughts.String()), nil
}

func (g *GeminiClient) classify(err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: kindForStatus(apiErr.Code, apiErr.Message), Provider: g.id, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &Error{Kind: kindForStatus(apiErrPtr.Code, apiErrPtr.Message), Provider: g.id, StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, Err: err}
	}
	return fromMessage(g.id, err)
}
