package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTopic 未指定话题时使用的默认值
const DefaultTopic = "General"

// MaxThinkingBudget 思考 token 预算上限
const MaxThinkingBudget = 32768

// ProviderID 模型提供方标识
type ProviderID string

const (
	GeminiFlash    ProviderID = "gemini-flash"
	GeminiThinking ProviderID = "gemini-thinking"
	GPT4o          ProviderID = "gpt-4o"
	Compatible     ProviderID = "compatible" // 任意 OpenAI 兼容接口
)

// Providers 所有支持的提供方，顺序即展示顺序
var Providers = []ProviderID{GeminiFlash, GeminiThinking, GPT4o, Compatible}

// ParseProviderID 解析提供方标识，大小写与下划线不敏感
func ParseProviderID(s string) (ProviderID, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	for _, p := range Providers {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider: %q", s)
}

// AnalysisRequest 一次标题分析请求
type AnalysisRequest struct {
	Headline  string     `json:"headline"`
	Topic     string     `json:"topic"`
	SourceURL string     `json:"source_url,omitempty"`
	Provider  ProviderID `json:"provider"`
	// ThinkingBudget 思考 token 预算，nil 表示未设置
	ThinkingBudget *int `json:"thinking_budget,omitempty"`
	// APIKey 调用方直接提供的凭证，优先于配置；不记录日志，不参与缓存键
	APIKey string `json:"-"`
}

// ScrapedArticle 从 URL 抓取到的标题信息，生成后只读
type ScrapedArticle struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	TopicHint string `json:"topic_hint"`
	SiteName  string `json:"site_name,omitempty"`
	Excerpt   string `json:"excerpt,omitempty"`
}

// ProviderResponse 模型提供方的原始回答
type ProviderResponse struct {
	RawText        string     `json:"raw_text"`
	ReasoningTrace *string    `json:"reasoning_trace,omitempty"` // 仅支持推理过程的提供方填充
	ProviderID     ProviderID `json:"provider_id"`
	Model          string     `json:"model"`
}

// CacheEntry 缓存条目
type CacheEntry struct {
	Key       string
	Value     ProviderResponse
	CreatedAt time.Time
}

// AnalysisResult 返回给展示层的分析结果
type AnalysisResult struct {
	RawText        string          `json:"raw_text"`
	ReasoningTrace *string         `json:"reasoning_trace,omitempty"`
	Provider       ProviderID      `json:"provider"`
	Model          string          `json:"model"`
	Headline       string          `json:"headline"`
	Topic          string          `json:"topic"`
	Source         *ScrapedArticle `json:"source,omitempty"`
	Cached         bool            `json:"cached"`
	Fingerprint    string          `json:"fingerprint"`
}
