package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/cache"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/config"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/logger"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/prompt"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/provider"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/provider/factory"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/scraper"
)

// Scraper 根据 URL 获取标题与话题提示
type Scraper interface {
	Fetch(ctx context.Context, rawURL string) (*model.ScrapedArticle, error)
}

// Engine 标题分析引擎：校验、解析、构造提示词、查缓存、调用模型
type Engine struct {
	cfg       *config.Config
	scraper   Scraper
	providers map[model.ProviderID]provider.Provider
	cache     *cache.Cache
}

// Option 引擎可选项
type Option func(*Engine)

// WithScraper 替换默认抓取客户端
func WithScraper(s Scraper) Option {
	return func(e *Engine) { e.scraper = s }
}

// WithProviders 替换按配置创建的提供方
func WithProviders(ps ...provider.Provider) Option {
	return func(e *Engine) {
		e.providers = make(map[model.ProviderID]provider.Provider, len(ps))
		for _, p := range ps {
			e.providers[p.ID()] = p
		}
	}
}

// WithCache 使用外部缓存，多个引擎可以共享
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("engine: nil config")
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.scraper == nil {
		e.scraper = scraper.NewClient(cfg.ScraperTimeout(), cfg.Scraper.UserAgent)
	}
	if e.providers == nil {
		e.providers = factory.NewProviders(cfg)
	}
	if e.cache == nil {
		e.cache = cache.New()
	}
	return e, nil
}

// ProviderInfo 提供方概况，供展示层渲染选择框
type ProviderInfo struct {
	ID                model.ProviderID `json:"id"`
	Model             string           `json:"model"`
	SupportsReasoning bool             `json:"supports_reasoning"`
	// Configured 配置中是否已有凭证；请求仍可自带凭证
	Configured bool `json:"configured"`
	Default    bool `json:"default"`
}

// Providers 返回可用的提供方，按固定顺序
func (e *Engine) Providers() []ProviderInfo {
	def := e.defaultProvider()
	out := make([]ProviderInfo, 0, len(e.providers))
	for _, id := range model.Providers {
		p, ok := e.providers[id]
		if !ok {
			continue
		}
		out = append(out, ProviderInfo{
			ID:                id,
			Model:             p.Model(),
			SupportsReasoning: p.SupportsReasoning(),
			Configured:        e.cfg.CredentialFor(id) != "",
			Default:           id == def,
		})
	}
	return out
}

// Stats 缓存统计
func (e *Engine) Stats() cache.Stats {
	return e.cache.Stats()
}

// Scrape 仅抓取 URL，用于先抓取再编辑的交互流程
func (e *Engine) Scrape(ctx context.Context, rawURL string) (*model.ScrapedArticle, error) {
	if _, err := scraper.ValidateURL(rawURL); err != nil {
		return nil, InputError("source url: %v", err)
	}
	art, err := e.scraper.Fetch(ctx, strings.TrimSpace(rawURL))
	if err != nil {
		logger.Log.Warnf("抓取失败: %v", err)
		return nil, scrapeError(err)
	}
	return art, nil
}

// Analyze 执行一次标题分析
func (e *Engine) Analyze(ctx context.Context, req *model.AnalysisRequest) (*model.AnalysisResult, error) {
	if req == nil {
		return nil, InputError("empty request")
	}

	// 1. 校验
	id := e.defaultProvider()
	if req.Provider != "" {
		parsed, err := model.ParseProviderID(string(req.Provider))
		if err != nil {
			return nil, InputError("%v", err)
		}
		id = parsed
	}
	p, ok := e.providers[id]
	if !ok {
		return nil, ConfigError("provider %s is not configured", id)
	}

	sourceURL := strings.TrimSpace(req.SourceURL)
	if sourceURL != "" {
		if _, err := scraper.ValidateURL(sourceURL); err != nil {
			return nil, InputError("source url: %v", err)
		}
	}

	budget := e.cfg.Analyzer.ThinkingBudget
	if req.ThinkingBudget != nil {
		if *req.ThinkingBudget < 0 || *req.ThinkingBudget > model.MaxThinkingBudget {
			return nil, InputError("thinking budget must be within [0, %d], got %d", model.MaxThinkingBudget, *req.ThinkingBudget)
		}
		budget = *req.ThinkingBudget
	}
	if !p.SupportsReasoning() {
		budget = 0
	}

	headline := strings.TrimSpace(req.Headline)
	topic := strings.TrimSpace(req.Topic)
	if sourceURL == "" && headline == "" {
		return nil, InputError("headline is empty")
	}

	credential := req.APIKey
	if credential == "" {
		credential = e.cfg.CredentialFor(id)
	}
	if credential == "" {
		return nil, ConfigError("no API key for provider %s", id)
	}

	// 2. 解析 URL
	var source *model.ScrapedArticle
	if sourceURL != "" {
		art, err := e.scraper.Fetch(ctx, sourceURL)
		if err != nil {
			logger.Log.Warnf("抓取失败: %v", err)
			return nil, scrapeError(err)
		}
		source = art
		headline, topic = e.merge(headline, topic, art)
	}
	if headline == "" {
		return nil, InputError("headline is empty after resolving %s", sourceURL)
	}
	if topic == "" {
		topic = e.defaultTopic()
	}

	// 3. 构造提示词
	mode := prompt.Mode{
		ReasoningLog: budget > 0,
		Verbosity:    prompt.Verbosity(e.cfg.Analyzer.Verbosity),
	}
	text := prompt.Build(headline, topic, mode)
	key := Fingerprint(headline, topic, id, mode, budget)

	// 4. 查缓存，未命中则调用模型
	resp, cached, err := e.cache.GetOrCompute(ctx, key, func(ctx context.Context) (*model.ProviderResponse, error) {
		logger.Log.Infof("调用模型: provider=%s model=%s key=%s", id, p.Model(), short(key))
		return p.Generate(ctx, text, credential, provider.Options{
			ThinkingBudget: budget,
			Timeout:        e.cfg.ProviderTimeout(),
		})
	})
	if err != nil {
		logger.Log.Errorf("分析失败: provider=%s key=%s err=%v", id, short(key), err)
		return nil, providerError(err)
	}
	if cached {
		logger.Log.Infof("命中缓存: provider=%s key=%s", id, short(key))
	}

	return &model.AnalysisResult{
		RawText:        resp.RawText,
		ReasoningTrace: resp.ReasoningTrace,
		Provider:       id,
		Model:          resp.Model,
		Headline:       headline,
		Topic:          topic,
		Source:         source,
		Cached:         cached,
		Fingerprint:    key,
	}, nil
}

// merge 抓取结果只填充空字段；话题为空或为默认值时使用页面提示
func (e *Engine) merge(headline, topic string, art *model.ScrapedArticle) (string, string) {
	if headline == "" && art.Title != scraper.NoTitle {
		headline = strings.TrimSpace(art.Title)
	}
	if topic == "" || topic == e.defaultTopic() {
		if hint := strings.TrimSpace(art.TopicHint); hint != "" && hint != scraper.GeneralContent {
			topic = hint
		}
	}
	return headline, topic
}

func (e *Engine) defaultProvider() model.ProviderID {
	id, err := model.ParseProviderID(e.cfg.Analyzer.DefaultProvider)
	if err != nil {
		return model.GeminiFlash
	}
	return id
}

func (e *Engine) defaultTopic() string {
	if e.cfg.Analyzer.DefaultTopic != "" {
		return e.cfg.Analyzer.DefaultTopic
	}
	return model.DefaultTopic
}

// Fingerprint 缓存键：归一化标题与话题、提供方、模板版本与模式，不包含凭证
func Fingerprint(headline, topic string, id model.ProviderID, mode prompt.Mode, budget int) string {
	parts := []string{
		normalize(headline),
		normalize(topic),
		string(id),
		prompt.Version,
		mode.Signature(),
		"budget=" + strconv.Itoa(budget),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func short(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}
