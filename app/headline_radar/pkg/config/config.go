package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// 环境变量中的凭证优先于配置文件
const (
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvCompatibleAPIKey = "COMPATIBLE_API_KEY"
	EnvLogLevel         = "HEADLINE_RADAR_LOG_LEVEL"
)

// Config 项目配置结构体
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Log       LogConfig       `yaml:"log"`
}

// ProvidersConfig 各模型提供方配置
type ProvidersConfig struct {
	Gemini     GeminiConfig `yaml:"gemini"`
	OpenAI     LLMConfig    `yaml:"openai"`
	Compatible LLMConfig    `yaml:"compatible"`
}

// GeminiConfig Gemini 相关配置，Flash 与 Thinking 共用同一个凭证
type GeminiConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	FlashModel    string `yaml:"flash_model"`
	ThinkingModel string `yaml:"thinking_model"`
}

// LLMConfig OpenAI 协议的 LLM 配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// AnalyzerConfig 分析流程配置
type AnalyzerConfig struct {
	DefaultProvider string `yaml:"default_provider"`
	DefaultTopic    string `yaml:"default_topic"`
	// ProviderTimeout 单次模型调用超时（秒）
	ProviderTimeout int    `yaml:"provider_timeout"`
	Verbosity       string `yaml:"verbosity"` // concise or detailed
	ThinkingBudget  int    `yaml:"thinking_budget"`
}

// ScraperConfig 抓取配置
type ScraperConfig struct {
	Timeout   int    `yaml:"timeout"` // 秒
	UserAgent string `yaml:"user_agent"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig 从指定路径加载配置；path 为空时仅使用默认值与环境变量
func LoadConfig(path string) (*Config, error) {
	// .env 只用于本地开发，不存在时忽略
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Complete(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Complete 应用环境变量与默认值并校验，供其他来源构造的配置使用
func (c *Config) Complete() error {
	c.ApplyEnv()
	c.applyDefaults()
	return c.Validate()
}

// ApplyEnv 用环境变量覆盖凭证与日志级别
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.Providers.Gemini.APIKey = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		c.Providers.OpenAI.APIKey = v
	}
	if v := os.Getenv(EnvCompatibleAPIKey); v != "" {
		c.Providers.Compatible.APIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.Providers.Gemini.FlashModel == "" {
		c.Providers.Gemini.FlashModel = "gemini-2.0-flash"
	}
	if c.Providers.Gemini.ThinkingModel == "" {
		c.Providers.Gemini.ThinkingModel = "gemini-2.5-flash"
	}
	if c.Providers.OpenAI.Model == "" {
		c.Providers.OpenAI.Model = "gpt-4o"
	}
	if c.Analyzer.DefaultProvider == "" {
		c.Analyzer.DefaultProvider = string(model.GeminiFlash)
	}
	if c.Analyzer.DefaultTopic == "" {
		c.Analyzer.DefaultTopic = model.DefaultTopic
	}
	if c.Analyzer.ProviderTimeout <= 0 {
		c.Analyzer.ProviderTimeout = 60
	}
	if c.Analyzer.Verbosity == "" {
		c.Analyzer.Verbosity = "concise"
	}
	if c.Scraper.Timeout <= 0 {
		c.Scraper.Timeout = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate 校验配置中不依赖网络的部分
func (c *Config) Validate() error {
	if _, err := model.ParseProviderID(c.Analyzer.DefaultProvider); err != nil {
		return fmt.Errorf("analyzer.default_provider: %w", err)
	}
	switch c.Analyzer.Verbosity {
	case "concise", "detailed":
	default:
		return fmt.Errorf("analyzer.verbosity must be concise or detailed, got %q", c.Analyzer.Verbosity)
	}
	if c.Analyzer.ThinkingBudget < 0 || c.Analyzer.ThinkingBudget > model.MaxThinkingBudget {
		return fmt.Errorf("analyzer.thinking_budget must be within [0, %d], got %d", model.MaxThinkingBudget, c.Analyzer.ThinkingBudget)
	}
	return nil
}

// ProviderTimeout 模型调用超时
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Analyzer.ProviderTimeout) * time.Second
}

// ScraperTimeout 抓取超时
func (c *Config) ScraperTimeout() time.Duration {
	return time.Duration(c.Scraper.Timeout) * time.Second
}

// CredentialFor 返回提供方在配置中的凭证，可能为空
func (c *Config) CredentialFor(p model.ProviderID) string {
	switch p {
	case model.GeminiFlash, model.GeminiThinking:
		return c.Providers.Gemini.APIKey
	case model.GPT4o:
		return c.Providers.OpenAI.APIKey
	case model.Compatible:
		return c.Providers.Compatible.APIKey
	}
	return ""
}
