package conf

type Bootstrap struct {
	Server   *Server
	Analyzer *Analyzer
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Analyzer 标题分析引擎配置，凭证也可以只通过环境变量提供
type Analyzer struct {
	Providers       *Providers `json:"providers"`
	DefaultProvider string     `json:"default_provider"`
	DefaultTopic    string     `json:"default_topic"`
	ProviderTimeout int32      `json:"provider_timeout"`
	Verbosity       string     `json:"verbosity"`
	ThinkingBudget  int32      `json:"thinking_budget"`
	Scraper         *Scraper   `json:"scraper"`
	Log             *Log       `json:"log"`
}

type Providers struct {
	Gemini     *Gemini `json:"gemini"`
	Openai     *LLM    `json:"openai"`
	Compatible *LLM    `json:"compatible"`
}

type Gemini struct {
	ApiKey        string `json:"api_key"`
	BaseUrl       string `json:"base_url"`
	FlashModel    string `json:"flash_model"`
	ThinkingModel string `json:"thinking_model"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

type Scraper struct {
	Timeout   int32  `json:"timeout"`
	UserAgent string `json:"user_agent"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
