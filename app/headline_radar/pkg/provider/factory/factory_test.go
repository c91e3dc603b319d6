package factory

import (
	"testing"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/config"
	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

func TestNewProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Gemini.ThinkingModel = "gemini-thinking-test"

	tests := []struct {
		id        model.ProviderID
		model     string
		reasoning bool
	}{
		{model.GeminiFlash, "gemini-2.0-flash", false},
		{model.GeminiThinking, "gemini-thinking-test", true},
		{model.GPT4o, "gpt-4o", false},
	}
	for _, tt := range tests {
		p, err := NewProvider(cfg, tt.id)
		if err != nil {
			t.Fatalf("NewProvider(%s) error = %v", tt.id, err)
		}
		if p.ID() != tt.id || p.Model() != tt.model || p.SupportsReasoning() != tt.reasoning {
			t.Errorf("NewProvider(%s) = %s/%s/%t", tt.id, p.ID(), p.Model(), p.SupportsReasoning())
		}
	}

	if _, err := NewProvider(cfg, "claude"); err == nil {
		t.Error("unknown provider should fail")
	}
}

func TestNewProvidersSkipsIncompleteCompatible(t *testing.T) {
	cfg := config.Default()
	ps := NewProviders(cfg)
	if _, ok := ps[model.Compatible]; ok {
		t.Error("compatible provider without base url should be skipped")
	}
	if len(ps) != 3 {
		t.Errorf("len = %d, want 3", len(ps))
	}

	cfg.Providers.Compatible = config.LLMConfig{BaseURL: "http://llm.local/v1", Model: "qwen-plus"}
	ps = NewProviders(cfg)
	if p, ok := ps[model.Compatible]; !ok || p.Model() != "qwen-plus" {
		t.Errorf("compatible provider = %v", p)
	}
}
