package provider

import (
	"context"
	"time"

	"github.com/iWorld-y/headline_radar/app/headline_radar/pkg/model"
)

// Provider 定义通用的生成接口，每个模型后端一个实现
type Provider interface {
	// ID 提供方标识
	ID() model.ProviderID
	// Model 实际调用的模型名称
	Model() string
	// SupportsReasoning 是否可能返回推理过程，由类型声明而非运行时探测
	SupportsReasoning() bool
	// Generate 发送提示词并返回回答；失败时返回 *Error，不做任何重试
	Generate(ctx context.Context, prompt, credential string, opts Options) (*model.ProviderResponse, error)
}

// Options 单次调用选项
type Options struct {
	// ThinkingBudget 思考 token 预算，0 表示不采集推理过程
	ThinkingBudget int
	// Timeout 单次调用超时，0 表示只受 ctx 约束
	Timeout time.Duration
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
