// Package llm 提供文本生成提供商客户端
package llm

import (
	"context"
)

// 支持的提供商标识
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// KnownProviders 返回全部受支持的提供商标识
func KnownProviders() []string {
	return []string{ProviderOpenAI, ProviderGemini, ProviderAnthropic}
}

// IsKnownProvider 判断提供商标识是否受支持
func IsKnownProvider(name string) bool {
	switch name {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic:
		return true
	default:
		return false
	}
}

// Client 统一的文本生成客户端契约
// 各提供商仅在请求包格式、默认模型与响应字段提取路径上不同
type Client interface {
	// Name 返回提供商标识
	Name() string

	// Generate 以给定 prompt 生成文本，maxTokens 为响应 token 上限
	// 传输层或提供商侧错误统一包装为 CodeGenerationFailed
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Credentials 提供商密钥集合，未出现的键表示不配置该提供商
type Credentials struct {
	OpenAIKey    string `json:"openai_key"`
	GeminiKey    string `json:"gemini_key"`
	AnthropicKey string `json:"anthropic_key"`
}
