package llm

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"book-gen-ai-api/internal/config"
	apperrors "book-gen-ai-api/pkg/errors"
	"book-gen-ai-api/pkg/logger"
)

// 各提供商共用的调用默认值
const (
	defaultTemperature    = 0.7
	defaultRequestTimeout = 120 * time.Second
)

// Factory 管理多个提供商客户端实例
// 凭证归工厂实例所有，不使用进程级全局状态，便于多实例（含测试）隔离
type Factory struct {
	cfg     config.LLMConfig
	mu      sync.RWMutex
	clients map[string]Client
}

// NewFactory 创建客户端工厂
func NewFactory(cfg *config.Config) *Factory {
	f := &Factory{
		clients: make(map[string]Client),
	}
	if cfg != nil {
		f.cfg = cfg.LLM
	}
	return f
}

// Configure 安装提供商凭证并构建对应客户端
// 各提供商相互独立：单个构建失败不阻止其余提供商的配置；
// 只要有任一失败即返回非 nil 错误，但不暴露逐提供商状态
func (f *Factory) Configure(ctx context.Context, creds Credentials) error {
	var errs []error

	if creds.OpenAIKey != "" {
		providerCfg := f.providerConfig(ProviderOpenAI)
		client, err := NewOpenAIClient(OpenAIOptions{
			APIKey:      creds.OpenAIKey,
			BaseURL:     providerCfg.BaseURL,
			Model:       providerCfg.Model,
			Temperature: providerCfg.Temperature,
			Timeout:     providerCfg.Timeout,
		})
		if err != nil {
			logger.Error(ctx, "failed to configure openai", err)
			errs = append(errs, err)
		} else {
			f.install(ProviderOpenAI, client)
			logger.Info(ctx, "openai configured successfully")
		}
	}

	if creds.GeminiKey != "" {
		providerCfg := f.providerConfig(ProviderGemini)
		client, err := NewGeminiClient(GeminiOptions{
			APIKey:  creds.GeminiKey,
			BaseURL: providerCfg.BaseURL,
			Model:   providerCfg.Model,
			Timeout: providerCfg.Timeout,
		})
		if err != nil {
			logger.Error(ctx, "failed to configure gemini", err)
			errs = append(errs, err)
		} else {
			f.install(ProviderGemini, client)
			logger.Info(ctx, "gemini configured successfully")
		}
	}

	if creds.AnthropicKey != "" {
		providerCfg := f.providerConfig(ProviderAnthropic)
		client, err := NewAnthropicClient(AnthropicOptions{
			APIKey:      creds.AnthropicKey,
			BaseURL:     providerCfg.BaseURL,
			Model:       providerCfg.Model,
			Temperature: providerCfg.Temperature,
			Timeout:     providerCfg.Timeout,
		})
		if err != nil {
			logger.Error(ctx, "failed to configure anthropic", err)
			errs = append(errs, err)
		} else {
			f.install(ProviderAnthropic, client)
			logger.Info(ctx, "anthropic configured successfully")
		}
	}

	if len(errs) > 0 {
		return apperrors.Wrap(errors.Join(errs...), apperrors.CodeConfigureFailed, "failed to configure APIs")
	}
	return nil
}

// Get 获取指定提供商的客户端
// 未知标识返回 CodeUnsupportedProvider；已知但未配置凭证返回 CodeProviderNotConfigured
func (f *Factory) Get(name string) (Client, error) {
	if !IsKnownProvider(name) {
		return nil, apperrors.New(apperrors.CodeUnsupportedProvider, "unsupported provider: "+name)
	}

	f.mu.RLock()
	client, ok := f.clients[name]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.New(apperrors.CodeProviderNotConfigured, "provider not configured: "+name)
	}
	return client, nil
}

// Configured 返回已配置凭证的提供商标识（字典序）
func (f *Factory) Configured() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.clients))
	for name := range f.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// install 安装或替换客户端
func (f *Factory) install(name string, client Client) {
	f.mu.Lock()
	f.clients[name] = client
	f.mu.Unlock()
}

// providerConfig 返回提供商配置，未配置时返回零值（由客户端构造器兜底默认值）
func (f *Factory) providerConfig(name string) config.ProviderConfig {
	if f.cfg.Providers == nil {
		return config.ProviderConfig{}
	}
	return f.cfg.Providers[name]
}
