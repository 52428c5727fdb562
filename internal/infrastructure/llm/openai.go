package llm

import (
	"context"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	apperrors "book-gen-ai-api/pkg/errors"
	"book-gen-ai-api/pkg/logger"
	"book-gen-ai-api/pkg/metrics"
)

const (
	defaultOpenAIModel = "gpt-4"

	// 所有 OpenAI 调用共用的 system 提示
	openAISystemPrompt = "You are a professional book writer. Create engaging, well-structured content."
)

// OpenAIClient 基于官方 openai-go SDK 的客户端（chat completions）
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// OpenAIOptions OpenAI 客户端配置
type OpenAIOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewOpenAIClient 创建 OpenAI 客户端
func NewOpenAIClient(opts OpenAIOptions) (*OpenAIClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, apperrors.New(apperrors.CodeProviderNotConfigured, "openai api key is empty")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	return &OpenAIClient{
		client:      openai.NewClient(reqOpts...),
		model:       model,
		temperature: temperature,
	}, nil
}

// Name 返回提供商标识
func (c *OpenAIClient) Name() string {
	return ProviderOpenAI
}

// Generate 调用 chat completions 接口生成文本
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	start := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(c.temperature),
	})
	metrics.LLMCallDuration.WithLabelValues(ProviderOpenAI, c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderOpenAI, c.model, "error").Inc()
		logger.Error(ctx, "openai api error", err, "provider", ProviderOpenAI)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "openai generation failed")
	}
	if len(resp.Choices) == 0 {
		metrics.LLMCallTotal.WithLabelValues(ProviderOpenAI, c.model, "error").Inc()
		return "", apperrors.New(apperrors.CodeGenerationFailed, "openai generation failed").
			WithDetail("empty choices in response")
	}

	metrics.LLMCallTotal.WithLabelValues(ProviderOpenAI, c.model, "ok").Inc()
	return resp.Choices[0].Message.Content, nil
}
