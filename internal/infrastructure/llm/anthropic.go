package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "book-gen-ai-api/pkg/errors"
	"book-gen-ai-api/pkg/logger"
	"book-gen-ai-api/pkg/metrics"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-sonnet-20240229"
	anthropicVersion        = "2023-06-01"
)

// AnthropicClient 基于 Messages REST API 的客户端
type AnthropicClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

// AnthropicOptions Anthropic 客户端配置
type AnthropicOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// NewAnthropicClient 创建 Anthropic 客户端
func NewAnthropicClient(opts AnthropicOptions) (*AnthropicClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, apperrors.New(apperrors.CodeProviderNotConfigured, "anthropic api key is empty")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultAnthropicBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultAnthropicModel
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &AnthropicClient{
		apiKey:      opts.APIKey,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		client:      &http.Client{Timeout: timeout},
	}, nil
}

// messages 请求/响应包格式
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Name 返回提供商标识
func (c *AnthropicClient) Name() string {
	return ProviderAnthropic
}

// Generate 调用 messages 接口生成文本
func (c *AnthropicClient) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: c.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "anthropic generation failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "anthropic generation failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.LLMCallDuration.WithLabelValues(ProviderAnthropic, c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderAnthropic, c.model, "error").Inc()
		logger.Error(ctx, "anthropic api error", err, "provider", ProviderAnthropic)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "anthropic generation failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("anthropic returned status %d: %s", resp.StatusCode, string(snippet))
		metrics.LLMCallTotal.WithLabelValues(ProviderAnthropic, c.model, "error").Inc()
		logger.Error(ctx, "anthropic api error", err, "provider", ProviderAnthropic)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "anthropic generation failed")
	}

	var genResp anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderAnthropic, c.model, "error").Inc()
		logger.Error(ctx, "anthropic api error", err, "provider", ProviderAnthropic)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "anthropic generation failed")
	}
	if len(genResp.Content) == 0 {
		metrics.LLMCallTotal.WithLabelValues(ProviderAnthropic, c.model, "error").Inc()
		return "", apperrors.New(apperrors.CodeGenerationFailed, "anthropic generation failed").
			WithDetail("empty content in response")
	}

	metrics.LLMCallTotal.WithLabelValues(ProviderAnthropic, c.model, "ok").Inc()
	return genResp.Content[0].Text, nil
}
