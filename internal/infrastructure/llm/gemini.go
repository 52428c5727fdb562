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
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	defaultGeminiModel   = "gemini-pro"
)

// GeminiClient 基于 Generative Language REST API 的客户端
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// GeminiOptions Gemini 客户端配置
type GeminiOptions struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewGeminiClient 创建 Gemini 客户端
func NewGeminiClient(opts GeminiOptions) (*GeminiClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, apperrors.New(apperrors.CodeProviderNotConfigured, "gemini api key is empty")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &GeminiClient{
		apiKey:  opts.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

// generateContent 请求/响应包格式
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Name 返回提供商标识
func (c *GeminiClient) Name() string {
	return ProviderGemini
}

// Generate 调用 generateContent 接口生成文本
// Gemini 不下发 token 上限，与其余提供商不同
func (c *GeminiClient) Generate(ctx context.Context, prompt string, _ int) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "gemini generation failed")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "gemini generation failed")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.LLMCallDuration.WithLabelValues(ProviderGemini, c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderGemini, c.model, "error").Inc()
		logger.Error(ctx, "gemini api error", err, "provider", ProviderGemini)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "gemini generation failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(snippet))
		metrics.LLMCallTotal.WithLabelValues(ProviderGemini, c.model, "error").Inc()
		logger.Error(ctx, "gemini api error", err, "provider", ProviderGemini)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "gemini generation failed")
	}

	var genResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		metrics.LLMCallTotal.WithLabelValues(ProviderGemini, c.model, "error").Inc()
		logger.Error(ctx, "gemini api error", err, "provider", ProviderGemini)
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "gemini generation failed")
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		metrics.LLMCallTotal.WithLabelValues(ProviderGemini, c.model, "error").Inc()
		return "", apperrors.New(apperrors.CodeGenerationFailed, "gemini generation failed").
			WithDetail("empty candidates in response")
	}

	metrics.LLMCallTotal.WithLabelValues(ProviderGemini, c.model, "ok").Inc()
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
