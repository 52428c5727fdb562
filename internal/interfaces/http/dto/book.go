package dto

import (
	"book-gen-ai-api/internal/domain/entity"
	"book-gen-ai-api/internal/infrastructure/llm"
)

// ConfigureAPIsRequest 提供商凭证配置请求，所有键可选
type ConfigureAPIsRequest struct {
	OpenAIKey    string `json:"openai_key"`
	GeminiKey    string `json:"gemini_key"`
	AnthropicKey string `json:"anthropic_key"`
}

// ToCredentials 转换为提供商凭证集合
func (r *ConfigureAPIsRequest) ToCredentials() llm.Credentials {
	return llm.Credentials{
		OpenAIKey:    r.OpenAIKey,
		GeminiKey:    r.GeminiKey,
		AnthropicKey: r.AnthropicKey,
	}
}

// ConfigureAPIsResponse 凭证配置响应
type ConfigureAPIsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OutlineRequest 大纲生成请求
type OutlineRequest struct {
	Provider string          `json:"provider" binding:"required"`
	BookData entity.BookSpec `json:"book_data" binding:"required"`
}

// OutlineResponse 大纲生成响应
type OutlineResponse struct {
	Success   bool   `json:"success"`
	Outline   string `json:"outline"`
	Timestamp string `json:"timestamp"`
}

// ChapterInfo 单章生成参数，三个键均必填
type ChapterInfo struct {
	Number      int    `json:"number" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// ToChapterSpec 转换为领域实体
func (i *ChapterInfo) ToChapterSpec() entity.ChapterSpec {
	return entity.ChapterSpec{
		Number:      i.Number,
		Title:       i.Title,
		Description: i.Description,
	}
}

// ChapterRequest 单章生成请求，outline 可选
type ChapterRequest struct {
	Provider    string          `json:"provider" binding:"required"`
	BookData    entity.BookSpec `json:"book_data" binding:"required"`
	ChapterInfo ChapterInfo     `json:"chapter_info" binding:"required"`
	Outline     string          `json:"outline"`
}

// ChapterResponse 单章生成响应
type ChapterResponse struct {
	Success       bool   `json:"success"`
	Content       string `json:"content"`
	ChapterNumber int    `json:"chapter_number"`
	Timestamp     string `json:"timestamp"`
}

// FullBookRequest 整本生成请求
type FullBookRequest struct {
	Provider string          `json:"provider" binding:"required"`
	BookData entity.BookSpec `json:"book_data" binding:"required"`
}

// FullBookResponse 整本生成响应
type FullBookResponse struct {
	Success       bool             `json:"success"`
	Outline       string           `json:"outline"`
	Chapters      []entity.Chapter `json:"chapters"`
	TotalChapters int              `json:"total_chapters"`
	Timestamp     string           `json:"timestamp"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse 就绪检查响应，附带已配置的提供商列表
type ReadyResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
}
