// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"book-gen-ai-api/internal/domain/entity"
	"book-gen-ai-api/internal/infrastructure/llm"
	"book-gen-ai-api/internal/interfaces/http/dto"
	"book-gen-ai-api/pkg/logger"
)

// Generator 处理器对书稿生成编排器的最小依赖（port）
// 由应用层提供具体实现（book.Generator）
type Generator interface {
	Configure(ctx context.Context, creds llm.Credentials) error
	CreateOutline(ctx context.Context, provider string, spec entity.BookSpec) (string, error)
	GenerateChapter(ctx context.Context, provider string, spec entity.BookSpec, chapter entity.ChapterSpec, outline string) (string, error)
	GenerateFullBook(ctx context.Context, provider string, spec entity.BookSpec) (*entity.BookDraft, error)
}

// BookHandler 书稿生成处理器
type BookHandler struct {
	generator Generator
}

// NewBookHandler 创建书稿生成处理器
func NewBookHandler(generator Generator) *BookHandler {
	return &BookHandler{generator: generator}
}

// ConfigureAPIs 配置提供商凭证
// 所有键可选；任一提供商配置失败不阻止其余提供商
func (h *BookHandler) ConfigureAPIs(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ConfigureAPIsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.FailErr(c, "Error", err)
		return
	}

	if err := h.generator.Configure(ctx, req.ToCredentials()); err != nil {
		logger.Error(ctx, "failed to configure APIs", err)
		dto.Fail(c, "Failed to configure APIs")
		return
	}

	dto.OK(c, dto.ConfigureAPIsResponse{
		Success: true,
		Message: "APIs configured successfully",
	})
}

// CreateOutline 生成书稿大纲
func (h *BookHandler) CreateOutline(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.FailErr(c, "Error creating outline", missingField(err))
		return
	}

	outline, err := h.generator.CreateOutline(ctx, req.Provider, req.BookData)
	if err != nil {
		logger.Error(ctx, "outline creation error", err)
		dto.FailErr(c, "Error creating outline", err)
		return
	}

	dto.OK(c, dto.OutlineResponse{
		Success:   true,
		Outline:   outline,
		Timestamp: dto.Timestamp(),
	})
}

// GenerateChapter 生成单章
func (h *BookHandler) GenerateChapter(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.FailErr(c, "Error generating chapter", missingField(err))
		return
	}

	content, err := h.generator.GenerateChapter(ctx, req.Provider, req.BookData, req.ChapterInfo.ToChapterSpec(), req.Outline)
	if err != nil {
		logger.Error(ctx, "chapter generation error", err)
		dto.FailErr(c, "Error generating chapter", err)
		return
	}

	dto.OK(c, dto.ChapterResponse{
		Success:       true,
		Content:       content,
		ChapterNumber: req.ChapterInfo.Number,
		Timestamp:     dto.Timestamp(),
	})
}

// GenerateFullBook 生成大纲及前若干章节
func (h *BookHandler) GenerateFullBook(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.FullBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.FailErr(c, "Error generating book", missingField(err))
		return
	}

	draft, err := h.generator.GenerateFullBook(ctx, req.Provider, req.BookData)
	if err != nil {
		logger.Error(ctx, "full book generation error", err)
		dto.FailErr(c, "Error generating book", err)
		return
	}

	dto.OK(c, dto.FullBookResponse{
		Success:       true,
		Outline:       draft.Outline,
		Chapters:      draft.Chapters,
		TotalChapters: len(draft.Chapters),
		Timestamp:     dto.Timestamp(),
	})
}
