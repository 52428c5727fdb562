// Package book 提供书稿生成编排
package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"book-gen-ai-api/internal/domain/entity"
	"book-gen-ai-api/internal/infrastructure/llm"
	"book-gen-ai-api/pkg/logger"
	"book-gen-ai-api/pkg/metrics"
)

const (
	// DefaultMaxTokens 未指定时的响应 token 上限
	DefaultMaxTokens = 4000

	// 单章生成的固定 token 上限，不随 chapter_length 变化
	// chapter_length 仅作为提示文本中的目标字数
	chapterMaxTokens = 3000

	// 章节生成时采用的大纲上下文长度上限（字符）
	// 刻意截断以控制提示规模
	outlineContextChars = 1000

	// 整本生成单次请求内的章节数上限
	fullBookChapterCap = 3

	// 相邻章节生成之间的固定间隔，规避提供商限流
	interChapterDelay = time.Second
)

// ProviderFactory 编排层对提供商客户端工厂的最小依赖（port）
// 由基础设施层提供具体实现（llm.Factory）
type ProviderFactory interface {
	Configure(ctx context.Context, creds llm.Credentials) error
	Get(name string) (llm.Client, error)
}

// Generator 书稿生成编排器
// 每次调用都是独立的请求级流程，无跨请求会话状态
type Generator struct {
	providers ProviderFactory

	// sleep 可注入以便测试置零
	sleep func(time.Duration)
}

// NewGenerator 创建书稿生成编排器
func NewGenerator(providers ProviderFactory) *Generator {
	return &Generator{
		providers: providers,
		sleep:     time.Sleep,
	}
}

// Configure 安装提供商凭证
func (g *Generator) Configure(ctx context.Context, creds llm.Credentials) error {
	return g.providers.Configure(ctx, creds)
}

// Generate 将 prompt 分发给指定提供商生成文本
// maxTokens <= 0 时取 DefaultMaxTokens
func (g *Generator) Generate(ctx context.Context, provider, prompt string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	client, err := g.providers.Get(strings.TrimSpace(provider))
	if err != nil {
		return "", err
	}

	ctx = logger.WithContext(ctx, logger.ProviderKey, client.Name())
	return client.Generate(ctx, prompt, maxTokens)
}

// CreateOutline 生成书稿大纲，单次生成调用
func (g *Generator) CreateOutline(ctx context.Context, provider string, spec entity.BookSpec) (string, error) {
	start := time.Now()

	prompt, err := renderOutlinePrompt(&spec)
	if err != nil {
		return "", err
	}

	outline, err := g.Generate(ctx, provider, prompt, DefaultMaxTokens)
	observeOperation(ctx, "outline", provider, start, err)
	if err != nil {
		return "", err
	}

	metrics.GeneratedContentChars.WithLabelValues("outline").Observe(float64(len(outline)))
	return outline, nil
}

// GenerateChapter 生成单章，大纲上下文截断至前 1000 字符
func (g *Generator) GenerateChapter(ctx context.Context, provider string, spec entity.BookSpec, chapter entity.ChapterSpec, outline string) (string, error) {
	start := time.Now()

	prompt, err := renderChapterPrompt(&spec, &chapter, truncateOutline(outline))
	if err != nil {
		return "", err
	}

	content, err := g.Generate(ctx, provider, prompt, chapterMaxTokens)
	observeOperation(ctx, "chapter", provider, start, err)
	if err != nil {
		return "", err
	}

	metrics.GeneratedContentChars.WithLabelValues("chapter").Observe(float64(len(content)))
	return content, nil
}

// GenerateFullBook 先生成大纲，再顺序生成最多 3 章
// 章节标题与描述为合成占位内容，不从大纲解析，相邻章节之间固定停顿
func (g *Generator) GenerateFullBook(ctx context.Context, provider string, spec entity.BookSpec) (*entity.BookDraft, error) {
	start := time.Now()

	outline, err := g.CreateOutline(ctx, provider, spec)
	if err != nil {
		observeOperation(ctx, "full_book", provider, start, err)
		return nil, err
	}

	numChapters := spec.ChapterCount()
	if numChapters > fullBookChapterCap {
		numChapters = fullBookChapterCap
	}
	if numChapters < 0 {
		numChapters = 0
	}

	chapters := make([]entity.Chapter, 0, numChapters)
	for i := 1; i <= numChapters; i++ {
		chapterSpec := entity.ChapterSpec{
			Number:      i,
			Title:       fmt.Sprintf("Chapter %d", i),
			Description: fmt.Sprintf("Chapter %d content based on the outline", i),
		}

		content, err := g.GenerateChapter(ctx, provider, spec, chapterSpec, outline)
		if err != nil {
			observeOperation(ctx, "full_book", provider, start, err)
			return nil, err
		}

		chapters = append(chapters, entity.Chapter{
			Number:  i,
			Title:   chapterSpec.Title,
			Content: content,
		})

		if i < numChapters {
			g.sleep(interChapterDelay)
		}
	}

	observeOperation(ctx, "full_book", provider, start, nil)
	logger.Info(ctx, "full book generated",
		"provider", provider,
		"total_chapters", len(chapters),
	)

	return &entity.BookDraft{
		Outline:  outline,
		Chapters: chapters,
	}, nil
}

// truncateOutline 截断大纲上下文，已短于上限时原样返回
func truncateOutline(outline string) string {
	runes := []rune(outline)
	if len(runes) <= outlineContextChars {
		return outline
	}
	return string(runes[:outlineContextChars])
}

// observeOperation 记录编排操作的指标
func observeOperation(ctx context.Context, operation, provider string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		logger.Error(ctx, operation+" generation failed", err, "provider", provider)
	}
	metrics.BookGenerationTotal.WithLabelValues(operation, provider, status).Inc()
	metrics.BookGenerationDuration.WithLabelValues(operation, provider).Observe(time.Since(start).Seconds())
}
