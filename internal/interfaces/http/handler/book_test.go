package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-gen-ai-api/internal/domain/entity"
	"book-gen-ai-api/internal/infrastructure/llm"
	"book-gen-ai-api/internal/interfaces/http/dto"
	apperrors "book-gen-ai-api/pkg/errors"
)

// fakeGenerator 书稿生成编排器桩
type fakeGenerator struct {
	configureErr error
	outline      string
	content      string
	draft        *entity.BookDraft
	err          error

	gotProvider string
	gotSpec     entity.BookSpec
	gotChapter  entity.ChapterSpec
	gotOutline  string
	gotCreds    llm.Credentials
}

func (f *fakeGenerator) Configure(_ context.Context, creds llm.Credentials) error {
	f.gotCreds = creds
	return f.configureErr
}

func (f *fakeGenerator) CreateOutline(_ context.Context, provider string, spec entity.BookSpec) (string, error) {
	f.gotProvider = provider
	f.gotSpec = spec
	return f.outline, f.err
}

func (f *fakeGenerator) GenerateChapter(_ context.Context, provider string, spec entity.BookSpec, chapter entity.ChapterSpec, outline string) (string, error) {
	f.gotProvider = provider
	f.gotSpec = spec
	f.gotChapter = chapter
	f.gotOutline = outline
	return f.content, f.err
}

func (f *fakeGenerator) GenerateFullBook(_ context.Context, provider string, spec entity.BookSpec) (*entity.BookDraft, error) {
	f.gotProvider = provider
	f.gotSpec = spec
	return f.draft, f.err
}

func newTestRouter(g Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookHandler(g)

	engine := gin.New()
	engine.POST("/configure-apis", h.ConfigureAPIs)
	engine.POST("/create-outline", h.CreateOutline)
	engine.POST("/generate-chapter", h.GenerateChapter)
	engine.POST("/generate-full-book", h.GenerateFullBook)
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestConfigureAPIs(t *testing.T) {
	g := &fakeGenerator{}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/configure-apis", gin.H{
		"openai_key": "ok-123",
		"gemini_key": "gk-456",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ConfigureAPIsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "APIs configured successfully", resp.Message)
	assert.Equal(t, "ok-123", g.gotCreds.OpenAIKey)
	assert.Equal(t, "gk-456", g.gotCreds.GeminiKey)
	assert.Empty(t, g.gotCreds.AnthropicKey)
}

func TestConfigureAPIs_Failure(t *testing.T) {
	g := &fakeGenerator{
		configureErr: apperrors.New(apperrors.CodeConfigureFailed, "failed to configure APIs"),
	}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/configure-apis", gin.H{"openai_key": "bad"})

	// 业务失败仍是 HTTP 200，由载荷中的 success 表达
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to configure APIs", resp.Message)
}

func TestCreateOutline(t *testing.T) {
	g := &fakeGenerator{outline: "the outline"}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/create-outline", gin.H{
		"provider": "openai",
		"book_data": gin.H{
			"title": "The Silent Forest",
			"genre": "Mystery",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.OutlineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "the outline", resp.Outline)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Equal(t, "openai", g.gotProvider)
	assert.Equal(t, "The Silent Forest", g.gotSpec.Title)
}

func TestCreateOutline_MissingProvider(t *testing.T) {
	g := &fakeGenerator{}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/create-outline", gin.H{
		"book_data": gin.H{"title": "The Silent Forest"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Error creating outline")
}

func TestCreateOutline_GenerationError(t *testing.T) {
	g := &fakeGenerator{
		err: apperrors.New(apperrors.CodeProviderNotConfigured, "provider not configured: openai"),
	}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/create-outline", gin.H{
		"provider":  "openai",
		"book_data": gin.H{"title": "The Silent Forest"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Error creating outline")
	assert.Contains(t, resp.Message, "provider not configured: openai")
}

func TestGenerateChapter(t *testing.T) {
	g := &fakeGenerator{content: "chapter text"}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/generate-chapter", gin.H{
		"provider": "anthropic",
		"book_data": gin.H{
			"title": "The Silent Forest",
			"genre": "Mystery",
		},
		"chapter_info": gin.H{
			"number":      2,
			"title":       "The Discovery",
			"description": "The detective finds a clue",
		},
		"outline": "full outline",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChapterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "chapter text", resp.Content)
	assert.Equal(t, 2, resp.ChapterNumber)
	assert.NotEmpty(t, resp.Timestamp)

	assert.Equal(t, "anthropic", g.gotProvider)
	assert.Equal(t, entity.ChapterSpec{Number: 2, Title: "The Discovery", Description: "The detective finds a clue"}, g.gotChapter)
	assert.Equal(t, "full outline", g.gotOutline)
}

func TestGenerateChapter_MissingChapterInfo(t *testing.T) {
	g := &fakeGenerator{}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/generate-chapter", gin.H{
		"provider":  "openai",
		"book_data": gin.H{"title": "The Silent Forest"},
		"chapter_info": gin.H{
			"number": 2,
			// title 与 description 缺失
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Error generating chapter")
}

func TestGenerateFullBook(t *testing.T) {
	g := &fakeGenerator{
		draft: &entity.BookDraft{
			Outline: "the outline",
			Chapters: []entity.Chapter{
				{Number: 1, Title: "Chapter 1", Content: "one"},
				{Number: 2, Title: "Chapter 2", Content: "two"},
				{Number: 3, Title: "Chapter 3", Content: "three"},
			},
		},
	}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/generate-full-book", gin.H{
		"provider":  "gemini",
		"book_data": gin.H{"title": "The Silent Forest"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FullBookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "the outline", resp.Outline)
	assert.Equal(t, 3, resp.TotalChapters)
	require.Len(t, resp.Chapters, 3)
	assert.Equal(t, "Chapter 1", resp.Chapters[0].Title)
	assert.Equal(t, "gemini", g.gotProvider)
}

func TestGenerateFullBook_Error(t *testing.T) {
	g := &fakeGenerator{
		err: apperrors.New(apperrors.CodeGenerationFailed, "gemini generation failed"),
	}
	engine := newTestRouter(g)

	rec := doJSON(t, engine, "/generate-full-book", gin.H{
		"provider":  "gemini",
		"book_data": gin.H{"title": "The Silent Forest"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Error generating book")
	assert.Contains(t, resp.Message, "gemini generation failed")
}
