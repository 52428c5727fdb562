package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-gen-ai-api/internal/interfaces/http/dto"
)

type fakeLister struct {
	providers []string
}

func (f *fakeLister) Configured() []string { return f.providers }

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(&fakeLister{})

	engine := gin.New()
	engine.GET("/health", h.Health)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(&fakeLister{providers: []string{"gemini", "openai"}})

	engine := gin.New()
	engine.GET("/ready", h.Ready)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"gemini", "openai"}, resp.Providers)
}

func TestReady_NoProviders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler(&fakeLister{})

	engine := gin.New()
	engine.GET("/ready", h.Ready)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	// 无已配置提供商也算就绪
	require.Equal(t, http.StatusOK, rec.Code)
}
