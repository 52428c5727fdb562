package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-gen-ai-api/internal/interfaces/http/dto"
)

// ProviderLister 就绪检查对提供商工厂的最小依赖
type ProviderLister interface {
	Configured() []string
}

// HealthHandler 健康检查处理器
type HealthHandler struct {
	providers ProviderLister
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(providers ProviderLister) *HealthHandler {
	return &HealthHandler{providers: providers}
}

// Health 健康检查接口
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: dto.Timestamp(),
	})
}

// Live 存活检查接口
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready 就绪检查接口
// 提供商未配置不算未就绪，仅在响应中列出已配置的提供商
func (h *HealthHandler) Ready(c *gin.Context) {
	var providers []string
	if h.providers != nil {
		providers = h.providers.Configured()
	}
	c.JSON(http.StatusOK, dto.ReadyResponse{
		Status:    "ok",
		Providers: providers,
	})
}
