// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"book-gen-ai-api/internal/config"
	"book-gen-ai-api/internal/interfaces/http/handler"
	"book-gen-ai-api/internal/interfaces/http/middleware"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Index  *handler.IndexHandler
	Book   *handler.BookHandler
	Health *handler.HealthHandler
}

// New 创建并配置 Gin 引擎
func New(cfg *config.Config, h Handlers) *gin.Engine {
	// 根据环境设置 Gin 模式
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// 全局中间件，顺序有意义：Recovery 最外层
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	if cfg.Observability.Tracing.Enabled {
		engine.Use(middleware.Trace(cfg.App.Name))
		engine.Use(middleware.TraceContext())
	}
	if cfg.Observability.Metrics.Enabled {
		engine.Use(middleware.Metrics())
	}
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.Security.CORS.AllowedOrigins,
		AllowedMethods: cfg.Security.CORS.AllowedMethods,
		AllowedHeaders: cfg.Security.CORS.AllowedHeaders,
	}))

	// 首页模板
	if cfg.Web.TemplateGlob != "" {
		engine.LoadHTMLGlob(cfg.Web.TemplateGlob)
		engine.GET("/", h.Index.Index)
	}

	// 业务接口
	engine.POST("/configure-apis", h.Book.ConfigureAPIs)
	engine.POST("/create-outline", h.Book.CreateOutline)
	engine.POST("/generate-chapter", h.Book.GenerateChapter)
	engine.POST("/generate-full-book", h.Book.GenerateFullBook)

	// 健康检查
	engine.GET("/health", h.Health.Health)
	engine.GET("/live", h.Health.Live)
	engine.GET("/ready", h.Health.Ready)

	// Prometheus 指标
	if cfg.Observability.Metrics.Enabled {
		engine.GET(cfg.Observability.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	return engine
}
