// Package main 书稿生成 API 服务入口
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"book-gen-ai-api/internal/application/book"
	"book-gen-ai-api/internal/config"
	"book-gen-ai-api/internal/infrastructure/llm"
	"book-gen-ai-api/internal/interfaces/http/handler"
	"book-gen-ai-api/internal/interfaces/http/router"
	"book-gen-ai-api/pkg/logger"
	"book-gen-ai-api/pkg/tracer"
)

// 构建信息，由 ldflags 注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件（可选，不存在不报错）
	_ = godotenv.Load()

	// 加载配置
	cfg := config.MustLoad()

	// 初始化日志
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	ctx := context.Background()
	logger.Info(ctx, "starting server",
		"app", cfg.App.Name,
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
	)

	// 初始化链路追踪
	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "failed to shutdown tracer", err)
		}
	}()

	// 装配依赖
	factory := llm.NewFactory(cfg)
	generator := book.NewGenerator(factory)

	// 配置文件中携带 api_key 的提供商在启动时自动配置
	autoConfigure(ctx, factory, cfg)

	handlers := router.Handlers{
		Index:  handler.NewIndexHandler(cfg.App.Name, Version),
		Book:   handler.NewBookHandler(generator),
		Health: handler.NewHealthHandler(factory),
	}

	engine := router.New(cfg, handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	// 启动 HTTP 服务器
	go func() {
		logger.Info(ctx, "http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "http server error", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down server")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "server forced to shutdown", err)
	}

	logger.Info(ctx, "server exited")
}

// autoConfigure 从配置文件安装提供商凭证
// 失败仅记录日志，不阻止启动：凭证也可在运行时通过 /configure-apis 安装
func autoConfigure(ctx context.Context, factory *llm.Factory, cfg *config.Config) {
	creds := llm.Credentials{}
	if p, ok := cfg.LLM.Providers[llm.ProviderOpenAI]; ok {
		creds.OpenAIKey = p.APIKey
	}
	if p, ok := cfg.LLM.Providers[llm.ProviderGemini]; ok {
		creds.GeminiKey = p.APIKey
	}
	if p, ok := cfg.LLM.Providers[llm.ProviderAnthropic]; ok {
		creds.AnthropicKey = p.APIKey
	}

	if creds.OpenAIKey == "" && creds.GeminiKey == "" && creds.AnthropicKey == "" {
		logger.Info(ctx, "no provider credentials in config, waiting for /configure-apis")
		return
	}

	if err := factory.Configure(ctx, creds); err != nil {
		logger.Error(ctx, "startup provider configuration incomplete", err)
		return
	}
	logger.Info(ctx, "providers configured from config", "providers", factory.Configured())
}
