package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexHandler 首页处理器
type IndexHandler struct {
	appName string
	version string
}

// NewIndexHandler 创建首页处理器
func NewIndexHandler(appName, version string) *IndexHandler {
	return &IndexHandler{appName: appName, version: version}
}

// Index 渲染首页
func (h *IndexHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"app_name": h.appName,
		"version":  h.version,
	})
}
