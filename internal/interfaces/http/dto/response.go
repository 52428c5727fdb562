// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "book-gen-ai-api/pkg/errors"
)

// FailureResponse 业务失败响应
// 约定：失败以载荷中的 success 字段表达，HTTP 状态保持 200，
// 客户端据 success 分支而非传输层状态码
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK 返回成功载荷
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Fail 返回业务失败载荷
func Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, FailureResponse{
		Success: false,
		Message: message,
	})
}

// FailErr 以错误内容返回业务失败载荷，prefix 描述失败场景
func FailErr(c *gin.Context, prefix string, err error) {
	Fail(c, prefix+": "+ErrorMessage(err))
}

// ErrorMessage 提取面向客户端的错误描述
func ErrorMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		if appErr.Detail != "" {
			return appErr.Message + ": " + appErr.Detail
		}
		return appErr.Message
	}
	return err.Error()
}

// Timestamp 返回 RFC3339 格式的当前时间戳
func Timestamp() string {
	return time.Now().Format(time.RFC3339)
}
