package dto

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
)

// APIResponse 通用 API 响应结构
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO 错误信息 DTO
type ErrorDTO struct {
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Description string            `json:"description,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// SuccessResponse 创建成功响应
func SuccessResponse(data interface{}, traceID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorResponse 创建错误响应
func ErrorResponse(err error, traceID string) *APIResponse {
	var errorDTO *ErrorDTO

	if svcErr, ok := errors.AsServiceError(err); ok {
		errorDTO = &ErrorDTO{
			Code:        string(svcErr.Code()),
			Message:     svcErr.Error(),
			Description: svcErr.Description(),
			Details:     stringifyMetadata(svcErr.Metadata()),
		}
	} else {
		errorDTO = &ErrorDTO{
			Code:    string(constants.ErrCodeInternal),
			Message: "Internal server error",
		}
	}

	return &APIResponse{
		Success:   false,
		Error:     errorDTO,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// NotFoundResponse 创建资源未找到响应
func NotFoundResponse(resource string, traceID string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &ErrorDTO{
			Code:        string(constants.ErrCodeNotFound),
			Message:     "Resource not found",
			Description: resource + " not found",
		},
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

func stringifyMetadata(md map[string]interface{}) map[string]string {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]string, len(md))
	for k, v := range md {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

// SendSuccess 写入成功响应
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse(data, TraceIDFromGin(c)))
}

// SendError 根据 ServiceError 的 HTTP 状态写入错误响应，未知错误按 500 处理
func SendError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if svcErr, ok := errors.AsServiceError(err); ok {
		status = svcErr.HTTPStatus()
	}
	c.AbortWithStatusJSON(status, ErrorResponse(err, TraceIDFromGin(c)))
}

// TraceIDFromGin 返回当前请求的 Trace ID，无有效 Span 时退回到请求 ID
func TraceIDFromGin(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.IsValid() {
		return sc.TraceID().String()
	}
	return c.GetString(string(constants.ContextKeyRequestID))
}
