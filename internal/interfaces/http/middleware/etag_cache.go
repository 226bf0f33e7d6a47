package middleware

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// bodyCacheWriter buffers the response body so the ETag can be computed before sending.
// bodyCacheWriter 缓冲响应正文，以便在发送前计算 ETag。
type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bodyCacheWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// ETagCache returns a Gin middleware that implements ETag-based HTTP caching for GET requests.
// Score-derived responses are deterministic, so a SHA-256 of the body is a stable validator.
// A matching If-None-Match yields 304 Not Modified without a body.
// ETagCache 返回一个为 GET 请求实现基于 ETag 的 HTTP 缓存的 Gin 中间件。
func ETagCache(maxAge time.Duration) gin.HandlerFunc {
	cacheControl := fmt.Sprintf("public, max-age=%d, must-revalidate", int(maxAge.Seconds()))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		bcw := &bodyCacheWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = bcw
		c.Next()
		c.Writer = bcw.ResponseWriter

		responseBody := bcw.body.Bytes()
		if c.Writer.Status() == http.StatusOK && len(responseBody) > 0 {
			etag := fmt.Sprintf(`"%x"`, sha256.Sum256(responseBody))
			c.Header("ETag", etag)
			c.Header("Cache-Control", cacheControl)

			if etagMatches(c.GetHeader("If-None-Match"), etag) {
				c.Writer.WriteHeader(http.StatusNotModified)
				c.Writer.WriteHeaderNow()
				return
			}
		}

		_, _ = c.Writer.Write(responseBody)
	}
}

// etagMatches implements the weak comparison of If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
