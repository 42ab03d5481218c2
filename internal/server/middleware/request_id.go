package middleware

import (
	"github.com/gin-gonic/gin"

	"askrelay/internal/pkg/ctxutil"
	"askrelay/internal/pkg/id"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

// RequestID 复用或生成请求 ID，写入 gin context、request context 和响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := id.FromExternal(c.GetHeader(HeaderRequestID))

		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
