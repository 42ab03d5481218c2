package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"askrelay/internal/pkg/ctxutil"
)

// Logger 访问日志，转发请求额外记录 outcome 和上游状态码
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		requestID, _ := ctxutil.GetRequestID(c.Request.Context())

		event := levelFor(status).
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("body_size", c.Writer.Size())

		if outcome := c.GetString(ctxutil.KeyOutcome); outcome != "" {
			event = event.Str("outcome", outcome)
			if upstream := c.GetInt(ctxutil.KeyUpstreamStatus); upstream != 0 {
				event = event.Int("upstream_status", upstream)
			}
		}

		event.Msg("relay request")
	}
}

func levelFor(status int) *zerolog.Event {
	switch {
	case status >= 500:
		return log.Error()
	case status >= 400:
		return log.Warn()
	default:
		return log.Info()
	}
}
