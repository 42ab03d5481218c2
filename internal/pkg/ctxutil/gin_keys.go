package ctxutil

// gin.Context 上的键，由 handler 写入、日志中间件读取
const (
	KeyOutcome        = "relay_outcome"
	KeyUpstreamStatus = "relay_upstream_status"
)
